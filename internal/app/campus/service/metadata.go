package service

import (
	"strings"

	"campusrate/internal/app/campus/entity"
)

// CollegeFilters - критерии metadata-фильтра, не являющиеся нативными колонками.
// Пустые критерии ничего не исключают, заполненные объединяются по AND
type CollegeFilters struct {
	Streams      []string // Нормализованные (lower-case) теги направлений
	MinFee       *int
	MaxFee       *int
	Scholarships bool
}

// Empty сообщает, есть ли хоть один активный критерий
func (f CollegeFilters) Empty() bool {
	return len(f.Streams) == 0 && f.MinFee == nil && f.MaxFee == nil && !f.Scholarships
}

// parseStreams разбирает список направлений из запроса вида "science,commerce"
func parseStreams(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	streams := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			streams = append(streams, p)
		}
	}
	return streams
}

// matchesFilters проверяет колледж по всем критериям metadata-фильтра.
// Чистая функция, вызывается на каждого кандидата уже выбранной страницы
func matchesFilters(college *entity.College, filters CollegeFilters) bool {
	if !matchesStreams(college, filters.Streams) {
		return false
	}
	if !matchesFeeRange(college, filters.MinFee, filters.MaxFee) {
		return false
	}
	if filters.Scholarships {
		s := college.Metadata.Scholarships
		if s == nil || !*s {
			return false
		}
	}
	return true
}

// matchesStreams проверяет пересечение запрошенных направлений
// с эффективным набором направлений колледжа
func matchesStreams(college *entity.College, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}

	effective := effectiveStreams(college)
	for _, w := range wanted {
		if effective[w] {
			return true
		}
	}
	return false
}

// effectiveStreams возвращает набор направлений колледжа:
// явный список из metadata, а при его отсутствии - вывод из названий программ
func effectiveStreams(college *entity.College) map[string]bool {
	streams := make(map[string]bool)

	if len(college.Metadata.Streams) > 0 {
		for _, s := range college.Metadata.Streams {
			streams[strings.ToLower(strings.TrimSpace(s))] = true
		}
		return streams
	}

	for _, program := range college.Programs {
		p := strings.ToLower(program)
		switch {
		case strings.Contains(p, "science"):
			streams["science"] = true
		case strings.Contains(p, "management"),
			strings.Contains(p, "commerce"),
			strings.Contains(p, "bba"),
			strings.Contains(p, "mba"):
			streams["commerce"] = true
		case strings.Contains(p, "humanities"), strings.Contains(p, "arts"):
			streams["humanities"] = true
		}
	}

	return streams
}

// matchesFeeRange проверяет пересечение ценового диапазона колледжа
// с запрошенным интервалом. Колледж исключается только когда его диапазон
// целиком вне запрошенного; без записанного диапазона колледж не исключается
func matchesFeeRange(college *entity.College, minFee, maxFee *int) bool {
	if minFee == nil && maxFee == nil {
		return true
	}

	collegeMin := college.Metadata.MinFee
	collegeMax := college.Metadata.MaxFee
	if collegeMin == nil || collegeMax == nil {
		return true
	}

	if maxFee != nil && *collegeMin > *maxFee {
		return false
	}
	if minFee != nil && *collegeMax < *minFee {
		return false
	}
	return true
}

// applyFilters оставляет только кандидатов, прошедших metadata-фильтр
func applyFilters(colleges []entity.College, filters CollegeFilters) []entity.College {
	if filters.Empty() {
		return colleges
	}

	filtered := make([]entity.College, 0, len(colleges))
	for i := range colleges {
		if matchesFilters(&colleges[i], filters) {
			filtered = append(filtered, colleges[i])
		}
	}
	return filtered
}
