package service

import (
	"sort"

	"campusrate/internal/app/campus/entity"
)

// SortPolicy - политика ранжирования листинга колледжей
type SortPolicy string

const (
	SortNone         SortPolicy = "none"
	SortHighestRated SortPolicy = "highest"
	SortMostReviewed SortPolicy = "most"
	SortWeighted     SortPolicy = "weighted"
)

// Сила приора байесовского скоринга: чем больше m,
// тем сильнее малое число отзывов тянет колледж к среднему по выборке
const bayesianPriorStrength = 5.0

// ParseSortPolicy разбирает токен сортировки из запроса.
// Неизвестный токен - это не ошибка, а отсутствие пересортировки
func ParseSortPolicy(token string) SortPolicy {
	switch token {
	case "highest":
		return SortHighestRated
	case "most":
		return SortMostReviewed
	case "weighted":
		return SortWeighted
	default:
		return SortNone
	}
}

// rankColleges упорядочивает кандидатов по выбранной политике.
// Чистая функция: не трогает вход, сортировка стабильная,
// при SortNone порядок хранилища сохраняется как есть
func rankColleges(colleges []entity.College, policy SortPolicy) []entity.College {
	switch policy {
	case SortHighestRated:
		return rankReviewedFirst(colleges, func(a, b *entity.College) bool {
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
			return a.TotalReviews > b.TotalReviews
		})
	case SortMostReviewed:
		return rankReviewedFirst(colleges, func(a, b *entity.College) bool {
			if a.TotalReviews != b.TotalReviews {
				return a.TotalReviews > b.TotalReviews
			}
			return a.AverageRating > b.AverageRating
		})
	case SortWeighted:
		return rankWeighted(colleges)
	default:
		out := make([]entity.College, len(colleges))
		copy(out, colleges)
		return out
	}
}

// rankReviewedFirst сортирует колледжи с отзывами по less,
// колледжи без отзывов идут после них в исходном относительном порядке
func rankReviewedFirst(colleges []entity.College, less func(a, b *entity.College) bool) []entity.College {
	reviewed := make([]entity.College, 0, len(colleges))
	unreviewed := make([]entity.College, 0)

	for _, c := range colleges {
		if c.TotalReviews > 0 {
			reviewed = append(reviewed, c)
		} else {
			unreviewed = append(unreviewed, c)
		}
	}

	sort.SliceStable(reviewed, func(i, j int) bool {
		return less(&reviewed[i], &reviewed[j])
	})

	return append(reviewed, unreviewed...)
}

// rankWeighted сортирует по байесовскому скору:
// score = (v/(v+m))*R + (m/(v+m))*C, где C - средний рейтинг
// по колледжам с отзывами, v - число отзывов, R - средний рейтинг колледжа.
// Колледж без отзывов сохраняет score = R (то есть 0) и не влияет на C.
// Если ни у кого нет отзывов, порядок не меняется
func rankWeighted(colleges []entity.College) []entity.College {
	var sum float64
	var reviewedCount int
	for _, c := range colleges {
		if c.TotalReviews > 0 {
			sum += c.AverageRating
			reviewedCount++
		}
	}

	out := make([]entity.College, len(colleges))
	copy(out, colleges)

	if reviewedCount == 0 {
		return out
	}

	cMean := sum / float64(reviewedCount)

	scores := make(map[int]float64, len(out))
	for i, c := range out {
		scores[i] = weightedScore(c.AverageRating, c.TotalReviews, cMean)
	}

	// Сортируем по индексам, чтобы скор считался один раз на кандидата
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		si, sj := scores[idx[i]], scores[idx[j]]
		if si != sj {
			return si > sj
		}
		return out[idx[i]].TotalReviews > out[idx[j]].TotalReviews
	})

	ranked := make([]entity.College, len(out))
	for i, ix := range idx {
		ranked[i] = out[ix]
	}
	return ranked
}

func weightedScore(rating float64, totalReviews int, cMean float64) float64 {
	if totalReviews == 0 {
		return rating
	}
	v := float64(totalReviews)
	m := bayesianPriorStrength
	return (v/(v+m))*rating + (m/(v+m))*cMean
}
