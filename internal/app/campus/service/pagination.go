package service

import "math"

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizePaging приводит страницу и размер к допустимым границам
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// totalPages считает число страниц как ceil(total/limit)
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
