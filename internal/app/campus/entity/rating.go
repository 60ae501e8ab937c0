package entity

import "math"

// RoundRating округляет средний рейтинг до одного знака после запятой.
// Используется round-half-away-from-zero: 4.25 -> 4.3, 4.35 -> 4.4.
// Правило зафиксировано, чтобы агрегат был воспроизводим на любой платформе
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
