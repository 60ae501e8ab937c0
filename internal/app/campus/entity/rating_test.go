package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRating(t *testing.T) {
	tests := []struct {
		name     string
		avg      float64
		expected float64
	}{
		{"целое значение", 4.0, 4.0},
		{"округление вниз", 4.24, 4.2},
		{"округление вверх", 4.26, 4.3},
		{"граница .05 округляется вверх", 4.25, 4.3},
		{"граница .05 в нижней половине шкалы", 3.75, 3.8},
		{"ноль без отзывов", 0.0, 0.0},
		{"максимальная оценка", 5.0, 5.0},
		{"две трети", 11.0 / 3.0, 3.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RoundRating(tt.avg), 1e-9)
		})
	}
}
