package service

import (
	"testing"

	"campusrate/internal/app/campus/entity"

	"github.com/stretchr/testify/assert"
)

func college(name string, rating float64, reviews int) entity.College {
	return entity.College{
		Name:          name,
		AverageRating: rating,
		TotalReviews:  reviews,
	}
}

func names(colleges []entity.College) []string {
	out := make([]string, len(colleges))
	for i, c := range colleges {
		out[i] = c.Name
	}
	return out
}

// ===================== ParseSortPolicy Tests =====================

func TestParseSortPolicy(t *testing.T) {
	assert.Equal(t, SortHighestRated, ParseSortPolicy("highest"))
	assert.Equal(t, SortMostReviewed, ParseSortPolicy("most"))
	assert.Equal(t, SortWeighted, ParseSortPolicy("weighted"))

	// Неизвестный токен не является ошибкой - порядок просто не меняется
	assert.Equal(t, SortNone, ParseSortPolicy(""))
	assert.Equal(t, SortNone, ParseSortPolicy("rating"))
	assert.Equal(t, SortNone, ParseSortPolicy("HIGHEST"))
}

// ===================== rankColleges Tests =====================

func TestRankColleges_None_PreservesOrder(t *testing.T) {
	input := []entity.College{
		college("B", 3.0, 5),
		college("A", 5.0, 1),
		college("C", 0.0, 0),
	}

	ranked := rankColleges(input, SortNone)

	assert.Equal(t, []string{"B", "A", "C"}, names(ranked))
}

func TestRankColleges_DoesNotMutateInput(t *testing.T) {
	input := []entity.College{
		college("B", 3.0, 5),
		college("A", 5.0, 1),
	}

	_ = rankColleges(input, SortHighestRated)

	// Вход остаётся нетронутым
	assert.Equal(t, []string{"B", "A"}, names(input))
}

func TestRankColleges_HighestRated(t *testing.T) {
	input := []entity.College{
		college("NoReviews1", 0.0, 0),
		college("Mid", 3.5, 10),
		college("Top", 4.8, 3),
		college("NoReviews2", 0.0, 0),
	}

	ranked := rankColleges(input, SortHighestRated)

	// Колледжи с отзывами впереди, без отзывов - в хвосте в исходном порядке
	assert.Equal(t, []string{"Top", "Mid", "NoReviews1", "NoReviews2"}, names(ranked))
}

func TestRankColleges_HighestRated_TieBreakByReviews(t *testing.T) {
	input := []entity.College{
		college("FewReviews", 4.5, 2),
		college("ManyReviews", 4.5, 20),
	}

	ranked := rankColleges(input, SortHighestRated)

	assert.Equal(t, []string{"ManyReviews", "FewReviews"}, names(ranked))
}

func TestRankColleges_MostReviewed(t *testing.T) {
	input := []entity.College{
		college("NoReviews", 0.0, 0),
		college("Few", 4.9, 2),
		college("Many", 3.1, 50),
	}

	ranked := rankColleges(input, SortMostReviewed)

	assert.Equal(t, []string{"Many", "Few", "NoReviews"}, names(ranked))
}

// ===================== rankWeighted Tests =====================

func TestRankWeighted_ManyReviewsBeatPerfectScore(t *testing.T) {
	// A: 20 отзывов со средним 4.5, B: 2 отзыва со средним 5.0.
	// cMean = (4.5+5.0+3.0)/3 ≈ 4.17; скор B тянется к среднему сильнее
	// (v=2 против m=5), поэтому A выигрывает несмотря на меньший рейтинг
	input := []entity.College{
		college("B", 5.0, 2),
		college("A", 4.5, 20),
		college("Low", 3.0, 10),
	}

	ranked := rankColleges(input, SortWeighted)

	assert.Equal(t, []string{"A", "B", "Low"}, names(ranked))
}

func TestRankWeighted_ZeroReviewsSinkToBottom(t *testing.T) {
	input := []entity.College{
		college("NoReviews", 0.0, 0),
		college("Rated", 4.0, 5),
	}

	ranked := rankColleges(input, SortWeighted)

	// score колледжа без отзывов равен его рейтингу (0)
	assert.Equal(t, []string{"Rated", "NoReviews"}, names(ranked))
}

func TestRankWeighted_AllUnreviewed_NoReorder(t *testing.T) {
	input := []entity.College{
		college("First", 0.0, 0),
		college("Second", 0.0, 0),
		college("Third", 0.0, 0),
	}

	ranked := rankColleges(input, SortWeighted)

	assert.Equal(t, []string{"First", "Second", "Third"}, names(ranked))
}

func TestWeightedScore(t *testing.T) {
	// v=20, R=4.5, m=5, C=4.75: score = (20/25)*4.5 + (5/25)*4.75 = 4.55
	assert.InDelta(t, 4.55, weightedScore(4.5, 20, 4.75), 1e-9)

	// v=2, R=5.0, m=5, C=4.75: score = (2/7)*5.0 + (5/7)*4.75 ≈ 4.821
	assert.InDelta(t, 4.8214285714, weightedScore(5.0, 2, 4.75), 1e-9)

	// Без отзывов score равен рейтингу
	assert.Equal(t, 0.0, weightedScore(0.0, 0, 4.75))
}
