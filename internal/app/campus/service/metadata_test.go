package service

import (
	"testing"

	"campusrate/internal/app/campus/entity"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// ===================== parseStreams Tests =====================

func TestParseStreams(t *testing.T) {
	assert.Nil(t, parseStreams(""))
	assert.Equal(t, []string{"science"}, parseStreams("science"))
	assert.Equal(t, []string{"science", "commerce"}, parseStreams("Science, Commerce"))
	assert.Equal(t, []string{"science"}, parseStreams("science,,  "))
}

// ===================== matchesStreams Tests =====================

func TestMatchesStreams_InferredFromPrograms(t *testing.T) {
	c := entity.College{
		Programs: []string{"+2 Science", "BBA"},
	}

	// Из программ выводятся science и commerce
	assert.True(t, matchesStreams(&c, []string{"science"}))
	assert.True(t, matchesStreams(&c, []string{"commerce"}))
	assert.False(t, matchesStreams(&c, []string{"humanities"}))
}

func TestMatchesStreams_ExplicitMetadataWins(t *testing.T) {
	// Явный список из metadata имеет приоритет над выводом из программ
	c := entity.College{
		Programs: []string{"+2 Science"},
		Metadata: entity.CollegeMetadata{Streams: []string{"humanities"}},
	}

	assert.True(t, matchesStreams(&c, []string{"humanities"}))
	assert.False(t, matchesStreams(&c, []string{"science"}))
}

func TestMatchesStreams_AnyRequestedStreamMatches(t *testing.T) {
	c := entity.College{
		Programs: []string{"Bachelor of Arts"},
	}

	// Достаточно пересечения по одному направлению
	assert.True(t, matchesStreams(&c, []string{"science", "humanities"}))
}

func TestMatchesStreams_NoWanted_AlwaysMatches(t *testing.T) {
	c := entity.College{}
	assert.True(t, matchesStreams(&c, nil))
}

// ===================== matchesFeeRange Tests =====================

func TestMatchesFeeRange(t *testing.T) {
	c := entity.College{
		Metadata: entity.CollegeMetadata{
			MinFee: intPtr(50000),
			MaxFee: intPtr(100000),
		},
	}

	// Диапазон колледжа [50000, 100000] целиком выше max_fee=40000
	assert.False(t, matchesFeeRange(&c, nil, intPtr(40000)))

	// max_fee=60000 пересекается с диапазоном
	assert.True(t, matchesFeeRange(&c, nil, intPtr(60000)))

	// min_fee=120000 целиком выше диапазона колледжа
	assert.False(t, matchesFeeRange(&c, intPtr(120000), nil))

	// Интервал [60000, 80000] внутри диапазона
	assert.True(t, matchesFeeRange(&c, intPtr(60000), intPtr(80000)))
}

func TestMatchesFeeRange_MissingBandNeverExcludes(t *testing.T) {
	// Колледж без записанного диапазона не исключается фильтром
	c := entity.College{}

	assert.True(t, matchesFeeRange(&c, intPtr(10000), intPtr(20000)))
	assert.True(t, matchesFeeRange(&c, nil, intPtr(1)))
}

// ===================== matchesFilters / applyFilters Tests =====================

func TestMatchesFilters_ScholarshipsRequired(t *testing.T) {
	withScholarships := entity.College{
		Metadata: entity.CollegeMetadata{Scholarships: boolPtr(true)},
	}
	withoutScholarships := entity.College{
		Metadata: entity.CollegeMetadata{Scholarships: boolPtr(false)},
	}
	unknown := entity.College{}

	filters := CollegeFilters{Scholarships: true}

	assert.True(t, matchesFilters(&withScholarships, filters))
	assert.False(t, matchesFilters(&withoutScholarships, filters))
	// Отсутствие сведений о стипендиях исключает колледж из выборки
	assert.False(t, matchesFilters(&unknown, filters))
}

func TestApplyFilters_CombinesWithAnd(t *testing.T) {
	matching := entity.College{
		Name:     "Match",
		Programs: []string{"BBA"},
		Metadata: entity.CollegeMetadata{
			MinFee:       intPtr(30000),
			MaxFee:       intPtr(60000),
			Scholarships: boolPtr(true),
		},
	}
	wrongStream := entity.College{
		Name:     "WrongStream",
		Programs: []string{"+2 Science"},
		Metadata: entity.CollegeMetadata{
			MinFee:       intPtr(30000),
			MaxFee:       intPtr(60000),
			Scholarships: boolPtr(true),
		},
	}
	tooExpensive := entity.College{
		Name:     "TooExpensive",
		Programs: []string{"BBA"},
		Metadata: entity.CollegeMetadata{
			MinFee:       intPtr(90000),
			MaxFee:       intPtr(120000),
			Scholarships: boolPtr(true),
		},
	}

	filters := CollegeFilters{
		Streams:      []string{"commerce"},
		MaxFee:       intPtr(70000),
		Scholarships: true,
	}

	filtered := applyFilters([]entity.College{matching, wrongStream, tooExpensive}, filters)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Match", filtered[0].Name)
}

func TestApplyFilters_EmptyFiltersPassThrough(t *testing.T) {
	input := []entity.College{{Name: "A"}, {Name: "B"}}

	filtered := applyFilters(input, CollegeFilters{})

	assert.Equal(t, input, filtered)
}
