package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

func names(langs []RankedLanguage) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = l.Name
	}
	return out
}

func TestTopLanguages(t *testing.T) {
	totals := domain.LanguageTotals{
		"Go":         {Name: "Go", Size: 500, Count: 2},
		"JavaScript": {Name: "JavaScript", Size: 300, Count: 6},
		"Shell":      {Name: "Shell", Size: 300, Count: 1},
		"CSS":        {Name: "CSS", Size: 100, Count: 4},
	}

	testCases := []struct {
		name     string
		query    LanguageQuery
		expected []string
	}{
		{
			name:     "size only with name tie-break",
			query:    LanguageQuery{SizeWeight: 1, Count: 10},
			expected: []string{"Go", "JavaScript", "Shell", "CSS"},
		},
		{
			name:     "count only",
			query:    LanguageQuery{CountWeight: 1, Count: 10},
			expected: []string{"JavaScript", "CSS", "Go", "Shell"},
		},
		{
			name:     "zero weights fall back to size",
			query:    LanguageQuery{Count: 10},
			expected: []string{"Go", "JavaScript", "Shell", "CSS"},
		},
		{
			name:     "hide is case-insensitive",
			query:    LanguageQuery{SizeWeight: 1, Count: 10, Hide: []string{"javascript", " GO "}},
			expected: []string{"Shell", "CSS"},
		},
		{
			name:     "truncated to count",
			query:    LanguageQuery{SizeWeight: 1, Count: 2},
			expected: []string{"Go", "JavaScript"},
		},
		{
			name:     "non-positive count keeps one",
			query:    LanguageQuery{SizeWeight: 1, Count: 0},
			expected: []string{"Go"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, names(TopLanguages(totals, tc.query)))
		})
	}
}

func TestTopLanguages_ClampsToMax(t *testing.T) {
	totals := domain.LanguageTotals{}
	for i := 0; i < 40; i++ {
		name := string(rune('A'+i%26)) + string(rune('a'+i/26))
		totals[name] = domain.Language{Name: name, Size: int64(i + 1)}
	}

	ranked := TopLanguages(totals, LanguageQuery{SizeWeight: 1, Count: 9999})
	assert.Len(t, ranked, MaxLangsCount)
}

func TestTopLanguages_Deterministic(t *testing.T) {
	totals := domain.LanguageTotals{
		"B": {Size: 10}, "A": {Size: 10}, "C": {Size: 10}, "D": {Size: 10},
	}
	first := names(TopLanguages(totals, LanguageQuery{Count: 4}))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, names(TopLanguages(totals, LanguageQuery{Count: 4})))
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, first)
}

func TestShares(t *testing.T) {
	langs := []RankedLanguage{{Score: 300}, {Score: 100}}
	assert.Equal(t, []float64{75, 25}, Shares(langs))

	zero := Shares([]RankedLanguage{{Score: 0}})
	require.Len(t, zero, 1)
	assert.Equal(t, 0.0, zero[0])

	assert.Empty(t, Shares(nil))
}

func TestRenormalize(t *testing.T) {
	assert.Equal(t, []float64{75, 25}, Renormalize([]float64{30, 10}))
	assert.Equal(t, []float64{0, 0}, Renormalize([]float64{0, 0}))
}
