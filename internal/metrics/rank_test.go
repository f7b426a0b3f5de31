package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRank(t *testing.T) {
	cfg := DefaultRankConfig()

	testCases := []struct {
		name          string
		input         RankInput
		expectedLevel string
	}{
		{
			name:          "no activity is the lowest tier",
			input:         RankInput{},
			expectedLevel: "C",
		},
		{
			name: "very large counters reach the top tier",
			input: RankInput{
				Commits: 100000, PRs: 100000, Issues: 100000,
				Reviews: 100000, Stars: 10000000, Followers: 10000000,
			},
			expectedLevel: "S",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rank := CalculateRank(cfg, tc.input)
			assert.Equal(t, tc.expectedLevel, rank.Level)
			assert.GreaterOrEqual(t, rank.Percentile, 0.0)
			assert.LessOrEqual(t, rank.Percentile, 100.0)
		})
	}
}

func TestCalculateRank_ZeroStatsIsHundredthPercentile(t *testing.T) {
	rank := CalculateRank(DefaultRankConfig(), RankInput{})
	assert.Equal(t, 100.0, rank.Percentile)
}

// Raising any single counter must never worsen the percentile.
func TestCalculateRank_Monotonic(t *testing.T) {
	cfg := DefaultRankConfig()
	base := RankInput{Commits: 120, PRs: 15, Issues: 8, Reviews: 1, Stars: 30, Followers: 5}
	baseRank := CalculateRank(cfg, base)

	bumps := map[string]func(in RankInput) RankInput{
		"commits":   func(in RankInput) RankInput { in.Commits += 500; return in },
		"prs":       func(in RankInput) RankInput { in.PRs += 100; return in },
		"issues":    func(in RankInput) RankInput { in.Issues += 50; return in },
		"reviews":   func(in RankInput) RankInput { in.Reviews += 10; return in },
		"stars":     func(in RankInput) RankInput { in.Stars += 1000; return in },
		"followers": func(in RankInput) RankInput { in.Followers += 100; return in },
	}

	for name, bump := range bumps {
		t.Run(name, func(t *testing.T) {
			bumped := CalculateRank(cfg, bump(base))
			assert.Less(t, bumped.Percentile, baseRank.Percentile)
		})
	}
}

func TestCalculateRank_AllCommitsUsesLargerMedian(t *testing.T) {
	cfg := DefaultRankConfig()
	in := RankInput{Commits: 500}

	yearly := CalculateRank(cfg, in)
	in.AllCommits = true
	allTime := CalculateRank(cfg, in)

	assert.Greater(t, allTime.Percentile, yearly.Percentile)
}

func TestLevelFor(t *testing.T) {
	cfg := DefaultRankConfig()
	testCases := []struct {
		percentile float64
		expected   string
	}{
		{0.5, "S"},
		{1, "S"},
		{10, "A+"},
		{25, "A"},
		{30, "A-"},
		{45, "B+"},
		{60, "B"},
		{70, "B-"},
		{80, "C+"},
		{99, "C"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, levelFor(cfg, tc.percentile), "percentile %v", tc.percentile)
	}
}
