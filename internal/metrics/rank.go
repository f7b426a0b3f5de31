// Package metrics derives ranks, language orderings and display numbers from
// normalized stats. Every function is pure.
package metrics

import (
	"math"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

// RankInput holds the counters that feed the rank.
type RankInput struct {
	AllCommits bool
	Commits    int
	PRs        int
	Issues     int
	Reviews    int
	Stars      int
	Followers  int
}

// RankConfig holds the medians, weights and tier boundaries of the rank formula.
// Thresholds are ascending percentiles; Levels[i] applies up to Thresholds[i].
type RankConfig struct {
	CommitsMedian    float64
	AllCommitsMedian float64
	CommitsWeight    float64
	PRsMedian        float64
	PRsWeight        float64
	IssuesMedian     float64
	IssuesWeight     float64
	ReviewsMedian    float64
	ReviewsWeight    float64
	StarsMedian      float64
	StarsWeight      float64
	FollowersMedian  float64
	FollowersWeight  float64

	Thresholds []float64
	Levels     []string
}

// DefaultRankConfig returns the coefficients the cards have always been rendered with.
func DefaultRankConfig() RankConfig {
	return RankConfig{
		CommitsMedian:    250,
		AllCommitsMedian: 1000,
		CommitsWeight:    2,
		PRsMedian:        50,
		PRsWeight:        3,
		IssuesMedian:     25,
		IssuesWeight:     1,
		ReviewsMedian:    2,
		ReviewsWeight:    1,
		StarsMedian:      50,
		StarsWeight:      4,
		FollowersMedian:  10,
		FollowersWeight:  1,
		Thresholds:       []float64{1, 12.5, 25, 37.5, 50, 62.5, 75, 87.5, 100},
		Levels:           []string{"S", "A+", "A", "A-", "B+", "B", "B-", "C+", "C"},
	}
}

func exponentialCDF(x float64) float64 {
	return 1 - math.Pow(2, -x)
}

// logNormalCDF is the x/(1+x) approximation; it saturates slower than the
// exponential so a few very large star counts do not dominate.
func logNormalCDF(x float64) float64 {
	return x / (1 + x)
}

func ratio(v int, median float64) float64 {
	if v <= 0 || median <= 0 {
		return 0
	}
	return float64(v) / median
}

// CalculateRank computes the percentile (lower is better) and its tier.
// Increasing any counter never increases the percentile.
func CalculateRank(cfg RankConfig, in RankInput) domain.Rank {
	commitsMedian := cfg.CommitsMedian
	if in.AllCommits {
		commitsMedian = cfg.AllCommitsMedian
	}

	totalWeight := cfg.CommitsWeight + cfg.PRsWeight + cfg.IssuesWeight +
		cfg.ReviewsWeight + cfg.StarsWeight + cfg.FollowersWeight

	score := cfg.CommitsWeight*exponentialCDF(ratio(in.Commits, commitsMedian)) +
		cfg.PRsWeight*exponentialCDF(ratio(in.PRs, cfg.PRsMedian)) +
		cfg.IssuesWeight*exponentialCDF(ratio(in.Issues, cfg.IssuesMedian)) +
		cfg.ReviewsWeight*exponentialCDF(ratio(in.Reviews, cfg.ReviewsMedian)) +
		cfg.StarsWeight*logNormalCDF(ratio(in.Stars, cfg.StarsMedian)) +
		cfg.FollowersWeight*logNormalCDF(ratio(in.Followers, cfg.FollowersMedian))

	rank := 1.0
	if totalWeight > 0 {
		rank = 1 - score/totalWeight
	}
	percentile := math.Max(0, math.Min(100, rank*100))

	return domain.Rank{Level: levelFor(cfg, percentile), Percentile: percentile}
}

func levelFor(cfg RankConfig, percentile float64) string {
	for i, t := range cfg.Thresholds {
		if percentile <= t && i < len(cfg.Levels) {
			return cfg.Levels[i]
		}
	}
	if len(cfg.Levels) == 0 {
		return ""
	}
	return cfg.Levels[len(cfg.Levels)-1]
}
