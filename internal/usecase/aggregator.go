// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/gateway"
	"github.com/naka-gawa/readme-stats/internal/metrics"
)

// StatsRequest selects what FetchStats queries besides the main counters.
type StatsRequest struct {
	Login             string
	IncludeAllCommits bool
	ExcludeRepos      []string
	MergedPRs         bool
	DiscussionsStart  bool
	DiscussionsAnswer bool
}

// Aggregator is the use case for aggregating GitHub and WakaTime data.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher  gateway.Fetcher
	wakatime gateway.WakatimeFetcher
	rank     metrics.RankConfig
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, wakatime gateway.WakatimeFetcher, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		wakatime: wakatime,
		rank:     metrics.DefaultRankConfig(),
		logger:   logger,
		now:      time.Now,
	}
}

// FetchStats fetches all counters of a user concurrently and derives the rank.
// The first failing query cancels the others.
func (a *Aggregator) FetchStats(ctx context.Context, req StatsRequest) (*domain.Stats, error) {
	a.logger.Debugw("aggregating stats", "login", req.Login)
	now := a.now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var (
		user                         *gateway.UserStats
		stars                        []gateway.RepoStars
		allCommits, merged           int
		discussStarted, discussAnswd int
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		user, err = a.fetcher.FetchUserStats(egCtx, req.Login, yearStart)
		return err
	})

	eg.Go(func() error {
		var err error
		stars, err = a.fetcher.FetchRepoStars(egCtx, req.Login)
		return err
	})

	if req.IncludeAllCommits {
		eg.Go(func() error {
			var err error
			allCommits, err = a.fetcher.FetchAllTimeCommits(egCtx, req.Login)
			return err
		})
	}
	if req.MergedPRs {
		eg.Go(func() error {
			var err error
			merged, err = a.fetcher.FetchMergedPRCount(egCtx, req.Login)
			return err
		})
	}
	if req.DiscussionsStart {
		eg.Go(func() error {
			var err error
			discussStarted, err = a.fetcher.FetchDiscussionsStarted(egCtx, req.Login)
			return err
		})
	}
	if req.DiscussionsAnswer {
		eg.Go(func() error {
			var err error
			discussAnswd, err = a.fetcher.FetchDiscussionsAnswered(egCtx, req.Login)
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	excluded := toSet(req.ExcludeRepos)
	totalStars := 0
	for _, r := range stars {
		if !excluded[r.Name] {
			totalStars += r.Stars
		}
	}

	stats := &domain.Stats{
		Name:              user.Name,
		Login:             user.Login,
		TotalStars:        totalStars,
		TotalCommits:      user.Commits + user.RestrictedCommits,
		IncludeAllCommits: req.IncludeAllCommits,
		TotalPRs:          user.PullRequests,
		TotalReviews:      user.Reviews,
		TotalIssues:       user.OpenIssues + user.ClosedIssues,
		ContributedTo:     user.ContributedTo,
		Followers:         user.Followers,
	}
	if req.IncludeAllCommits {
		stats.TotalCommits = allCommits
	} else {
		stats.CommitsYear = now.Year()
	}
	if req.MergedPRs {
		percentage := 0.0
		if stats.TotalPRs > 0 {
			percentage = float64(merged) / float64(stats.TotalPRs) * 100
		}
		stats.TotalPRsMerged = &merged
		stats.MergedPRsPercentage = &percentage
	}
	if req.DiscussionsStart {
		stats.TotalDiscussionsStarted = &discussStarted
	}
	if req.DiscussionsAnswer {
		stats.TotalDiscussionsAnswered = &discussAnswd
	}

	stats.Rank = metrics.CalculateRank(a.rank, metrics.RankInput{
		AllCommits: req.IncludeAllCommits,
		Commits:    stats.TotalCommits,
		PRs:        stats.TotalPRs,
		Issues:     stats.TotalIssues,
		Reviews:    stats.TotalReviews,
		Stars:      stats.TotalStars,
		Followers:  stats.Followers,
	})

	a.logger.Debugw("stats aggregated", "login", req.Login, "rank", stats.Rank.Level)
	return stats, nil
}

// FetchTopLanguages sums language sizes over the user's repositories, skipping excluded ones.
func (a *Aggregator) FetchTopLanguages(ctx context.Context, login string, excludeRepos []string) (domain.LanguageTotals, error) {
	repos, err := a.fetcher.FetchRepoLanguages(ctx, login)
	if err != nil {
		return nil, err
	}

	excluded := toSet(excludeRepos)
	totals := make(domain.LanguageTotals)
	for _, repo := range repos {
		if excluded[repo.Name] {
			continue
		}
		for _, edge := range repo.Languages {
			lang := totals[edge.Name]
			lang.Name = edge.Name
			if lang.Color == "" {
				lang.Color = edge.Color
			}
			lang.Size += edge.Size
			lang.Count++
			totals[edge.Name] = lang
		}
	}
	a.logger.Debugw("languages aggregated", "login", login, "repositories", len(repos), "languages", len(totals))
	return totals, nil
}

// FetchRepo fetches a single repository for the pin card.
func (a *Aggregator) FetchRepo(ctx context.Context, owner, repo string) (*domain.Repo, error) {
	return a.fetcher.FetchRepo(ctx, owner, repo)
}

// FetchWakatime fetches a WakaTime summary from apiDomain, or the configured default when empty.
func (a *Aggregator) FetchWakatime(ctx context.Context, username, apiDomain string) (*domain.WakatimeStats, error) {
	return a.wakatime.FetchWakatimeStats(ctx, username, apiDomain)
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
