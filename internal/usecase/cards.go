package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/naka-gawa/readme-stats/internal/card"
	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/gateway"
	"github.com/naka-gawa/readme-stats/internal/locale"
	"github.com/naka-gawa/readme-stats/internal/params"
)

// Result is a rendered card and how long it may be cached.
// Err is set when SVG is an error card.
type Result struct {
	SVG          string
	CacheSeconds int
	Err          error
}

// CacheControl returns the Cache-Control header value for the result.
func (r Result) CacheControl() string {
	return params.CacheControl(r.CacheSeconds)
}

// CardService validates a card request, fetches its data and renders it.
// Every method returns a card; failures are rendered as error cards.
type CardService struct {
	aggregator    *Aggregator
	renderer      *card.Renderer
	locales       *locale.Catalog
	denylist      map[string]bool
	cacheOverride string
	logger        *zap.SugaredLogger
}

// NewCardService creates a CardService. cacheOverride is the raw operator
// cache setting; denylist entries match logins case-insensitively.
func NewCardService(aggregator *Aggregator, renderer *card.Renderer, locales *locale.Catalog, denylist []string, cacheOverride string, logger *zap.SugaredLogger) *CardService {
	deny := make(map[string]bool, len(denylist))
	for _, name := range denylist {
		deny[strings.ToLower(name)] = true
	}
	return &CardService{
		aggregator:    aggregator,
		renderer:      renderer,
		locales:       locales,
		denylist:      deny,
		cacheOverride: cacheOverride,
		logger:        logger,
	}
}

// check runs the pre-fetch validations shared by every card.
func (s *CardService) check(username string, opts domain.RenderOptions) error {
	if s.denylist[strings.ToLower(username)] {
		return domain.Blocked()
	}
	if !s.locales.IsAvailable(opts.Locale) {
		return domain.Validation("Language not found")
	}
	return nil
}

func (s *CardService) success(svg string, q url.Values) Result {
	return Result{SVG: svg, CacheSeconds: params.CacheSeconds(q.Get("cache_seconds"), s.cacheOverride)}
}

func (s *CardService) failure(name string, err error, opts domain.RenderOptions) Result {
	var cardErr *domain.CardError
	if errors.As(err, &cardErr) && cardErr.Kind != domain.KindFetch {
		s.logger.Warnw("card request rejected", "card", name, "error", err)
	} else {
		s.logger.Errorw("card request failed", "card", name, "error", err)
	}
	return Result{
		SVG:          s.renderer.RenderFailure(err, opts.ColorOptions),
		CacheSeconds: params.ErrorCacheSeconds,
		Err:          err,
	}
}

// StatsCard renders the GitHub stats card for the "username" parameter.
func (s *CardService) StatsCard(ctx context.Context, q url.Values) Result {
	opts := params.Resolve(q)
	username := strings.TrimSpace(q.Get("username"))
	if username == "" {
		return s.failure("stats", domain.MissingParams("/api?username=USERNAME", "username"), opts)
	}
	if err := s.check(username, opts); err != nil {
		return s.failure("stats", err, opts)
	}

	stats, err := s.aggregator.FetchStats(ctx, StatsRequest{
		Login:             username,
		IncludeAllCommits: opts.IncludeAllCommits,
		ExcludeRepos:      params.ParseList(q.Get("exclude_repo")),
		MergedPRs:         opts.Shows("prs_merged") || opts.Shows("prs_merged_percentage"),
		DiscussionsStart:  opts.Shows("discussions_started"),
		DiscussionsAnswer: opts.Shows("discussions_answered"),
	})
	if err != nil {
		return s.failure("stats", err, opts)
	}
	return s.success(s.renderer.RenderStatsCard(stats, opts), q)
}

// TopLanguagesCard renders the most used languages card.
func (s *CardService) TopLanguagesCard(ctx context.Context, q url.Values) Result {
	opts := params.Resolve(q)
	username := strings.TrimSpace(q.Get("username"))
	if username == "" {
		return s.failure("top-langs", domain.MissingParams("/api/top-langs?username=USERNAME", "username"), opts)
	}
	if err := s.check(username, opts); err != nil {
		return s.failure("top-langs", err, opts)
	}
	if q.Has("layout") && (opts.Layout == "" || !opts.Layout.Valid()) {
		return s.failure("top-langs", domain.Validation("Incorrect layout input"), opts)
	}

	totals, err := s.aggregator.FetchTopLanguages(ctx, username, params.ParseList(q.Get("exclude_repo")))
	if err != nil {
		return s.failure("top-langs", err, opts)
	}
	return s.success(s.renderer.RenderTopLanguages(totals, opts), q)
}

// RepoCard renders the pinned repository card for "username" and "repo".
// Very popular and unstarred repositories are cached for the minimum window
// unless the request asks otherwise.
func (s *CardService) RepoCard(ctx context.Context, q url.Values) Result {
	opts := params.Resolve(q)
	username := strings.TrimSpace(q.Get("username"))
	repoName := strings.TrimSpace(q.Get("repo"))
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if repoName == "" {
		missing = append(missing, "repo")
	}
	if len(missing) > 0 {
		return s.failure("pin", domain.MissingParams("/api/pin?username=USERNAME&repo=REPO_NAME", missing...), opts)
	}
	if err := s.check(username, opts); err != nil {
		return s.failure("pin", err, opts)
	}

	repo, err := s.aggregator.FetchRepo(ctx, username, repoName)
	if err != nil {
		return s.failure("pin", err, opts)
	}

	result := s.success(s.renderer.RenderRepoCard(repo, opts), q)
	bothOver1K := repo.StarCount > 1000 && repo.ForkCount > 1000
	bothUnder1 := repo.StarCount < 1 && repo.ForkCount < 1
	if q.Get("cache_seconds") == "" && (bothOver1K || bothUnder1) {
		result.CacheSeconds = params.SixHours
	}
	return result
}

// WakatimeCard renders the WakaTime languages card.
func (s *CardService) WakatimeCard(ctx context.Context, q url.Values) Result {
	opts := params.Resolve(q)
	username := strings.TrimSpace(q.Get("username"))
	if username == "" {
		return s.failure("wakatime", domain.MissingParams("/api/wakatime?username=USERNAME", "username"), opts)
	}
	if err := s.check(username, opts); err != nil {
		return s.failure("wakatime", err, opts)
	}
	if opts.APIDomain != "" && !gateway.IsValidAPIDomain(opts.APIDomain) {
		return s.failure("wakatime", domain.Validation("Invalid api_domain"), opts)
	}

	stats, err := s.aggregator.FetchWakatime(ctx, username, opts.APIDomain)
	if err != nil {
		return s.failure("wakatime", err, opts)
	}
	return s.success(s.renderer.RenderWakatimeCard(stats, opts), q)
}
