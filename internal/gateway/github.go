// Package gateway provides gateways to the GitHub and WakaTime APIs,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/readme-stats/internal/config"
	"github.com/naka-gawa/readme-stats/internal/domain"
)

// UserStats holds the counters returned by the main stats query.
type UserStats struct {
	Name              string
	Login             string
	Commits           int
	RestrictedCommits int
	Reviews           int
	ContributedTo     int
	PullRequests      int
	OpenIssues        int
	ClosedIssues      int
	Followers         int
}

// RepoStars is one owned repository with its star count.
type RepoStars struct {
	Name  string
	Stars int
}

// LanguageEdge is one language of a repository and its size in bytes.
type LanguageEdge struct {
	Name  string
	Color string
	Size  int64
}

// RepoLanguages is one owned repository with its largest languages.
type RepoLanguages struct {
	Name      string
	Languages []LanguageEdge
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUserStats(ctx context.Context, login string, since time.Time) (*UserStats, error)
	FetchRepoStars(ctx context.Context, login string) ([]RepoStars, error)
	FetchMergedPRCount(ctx context.Context, login string) (int, error)
	FetchDiscussionsStarted(ctx context.Context, login string) (int, error)
	FetchDiscussionsAnswered(ctx context.Context, login string) (int, error)
	FetchAllTimeCommits(ctx context.Context, login string) (int, error)
	FetchRepoLanguages(ctx context.Context, login string) ([]RepoLanguages, error)
	FetchRepo(ctx context.Context, owner, repo string) (*domain.Repo, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.SugaredLogger
	maxPages      int
}

type userStatsQuery struct {
	User struct {
		Name                    githubv4.String
		Login                   githubv4.String
		ContributionsCollection struct {
			TotalCommitContributions            githubv4.Int
			RestrictedContributionsCount        githubv4.Int
			TotalPullRequestReviewContributions githubv4.Int
		} `graphql:"contributionsCollection(from: $from)"`
		RepositoriesContributedTo struct {
			TotalCount githubv4.Int
		} `graphql:"repositoriesContributedTo(first: 1, contributionTypes: [COMMIT, ISSUE, PULL_REQUEST, REPOSITORY])"`
		PullRequests struct {
			TotalCount githubv4.Int
		} `graphql:"pullRequests(first: 1)"`
		OpenIssues struct {
			TotalCount githubv4.Int
		} `graphql:"openIssues: issues(states: OPEN)"`
		ClosedIssues struct {
			TotalCount githubv4.Int
		} `graphql:"closedIssues: issues(states: CLOSED)"`
		Followers struct {
			TotalCount githubv4.Int
		}
	} `graphql:"user(login: $login)"`
}

type repoStarsQuery struct {
	User struct {
		Repositories struct {
			Nodes []struct {
				Name       githubv4.String
				Stargazers struct {
					TotalCount githubv4.Int
				}
			}
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
		} `graphql:"repositories(first: 100, ownerAffiliations: OWNER, orderBy: {direction: DESC, field: STARGAZERS}, after: $cursor)"`
	} `graphql:"user(login: $login)"`
}

type mergedPRsQuery struct {
	User struct {
		PullRequests struct {
			TotalCount githubv4.Int
		} `graphql:"pullRequests(states: MERGED)"`
	} `graphql:"user(login: $login)"`
}

type discussionsStartedQuery struct {
	User struct {
		RepositoryDiscussions struct {
			TotalCount githubv4.Int
		}
	} `graphql:"user(login: $login)"`
}

type discussionsAnsweredQuery struct {
	User struct {
		RepositoryDiscussionComments struct {
			TotalCount githubv4.Int
		} `graphql:"repositoryDiscussionComments(onlyAnswers: true)"`
	} `graphql:"user(login: $login)"`
}

type repoLanguagesQuery struct {
	User struct {
		Repositories struct {
			Nodes []struct {
				Name      githubv4.String
				Languages struct {
					Edges []struct {
						Size githubv4.Int
						Node struct {
							Name  githubv4.String
							Color githubv4.String
						}
					}
				} `graphql:"languages(first: 10, orderBy: {field: SIZE, direction: DESC})"`
			}
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
		} `graphql:"repositories(ownerAffiliations: OWNER, isFork: false, first: 100, after: $cursor)"`
	} `graphql:"user(login: $login)"`
}

type repoQuery struct {
	RepositoryOwner struct {
		Login      githubv4.String
		Repository struct {
			Name            githubv4.String
			NameWithOwner   githubv4.String
			Description     githubv4.String
			IsPrivate       githubv4.Boolean
			IsArchived      githubv4.Boolean
			IsTemplate      githubv4.Boolean
			ForkCount       githubv4.Int
			Stargazers      struct{ TotalCount githubv4.Int }
			PrimaryLanguage struct {
				Name  githubv4.String
				Color githubv4.String
			}
		} `graphql:"repository(name: $repo)"`
	} `graphql:"repositoryOwner(login: $login)"`
}

// NewGitHubGateway creates a GitHubGateway. Both clients share one HTTP client
// that authenticates with the configured token and waits out secondary rate
// limits for at most cfg.RateLimitSleep.
func NewGitHubGateway(cfg config.GitHubConfig, logger *zap.SugaredLogger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(cfg.RateLimitSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}
	httpClient := &http.Client{Transport: transport}

	restClient := github.NewClient(httpClient)
	if cfg.RESTURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.RESTURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse REST URL: %w", err)
		}
		restClient.BaseURL = baseURL
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if cfg.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(cfg.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
		maxPages:      cfg.MaxPages,
	}, nil
}

// FetchUserStats runs the main stats query. Commits are counted from since.
func (g *GitHubGateway) FetchUserStats(ctx context.Context, login string, since time.Time) (*UserStats, error) {
	g.logger.Debugw("fetching user stats", "login", login)
	var q userStatsQuery
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: since},
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, classifyError(fmt.Errorf("failed to execute GraphQL query for user stats: %w", err), login)
	}
	if q.User.Login == "" {
		return nil, domain.UserNotFound(login, "")
	}

	u := q.User
	return &UserStats{
		Name:              string(u.Name),
		Login:             string(u.Login),
		Commits:           int(u.ContributionsCollection.TotalCommitContributions),
		RestrictedCommits: int(u.ContributionsCollection.RestrictedContributionsCount),
		Reviews:           int(u.ContributionsCollection.TotalPullRequestReviewContributions),
		ContributedTo:     int(u.RepositoriesContributedTo.TotalCount),
		PullRequests:      int(u.PullRequests.TotalCount),
		OpenIssues:        int(u.OpenIssues.TotalCount),
		ClosedIssues:      int(u.ClosedIssues.TotalCount),
		Followers:         int(u.Followers.TotalCount),
	}, nil
}

// FetchRepoStars lists owned repositories from most to least starred. Paging
// stops once a page ends with an unstarred repository.
func (g *GitHubGateway) FetchRepoStars(ctx context.Context, login string) ([]RepoStars, error) {
	variables := map[string]interface{}{"login": githubv4.String(login), "cursor": (*githubv4.String)(nil)}
	var repos []RepoStars
	for page := 1; page <= g.maxPages; page++ {
		g.logger.Debugw("fetching repository stars", "login", login, "page", page)
		var q repoStarsQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, classifyError(fmt.Errorf("failed to execute GraphQL query for repository stars: %w", err), login)
		}
		nodes := q.User.Repositories.Nodes
		for _, n := range nodes {
			repos = append(repos, RepoStars{Name: string(n.Name), Stars: int(n.Stargazers.TotalCount)})
		}
		if !q.User.Repositories.PageInfo.HasNextPage || len(nodes) == 0 || nodes[len(nodes)-1].Stargazers.TotalCount == 0 {
			break
		}
		variables["cursor"] = githubv4.NewString(q.User.Repositories.PageInfo.EndCursor)
	}
	return repos, nil
}

func (g *GitHubGateway) FetchMergedPRCount(ctx context.Context, login string) (int, error) {
	var q mergedPRsQuery
	if err := g.graphqlClient.Query(ctx, &q, map[string]interface{}{"login": githubv4.String(login)}); err != nil {
		return 0, classifyError(fmt.Errorf("failed to execute GraphQL query for merged pull requests: %w", err), login)
	}
	return int(q.User.PullRequests.TotalCount), nil
}

func (g *GitHubGateway) FetchDiscussionsStarted(ctx context.Context, login string) (int, error) {
	var q discussionsStartedQuery
	if err := g.graphqlClient.Query(ctx, &q, map[string]interface{}{"login": githubv4.String(login)}); err != nil {
		return 0, classifyError(fmt.Errorf("failed to execute GraphQL query for discussions: %w", err), login)
	}
	return int(q.User.RepositoryDiscussions.TotalCount), nil
}

func (g *GitHubGateway) FetchDiscussionsAnswered(ctx context.Context, login string) (int, error) {
	var q discussionsAnsweredQuery
	if err := g.graphqlClient.Query(ctx, &q, map[string]interface{}{"login": githubv4.String(login)}); err != nil {
		return 0, classifyError(fmt.Errorf("failed to execute GraphQL query for answered discussions: %w", err), login)
	}
	return int(q.User.RepositoryDiscussionComments.TotalCount), nil
}

// FetchAllTimeCommits reads the total of a REST commit search by author.
func (g *GitHubGateway) FetchAllTimeCommits(ctx context.Context, login string) (int, error) {
	g.logger.Debugw("searching all-time commits", "login", login)
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.restClient.Search.Commits(ctx, "author:"+login, opts)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusUnprocessableEntity {
			return 0, domain.UserNotFound(login, "")
		}
		return 0, domain.FetchFailed("Could not fetch total commits.", fmt.Errorf("failed to search commits with REST API: %w", err))
	}
	return result.GetTotal(), nil
}

// FetchRepoLanguages lists owned, non-fork repositories with their ten largest languages.
func (g *GitHubGateway) FetchRepoLanguages(ctx context.Context, login string) ([]RepoLanguages, error) {
	variables := map[string]interface{}{"login": githubv4.String(login), "cursor": (*githubv4.String)(nil)}
	var repos []RepoLanguages
	for page := 1; page <= g.maxPages; page++ {
		g.logger.Debugw("fetching repository languages", "login", login, "page", page)
		var q repoLanguagesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, classifyError(fmt.Errorf("failed to execute GraphQL query for languages: %w", err), login)
		}
		for _, n := range q.User.Repositories.Nodes {
			repo := RepoLanguages{Name: string(n.Name)}
			for _, e := range n.Languages.Edges {
				repo.Languages = append(repo.Languages, LanguageEdge{
					Name:  string(e.Node.Name),
					Color: string(e.Node.Color),
					Size:  int64(e.Size),
				})
			}
			repos = append(repos, repo)
		}
		if !q.User.Repositories.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.User.Repositories.PageInfo.EndCursor)
	}
	return repos, nil
}

// FetchRepo looks a repository up through its owner, which may be a user or an
// organization. Private repositories are reported as missing.
func (g *GitHubGateway) FetchRepo(ctx context.Context, owner, repo string) (*domain.Repo, error) {
	g.logger.Debugw("fetching repository", "owner", owner, "repo", repo)
	var q repoQuery
	variables := map[string]interface{}{
		"login": githubv4.String(owner),
		"repo":  githubv4.String(repo),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		if isNotFound(err) {
			return nil, domain.RepoNotFound(owner, repo)
		}
		return nil, classifyError(fmt.Errorf("failed to execute GraphQL query for repository: %w", err), owner)
	}

	r := q.RepositoryOwner.Repository
	if q.RepositoryOwner.Login == "" || r.Name == "" || bool(r.IsPrivate) {
		return nil, domain.RepoNotFound(owner, repo)
	}
	return &domain.Repo{
		Name:            string(r.Name),
		NameWithOwner:   string(r.NameWithOwner),
		Description:     string(r.Description),
		PrimaryLanguage: string(r.PrimaryLanguage.Name),
		LanguageColor:   string(r.PrimaryLanguage.Color),
		StarCount:       int(r.Stargazers.TotalCount),
		ForkCount:       int(r.ForkCount),
		IsTemplate:      bool(r.IsTemplate),
		IsArchived:      bool(r.IsArchived),
	}, nil
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "Could not resolve to a")
}

// classifyError maps a failed query onto the card error taxonomy. Only GraphQL
// error messages are passed through as the secondary line; transport and HTTP
// status failures get the generic hint.
func classifyError(err error, login string) error {
	msg := err.Error()
	if isNotFound(err) {
		return domain.UserNotFound(login, "")
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || strings.Contains(msg, "non-200 OK status code") {
		return domain.FetchFailed("", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.FetchFailed("", err)
	}
	return domain.FetchFailed(upstreamMessage(err), err)
}

// upstreamMessage strips our wrapping prefixes, leaving GitHub's own text.
func upstreamMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
