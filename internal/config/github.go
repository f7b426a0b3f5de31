package config

import (
	"fmt"
	"net/url"
	"time"
)

// GitHubConfig holds the upstream GitHub API settings.
type GitHubConfig struct {
	// Token is a personal access token. Requests are anonymous when empty.
	Token string
	// GraphQLURL and RESTURL point at GitHub Enterprise when set.
	GraphQLURL string
	RESTURL    string
	// MaxPages bounds every paginated repository listing.
	MaxPages int
	// RateLimitSleep is the longest single wait on a secondary rate limit.
	RateLimitSleep time.Duration
}

// LoadGitHubConfigFromEnv loads GitHub configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	return GitHubConfig{
		Token:          GetEnv("GITHUB_TOKEN", ""),
		GraphQLURL:     GetEnv("GITHUB_GRAPHQL_URL", ""),
		RESTURL:        GetEnv("GITHUB_REST_URL", ""),
		MaxPages:       GetEnvInt("GITHUB_MAX_PAGES", 10),
		RateLimitSleep: GetEnvDuration("GITHUB_RATE_LIMIT_SLEEP", 10*time.Second),
	}
}

// Validate validates GitHub configuration.
func (c GitHubConfig) Validate() error {
	if c.MaxPages <= 0 {
		return fmt.Errorf("MaxPages must be greater than 0")
	}
	if c.RateLimitSleep < 0 {
		return fmt.Errorf("RateLimitSleep must not be negative")
	}
	for name, raw := range map[string]string{"GITHUB_GRAPHQL_URL": c.GraphQLURL, "GITHUB_REST_URL": c.RESTURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q", name, raw)
		}
	}
	return nil
}
