// Package domain contains the core data structures and domain logic for the application.
package domain

// Rank is the derived standing of a user. Percentile runs from 0 to 100, lower is better.
type Rank struct {
	Level      string  `json:"level"`
	Percentile float64 `json:"percentile"`
}

// Stats holds the normalized counters of a single GitHub user.
// It is the core domain entity of the stats card.
//
// Pointer fields are only populated when the caller opted into the
// corresponding sub-query.
type Stats struct {
	Name                     string   `json:"name"`
	Login                    string   `json:"login"`
	TotalStars               int      `json:"total_stars"`
	TotalCommits             int      `json:"total_commits"`
	CommitsYear              int      `json:"commits_year"`
	IncludeAllCommits        bool     `json:"include_all_commits"`
	TotalPRs                 int      `json:"total_prs"`
	TotalPRsMerged           *int     `json:"total_prs_merged,omitempty"`
	MergedPRsPercentage      *float64 `json:"merged_prs_percentage,omitempty"`
	TotalReviews             int      `json:"total_reviews"`
	TotalIssues              int      `json:"total_issues"`
	TotalDiscussionsStarted  *int     `json:"total_discussions_started,omitempty"`
	TotalDiscussionsAnswered *int     `json:"total_discussions_answered,omitempty"`
	ContributedTo            int      `json:"contributed_to"`
	Followers                int      `json:"followers"`
	Rank                     Rank     `json:"rank"`
}

// DisplayName returns the user's profile name, falling back to the login.
func (s *Stats) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Login
}

// Language is one entry of a user's language breakdown.
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	// Size is the accumulated byte size across repositories.
	Size int64 `json:"size"`
	// Count is the number of repositories the language appears in.
	Count int `json:"count"`
}

// LanguageTotals maps a language name to its accumulated totals.
type LanguageTotals map[string]Language

// Repo holds what the pinned repository card displays.
type Repo struct {
	Name            string `json:"name"`
	NameWithOwner   string `json:"name_with_owner"`
	Description     string `json:"description"`
	PrimaryLanguage string `json:"primary_language"`
	LanguageColor   string `json:"language_color"`
	StarCount       int    `json:"star_count"`
	ForkCount       int    `json:"fork_count"`
	IsTemplate      bool   `json:"is_template"`
	IsArchived      bool   `json:"is_archived"`
}

// WakatimeLanguage is a single language row of a WakaTime summary.
type WakatimeLanguage struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Text    string  `json:"text"`
	Hours   int     `json:"hours"`
	Minutes int     `json:"minutes"`
}

// WakatimeStats is the normalized WakaTime summary for one user.
type WakatimeStats struct {
	Username                string             `json:"username"`
	Range                   string             `json:"range"`
	IsCodingActivityVisible bool               `json:"is_coding_activity_visible"`
	IsOtherUsageVisible     bool               `json:"is_other_usage_visible"`
	Languages               []WakatimeLanguage `json:"languages"`
}
