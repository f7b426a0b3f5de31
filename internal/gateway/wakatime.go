package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

// DefaultWakatimeDomain is queried when a request names no api_domain.
const DefaultWakatimeDomain = "wakatime.com"

var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*(:[0-9]{1,5})?$`)

// IsValidAPIDomain reports whether domain is a bare host[:port] without
// scheme, path, credentials or query.
func IsValidAPIDomain(domain string) bool {
	return hostnamePattern.MatchString(domain)
}

// WakatimeFetcher fetches a user's public WakaTime summary.
type WakatimeFetcher interface {
	FetchWakatimeStats(ctx context.Context, username, apiDomain string) (*domain.WakatimeStats, error)
}

// WakatimeGateway calls the WakaTime compatible stats endpoint.
type WakatimeGateway struct {
	client        *http.Client
	scheme        string
	defaultDomain string
	logger        *zap.SugaredLogger
}

// NewWakatimeGateway creates a WakatimeGateway. An empty defaultDomain selects wakatime.com.
func NewWakatimeGateway(defaultDomain string, logger *zap.SugaredLogger) *WakatimeGateway {
	if defaultDomain == "" {
		defaultDomain = DefaultWakatimeDomain
	}
	return &WakatimeGateway{
		client:        &http.Client{Timeout: 10 * time.Second},
		scheme:        "https",
		defaultDomain: defaultDomain,
		logger:        logger,
	}
}

type wakatimeResponse struct {
	Data struct {
		Username                string `json:"username"`
		Range                   string `json:"range"`
		HumanReadableRange      string `json:"human_readable_range"`
		IsCodingActivityVisible bool   `json:"is_coding_activity_visible"`
		IsOtherUsageVisible     bool   `json:"is_other_usage_visible"`
		Languages               []struct {
			Name    string  `json:"name"`
			Percent float64 `json:"percent"`
			Text    string  `json:"text"`
			Hours   int     `json:"hours"`
			Minutes int     `json:"minutes"`
		} `json:"languages"`
	} `json:"data"`
}

// FetchWakatimeStats reads /api/v1/users/{username}/stats. Any non-2xx answer
// means the profile is missing or private.
func (g *WakatimeGateway) FetchWakatimeStats(ctx context.Context, username, apiDomain string) (*domain.WakatimeStats, error) {
	if apiDomain == "" {
		apiDomain = g.defaultDomain
	}
	if !IsValidAPIDomain(apiDomain) {
		return nil, domain.Validation("Invalid api_domain")
	}

	endpoint := fmt.Sprintf("%s://%s/api/v1/users/%s/stats?is_including_today=true",
		g.scheme, apiDomain, url.PathEscape(username))
	g.logger.Debugw("fetching wakatime stats", "username", username, "domain", apiDomain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.FetchFailed("", fmt.Errorf("creating wakatime request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, domain.FetchFailed("", fmt.Errorf("wakatime request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Debugw("wakatime returned an error", "status", resp.StatusCode, "body", string(body))
		return nil, domain.UserNotFound(username, "Make sure you have a public WakaTime profile")
	}

	var payload wakatimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.FetchFailed("", fmt.Errorf("decoding wakatime response: %w", err))
	}

	d := payload.Data
	stats := &domain.WakatimeStats{
		Username:                d.Username,
		Range:                   d.Range,
		IsCodingActivityVisible: d.IsCodingActivityVisible,
		IsOtherUsageVisible:     d.IsOtherUsageVisible,
		Languages:               make([]domain.WakatimeLanguage, 0, len(d.Languages)),
	}
	for _, l := range d.Languages {
		stats.Languages = append(stats.Languages, domain.WakatimeLanguage{
			Name:    l.Name,
			Percent: l.Percent,
			Text:    l.Text,
			Hours:   l.Hours,
			Minutes: l.Minutes,
		})
	}
	return stats, nil
}
