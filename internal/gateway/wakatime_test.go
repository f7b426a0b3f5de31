package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

func setupTestWakatimeGateway(t *testing.T, handler http.Handler) (*WakatimeGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	gateway := NewWakatimeGateway(strings.TrimPrefix(server.URL, "http://"), zap.NewNop().Sugar())
	gateway.client = server.Client()
	gateway.scheme = "http"
	return gateway, server
}

func TestWakatimeGateway_FetchWakatimeStats(t *testing.T) {
	testCases := []struct {
		name          string
		handlerFunc   func(w http.ResponseWriter, r *http.Request)
		expected      *domain.WakatimeStats
		expectedError error
	}{
		{
			name: "happy path - maps the summary",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/users/coder/stats", r.URL.Path)
				assert.Equal(t, "true", r.URL.Query().Get("is_including_today"))
				fmt.Fprint(w, `{"data":{"username":"coder","range":"last_7_days","is_coding_activity_visible":true,"is_other_usage_visible":false,
					"languages":[{"name":"Go","percent":61.5,"text":"5 hrs 3 mins","hours":5,"minutes":3},{"name":"YAML","percent":38.5,"text":"3 hrs","hours":3,"minutes":0}]}}`)
			},
			expected: &domain.WakatimeStats{
				Username:                "coder",
				Range:                   "last_7_days",
				IsCodingActivityVisible: true,
				Languages: []domain.WakatimeLanguage{
					{Name: "Go", Percent: 61.5, Text: "5 hrs 3 mins", Hours: 5, Minutes: 3},
					{Name: "YAML", Percent: 38.5, Text: "3 hrs", Hours: 3},
				},
			},
		},
		{
			name: "no languages is not an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data":{"username":"idle","languages":[]}}`)
			},
			expected: &domain.WakatimeStats{Username: "idle", Languages: []domain.WakatimeLanguage{}},
		},
		{
			name: "error case - profile is missing",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"error":"Not found."}`)
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name: "error case - profile is private",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name: "error case - malformed body",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data":`)
			},
			expectedError: domain.ErrFetch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestWakatimeGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			stats, err := gateway.FetchWakatimeStats(context.Background(), "coder", "")

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, stats)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stats)
		})
	}
}

func TestWakatimeGateway_MissingProfileHint(t *testing.T) {
	gateway, server := setupTestWakatimeGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := gateway.FetchWakatimeStats(context.Background(), "ghost", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Make sure you have a public WakaTime profile")
}

func TestWakatimeGateway_RejectsInvalidAPIDomain(t *testing.T) {
	called := false
	gateway, server := setupTestWakatimeGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := gateway.FetchWakatimeStats(context.Background(), "coder", "evil.example/redirect?to=")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called)
}

func TestIsValidAPIDomain(t *testing.T) {
	testCases := []struct {
		domain string
		valid  bool
	}{
		{"wakatime.com", true},
		{"wakapi.dev", true},
		{"localhost:3000", true},
		{"127.0.0.1:8080", true},
		{"", false},
		{"https://wakatime.com", false},
		{"wakatime.com/api", false},
		{"user@wakatime.com", false},
		{"-bad.example", false},
		{"wakatime.com?x=1", false},
	}
	for _, tc := range testCases {
		t.Run(tc.domain, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidAPIDomain(tc.domain))
		})
	}
}
