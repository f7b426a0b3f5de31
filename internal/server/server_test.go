package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/naka-gawa/readme-stats/internal/config"
	"github.com/naka-gawa/readme-stats/internal/domain"
	"github.com/naka-gawa/readme-stats/internal/usecase"
)

// stubCards records which card was requested and with what query.
type stubCards struct {
	called string
	query  url.Values
	result usecase.Result
}

func (s *stubCards) render(name string, q url.Values) usecase.Result {
	s.called = name
	s.query = q
	return s.result
}

func (s *stubCards) StatsCard(_ context.Context, q url.Values) usecase.Result {
	return s.render("stats", q)
}

func (s *stubCards) TopLanguagesCard(_ context.Context, q url.Values) usecase.Result {
	return s.render("top-langs", q)
}

func (s *stubCards) RepoCard(_ context.Context, q url.Values) usecase.Result {
	return s.render("pin", q)
}

func (s *stubCards) WakatimeCard(_ context.Context, q url.Values) usecase.Result {
	return s.render("wakatime", q)
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{Port: ":0", ReadTimeout: time.Second, WriteTimeout: 5 * time.Second, IdleTimeout: time.Second}
}

func TestServer_CardRoutes(t *testing.T) {
	testCases := []struct {
		name           string
		path           string
		expectedCard   string
		expectedParam  string
		result         usecase.Result
		expectedHeader string
	}{
		{
			name:           "stats card",
			path:           "/api?username=octocat",
			expectedCard:   "stats",
			expectedParam:  "octocat",
			result:         usecase.Result{SVG: "<svg>stats</svg>", CacheSeconds: 21600},
			expectedHeader: "max-age=10800, s-maxage=21600, stale-while-revalidate=86400",
		},
		{
			name:           "pin card",
			path:           "/api/pin?username=acme&repo=widgets",
			expectedCard:   "pin",
			expectedParam:  "acme",
			result:         usecase.Result{SVG: "<svg>pin</svg>", CacheSeconds: 86400},
			expectedHeader: "max-age=43200, s-maxage=86400, stale-while-revalidate=86400",
		},
		{
			name:           "top languages card",
			path:           "/api/top-langs?username=octocat&layout=compact",
			expectedCard:   "top-langs",
			expectedParam:  "octocat",
			result:         usecase.Result{SVG: "<svg>langs</svg>", CacheSeconds: 21600},
			expectedHeader: "max-age=10800, s-maxage=21600, stale-while-revalidate=86400",
		},
		{
			name:           "error card is still served as an image",
			path:           "/api/wakatime?username=ghost",
			expectedCard:   "wakatime",
			expectedParam:  "ghost",
			result:         usecase.Result{SVG: "<svg>error</svg>", CacheSeconds: 600, Err: domain.UserNotFound("ghost", "")},
			expectedHeader: "max-age=300, s-maxage=600, stale-while-revalidate=86400",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cards := &stubCards{result: tc.result}
			srv := httptest.NewServer(New(testServerConfig(), cards, zap.NewNop().Sugar()).Handler())
			defer srv.Close()

			resp, err := http.Get(srv.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
			assert.Equal(t, tc.expectedHeader, resp.Header.Get("Cache-Control"))
			assert.Equal(t, tc.result.SVG, string(body))
			assert.Equal(t, tc.expectedCard, cards.called)
			assert.Equal(t, tc.expectedParam, cards.query.Get("username"))
		})
	}
}

func TestServer_Health(t *testing.T) {
	s := New(testServerConfig(), &stubCards{}, zap.NewNop().Sugar())
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_UnknownRouteAndMethod(t *testing.T) {
	s := New(testServerConfig(), &stubCards{}, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/pin", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		expectedLevel zapcore.Level
	}{
		{name: "success", status: http.StatusOK, expectedLevel: zapcore.InfoLevel},
		{name: "client error", status: http.StatusNotFound, expectedLevel: zapcore.WarnLevel},
		{name: "server error", status: http.StatusInternalServerError, expectedLevel: zapcore.ErrorLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			handler := requestLogger(zap.New(core).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("body"))
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api?username=octocat", nil))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tc.expectedLevel, entry.Level)
			assert.Equal(t, int64(tc.status), entry.ContextMap()["status"])
			assert.Equal(t, int64(4), entry.ContextMap()["bytes"])
			assert.Equal(t, "username=octocat", entry.ContextMap()["query"])
		})
	}
}

func TestServer_StartStopsOnCancel(t *testing.T) {
	cfg := testServerConfig()
	cfg.Host = "127.0.0.1"
	s := New(cfg, &stubCards{}, zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
