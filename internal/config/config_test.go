package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAndRestoreEnv saves original env vars and sets new ones for testing.
func setupAndRestoreEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()
	keys := []string{
		"SERVER_PORT", "LOG_LEVEL", "GITHUB_TOKEN", "GITHUB_MAX_PAGES",
		"GITHUB_RATE_LIMIT_SLEEP", "CACHE_SECONDS", "DENYLIST", "WAKATIME_DOMAIN",
	}
	for key := range envVars {
		keys = append(keys, key)
	}
	originalEnv := make(map[string]string)
	for _, key := range keys {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	for key, value := range envVars {
		os.Setenv(key, value)
	}
	return func() {
		for _, key := range keys {
			os.Unsetenv(key)
		}
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Logger: LoggerConfig{Level: "info", Format: "json"},
		GitHub: GitHubConfig{MaxPages: 10, RateLimitSleep: 10 * time.Second},
		Cards:  CardsConfig{WakatimeDomain: "wakatime.com"},
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 10, cfg.GitHub.MaxPages)
	assert.Equal(t, 10*time.Second, cfg.GitHub.RateLimitSleep)
	assert.Equal(t, "wakatime.com", cfg.Cards.WakatimeDomain)
	assert.Equal(t, DefaultDenylist, cfg.Cards.Denylist)
	assert.Empty(t, cfg.Cards.CacheSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{
		"SERVER_PORT":             ":9090",
		"LOG_LEVEL":               "debug",
		"GITHUB_TOKEN":            "ghp_test",
		"GITHUB_MAX_PAGES":        "3",
		"GITHUB_RATE_LIMIT_SLEEP": "2s",
		"CACHE_SECONDS":           "1800",
		"DENYLIST":                "spammer, sw-yx ,",
		"WAKATIME_DOMAIN":         "wakapi.dev",
	})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, 3, cfg.GitHub.MaxPages)
	assert.Equal(t, 2*time.Second, cfg.GitHub.RateLimitSleep)
	assert.Equal(t, "1800", cfg.Cards.CacheSeconds)
	assert.Equal(t, "wakapi.dev", cfg.Cards.WakatimeDomain)
	assert.Equal(t, append(append([]string{}, DefaultDenylist...), "spammer"), cfg.Cards.Denylist)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *Config)
		expectErr string
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{
			name:      "invalid server config",
			mutate:    func(c *Config) { c.Server.ReadTimeout = 0 },
			expectErr: "server config validation failed",
		},
		{
			name:      "invalid logger config",
			mutate:    func(c *Config) { c.Logger.Level = "verbose" },
			expectErr: "logger config validation failed",
		},
		{
			name:      "invalid max pages",
			mutate:    func(c *Config) { c.GitHub.MaxPages = 0 },
			expectErr: "github config validation failed",
		},
		{
			name:      "invalid enterprise url",
			mutate:    func(c *Config) { c.GitHub.GraphQLURL = "not a url" },
			expectErr: "GITHUB_GRAPHQL_URL",
		},
		{
			name:      "wakatime domain with a path",
			mutate:    func(c *Config) { c.Cards.WakatimeDomain = "evil.example/x" },
			expectErr: "cards config validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectErr)
		})
	}
}

func TestServerConfig_GetAddress(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: ":8080"}.GetAddress())
	assert.Equal(t, ":8080", ServerConfig{Port: "8080"}.GetAddress())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: ":9000"}.GetAddress())
}

func TestLoggerConfig_IsProduction(t *testing.T) {
	assert.True(t, LoggerConfig{Level: "info", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "debug", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "info", Format: "console"}.IsProduction())
}
