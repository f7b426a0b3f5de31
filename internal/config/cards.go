package config

import (
	"fmt"
	"strings"
)

// DefaultDenylist holds logins that are never rendered.
var DefaultDenylist = []string{"renovate-bot", "technote-space", "sw-yx"}

// CardsConfig holds operator settings shared by every card endpoint.
type CardsConfig struct {
	// CacheSeconds, when positive, overrides every computed success cache window.
	CacheSeconds string
	// Denylist is merged with DefaultDenylist.
	Denylist       []string
	WakatimeDomain string
}

// LoadCardsConfigFromEnv loads card configuration from environment variables.
func LoadCardsConfigFromEnv() CardsConfig {
	return CardsConfig{
		CacheSeconds:   GetEnv("CACHE_SECONDS", ""),
		Denylist:       mergeDenylist(GetEnvList("DENYLIST")),
		WakatimeDomain: GetEnv("WAKATIME_DOMAIN", "wakatime.com"),
	}
}

func mergeDenylist(extra []string) []string {
	seen := make(map[string]bool, len(DefaultDenylist)+len(extra))
	out := make([]string, 0, len(DefaultDenylist)+len(extra))
	for _, name := range append(append([]string{}, DefaultDenylist...), extra...) {
		if key := strings.ToLower(name); !seen[key] {
			seen[key] = true
			out = append(out, name)
		}
	}
	return out
}

// Validate validates card configuration.
func (c CardsConfig) Validate() error {
	if c.WakatimeDomain == "" || strings.ContainsAny(c.WakatimeDomain, "/?#@ ") {
		return fmt.Errorf("invalid WAKATIME_DOMAIN: %q", c.WakatimeDomain)
	}
	return nil
}
