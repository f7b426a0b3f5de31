// Package config loads runtime settings from environment variables.
package config

import "fmt"

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	GitHub GitHubConfig
	Cards  CardsConfig
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server: LoadServerConfigFromEnv(),
		Logger: LoadLoggerConfigFromEnv(),
		GitHub: LoadGitHubConfigFromEnv(),
		Cards:  LoadCardsConfigFromEnv(),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}
	if err := c.GitHub.Validate(); err != nil {
		return fmt.Errorf("github config validation failed: %w", err)
	}
	if err := c.Cards.Validate(); err != nil {
		return fmt.Errorf("cards config validation failed: %w", err)
	}
	return nil
}
