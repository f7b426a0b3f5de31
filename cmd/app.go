package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/readme-stats/internal/card"
	"github.com/naka-gawa/readme-stats/internal/config"
	"github.com/naka-gawa/readme-stats/internal/gateway"
	"github.com/naka-gawa/readme-stats/internal/locale"
	"github.com/naka-gawa/readme-stats/internal/logger"
	"github.com/naka-gawa/readme-stats/internal/theme"
	"github.com/naka-gawa/readme-stats/internal/usecase"
)

// app is the wired dependency graph shared by every command.
type app struct {
	config     config.Config
	logger     *zap.SugaredLogger
	aggregator *usecase.Aggregator
	cards      *usecase.CardService
}

// newApp loads configuration from the environment and wires gateways,
// use cases and the renderer. --verbose forces debug logging.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.LoadFromEnv()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logger.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	themes, err := theme.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load themes: %w", err)
	}
	locales, err := locale.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHub, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	if cfg.GitHub.Token == "" {
		log.Warnw("GITHUB_TOKEN is not set; GitHub requests are anonymous and heavily rate limited")
	}
	wakatimeGateway := gateway.NewWakatimeGateway(cfg.Cards.WakatimeDomain, log)

	aggregator := usecase.NewAggregator(githubGateway, wakatimeGateway, log)
	renderer := card.NewRenderer(themes, locales)
	cards := usecase.NewCardService(aggregator, renderer, locales, cfg.Cards.Denylist, cfg.Cards.CacheSeconds, log)

	log.Debugw("application wired", "themes", themes.Len(), "locales", len(locales.Codes()))
	return &app{config: cfg, logger: log, aggregator: aggregator, cards: cards}, nil
}
