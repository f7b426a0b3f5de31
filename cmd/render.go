package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-stats/internal/usecase"
)

var renderCmd = &cobra.Command{
	Use:       "render (stats|pin|top-langs|wakatime)",
	Short:     "Render a single card to stdout or a file",
	Long:      `Renders one card using the same query parameters as the HTTP endpoints, e.g. render top-langs --query "username=octocat&layout=compact".`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"stats", "pin", "top-langs", "wakatime"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rawQuery, _ := cmd.Flags().GetString("query")
		output, _ := cmd.Flags().GetString("output")
		q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
		if err != nil {
			return fmt.Errorf("invalid --query: %w", err)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		var render func(context.Context, url.Values) usecase.Result
		switch args[0] {
		case "stats":
			render = a.cards.StatsCard
		case "pin":
			render = a.cards.RepoCard
		case "top-langs":
			render = a.cards.TopLanguagesCard
		case "wakatime":
			render = a.cards.WakatimeCard
		}

		result := render(cmd.Context(), q)
		if output == "" || output == "-" {
			fmt.Fprintln(cmd.OutOrStdout(), result.SVG)
		} else if err := os.WriteFile(output, []byte(result.SVG), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		if result.Err != nil {
			return fmt.Errorf("rendered an error card: %w", result.Err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("query", "q", "", "Card query parameters in URL form (required)")
	renderCmd.Flags().StringP("output", "o", "", "Write the SVG to this file instead of stdout")
	renderCmd.MarkFlagRequired("query")
}
