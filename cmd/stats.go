package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-stats/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Fetches a user's GitHub stats and outputs them as JSON",
	Long:  `Fetches the counters and rank shown on the stats card for a GitHub user, and outputs the result in JSON format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		includeAll, _ := cmd.Flags().GetBool("include-all-commits")
		exclude, _ := cmd.Flags().GetStringSlice("exclude-repo")
		show, _ := cmd.Flags().GetStringSlice("show")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		shows := func(key string) bool {
			for _, s := range show {
				if strings.TrimSpace(s) == key {
					return true
				}
			}
			return false
		}
		stats, err := a.aggregator.FetchStats(cmd.Context(), usecase.StatsRequest{
			Login:             user,
			IncludeAllCommits: includeAll,
			ExcludeRepos:      exclude,
			MergedPRs:         shows("prs_merged") || shows("prs_merged_percentage"),
			DiscussionsStart:  shows("discussions_started"),
			DiscussionsAnswer: shows("discussions_answered"),
		})
		if err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	statsCmd.MarkFlagRequired("user")
	statsCmd.Flags().Bool("include-all-commits", false, "Count all-time commits instead of this year's")
	statsCmd.Flags().StringSlice("exclude-repo", nil, "Repositories whose stars are not counted")
	statsCmd.Flags().StringSlice("show", nil, "Opt-in counters: prs_merged, prs_merged_percentage, discussions_started, discussions_answered")
}
