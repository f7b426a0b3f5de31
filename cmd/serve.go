package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/readme-stats/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the card endpoints over HTTP",
	Long: `Serves /api, /api/pin, /api/top-langs and /api/wakatime until SIGINT or SIGTERM.
The listen address and timeouts come from SERVER_HOST, SERVER_PORT and SERVER_*_TIMEOUT.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			a.config.Server.Host = ""
			a.config.Server.Port = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(a.config.Server, a.cards, a.logger).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address, overriding SERVER_HOST and SERVER_PORT (e.g. :9000)")
}
