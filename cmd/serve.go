package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
	"gatedesk/internal/server"
)

var serveAddr string

// serveCmd runs the HTTP API for the web dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		dbh, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer dbh.Close()

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return server.New(dbh, cfg, logger).Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides config)")
}
