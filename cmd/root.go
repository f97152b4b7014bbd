package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gatedesk/internal/config"
	"gatedesk/internal/notify"
	"gatedesk/internal/schedule"
	"gatedesk/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gatedesk",
	Short: "Study timer & exam prep tracking",
}

func Execute() error {
	// set late so build metadata injected into main is visible
	rootCmd.Version = version.GetVersionInfo()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			// reminder is skipped but the command still runs; it will
			// surface the same error from its own load
			fmt.Fprintln(os.Stderr, "Warning: config load failed:", err)
			return nil
		}
		if cfg.Reminder.Enabled && os.Getenv("GATEDESK_NO_REMINDER") != "1" {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			go func() {
				schedule.RunConfigured(ctx, cfg, func() {
					title, msg := notify.FormatReminder()
					_ = notify.Info(title, msg)
				})
			}()
			// on process exit the signal cancels; no need to keep cancel around
			_ = cancel
		}
		return nil
	}

	rootCmd.AddCommand(serveCmd, tuiCmd, logCmd, historyCmd, deleteCmd, summaryCmd, chartCmd)
}
