package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
)

// summaryCmd prints the rolling study totals plus a per-mode breakdown.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Study time summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbh, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer dbh.Close()

		s, err := db.Summarize(dbh, cfg.Location(), time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Today:       %4dm\n", s.Daily/60)
		fmt.Printf("Last 7 days: %4dm\n", s.Weekly/60)
		fmt.Printf("This month:  %4dm\n", s.Monthly/60)
		fmt.Printf("All time:    %4dm\n", s.Total/60)

		stats, err := db.ModeStats(dbh)
		if err != nil {
			return err
		}
		if len(stats) > 0 {
			fmt.Println()
			for _, m := range stats {
				fmt.Printf("  %-10s %3d sessions, %4d mins\n", m.Mode, m.TotalSessions, m.TotalSeconds/60)
			}
		}
		return nil
	},
}
