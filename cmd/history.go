package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
)

var historyLimit int

// historyCmd lists recent sessions, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		loc := cfg.Location()

		dbh, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer dbh.Close()

		sessions, err := db.RecentSessions(dbh, historyLimit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}
		for _, s := range sessions {
			label := s.SessionLabel
			if label == "" {
				label = "-"
			}
			fmt.Printf("%5d  %s  %-6s %4dm  %s\n",
				s.ID, s.StartTime.In(loc).Format("2006-01-02 15:04"), s.Mode, s.Duration/60, label)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of sessions to show")
}
