package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
)

var chartView string

// chartCmd prints the dashboard chart as text bars. Break time shows
// as negative minutes.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Study time chart",
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

		buckets, err := db.Chart(dbh, cfg.Location(), chartView, time.Now())
		if err != nil {
			return err
		}

		max := 1
		for _, b := range buckets {
			if b.Minutes > max {
				max = b.Minutes
			}
			if -b.Minutes > max {
				max = -b.Minutes
			}
		}
		for _, b := range buckets {
			width := b.Minutes * 40 / max
			if width < 0 {
				width = -width
			}
			fmt.Printf("%-8s %5dm %s\n", b.Name, b.Minutes, strings.Repeat("█", width))
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVarP(&chartView, "view", "v", "daily", "View: daily|weekly|monthly")
}
