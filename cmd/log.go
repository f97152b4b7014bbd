package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
	"gatedesk/internal/utils"
)

var (
	logMinutes int
	logDate    string
	logMode    string
	logLabel   string
	logNotes   string
)

// logCmd backfills a study session without running a timer.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a study session manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		loc := cfg.Location()

		date := ""
		if logDate != "" {
			d, err := utils.ParseDay(logDate, loc)
			if err != nil {
				return err
			}
			date = d.Format("2006-01-02")
		}

		dbh, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer dbh.Close()

		s, err := db.RecordSession(dbh, loc, time.Now(), db.NewSession{
			Duration: logMinutes * 60,
			Mode:     logMode,
			Label:    logLabel,
			Notes:    logNotes,
			Date:     date,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged %d minutes of %s (id %d)\n", logMinutes, s.Mode, s.ID)
		return nil
	},
}

func init() {
	logCmd.Flags().IntVarP(&logMinutes, "minutes", "m", 25, "Session length in minutes")
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "Backfill day: today|yesterday|'3 days ago'|YYYY-MM-DD")
	logCmd.Flags().StringVar(&logMode, "mode", "manual", "Session mode: focus|short|long|manual")
	logCmd.Flags().StringVarP(&logLabel, "label", "l", "", "What was studied")
	logCmd.Flags().StringVarP(&logNotes, "notes", "n", "", "Free-form notes")
}
