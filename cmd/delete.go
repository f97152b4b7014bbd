package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
)

// deleteCmd removes a session by id.
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbh, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer dbh.Close()

		if err := db.DeleteSession(dbh, id); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}
