package cmd

import (
	"github.com/spf13/cobra"

	"gatedesk/internal/ui"
)

// tuiCmd launches the Bubble Tea timer.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the timer TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Run()
	},
}
