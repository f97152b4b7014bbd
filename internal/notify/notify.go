package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Done(message string) error {
	return beeep.Alert("gatedesk", message, "")
}

// FormatCompletion builds the desktop notification shown when a
// countdown runs out.
func FormatCompletion(mode string, minutes int) (string, string) {
	switch mode {
	case "short", "long":
		return "Break over", fmt.Sprintf("%d minute break finished. Back to it?", minutes)
	default:
		return "Focus session complete", fmt.Sprintf("%d minutes logged. Time for a break.", minutes)
	}
}

// FormatReminder builds the daily study nudge.
func FormatReminder() (string, string) {
	return "Study reminder", "No sessions logged yet today. Start a timer?"
}
