package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// send is swapped out in tests.
var send = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Info(title, message string) error {
	return send(title, message)
}

// FormatDailyPrompt builds the reminder text. written reports whether today
// already has an entry.
func FormatDailyPrompt(date string, written bool) (string, string) {
	title := "Diary reminder"
	if written {
		return title, fmt.Sprintf("Your entry for %s is saved. Anything to add?", date)
	}
	return title, fmt.Sprintf("No entry for %s yet. How was your day?", date)
}

// UpdateAvailable notifies about a newer release.
func UpdateAvailable(current, latest string) error {
	return Info("Diary update available", fmt.Sprintf("%s is out (you have %s)", latest, current))
}
