// Package notify sends desktop notifications when an export finishes.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/logger"
)

// sender is swapped out in tests.
var sender = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// ExportFinished announces a completed export. Delivery failures are logged
// and otherwise ignored.
func ExportFinished(records int, path string, failedMetrics int) {
	title := "Windsurf export complete"
	body := fmt.Sprintf("%d users exported to %s", records, path)
	if records == 0 {
		body = "No users found; nothing was written"
	}
	if failedMetrics > 0 {
		body += fmt.Sprintf(" (%d with missing metrics)", failedMetrics)
	}
	send(title, body)
}

// ExportFailed announces an aborted export.
func ExportFailed(err error) {
	send("Windsurf export failed", err.Error())
}

func send(title, body string) {
	if err := sender(title, body); err != nil {
		logger.Warn("failed to send desktop notification", "error", err)
	}
}
