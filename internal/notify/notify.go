// Package notify surfaces delivered transcripts as desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Desktop sends a notification when a transcript lands on the clipboard.
type Desktop struct {
	log *slog.Logger
}

func NewDesktop(log *slog.Logger) *Desktop {
	return &Desktop{log: log}
}

func (d *Desktop) TranscriptReady(text string) {
	if err := beeep.Notify("Quillmic", preview(text), ""); err != nil {
		d.log.Debug("notification failed", "error", err)
	}
}

func preview(text string) string {
	const max = 80
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

// Noop is used when notifications are disabled.
type Noop struct{}

func (Noop) TranscriptReady(string) {}
