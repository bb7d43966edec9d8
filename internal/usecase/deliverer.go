package usecase

import (
	"context"

	"quillmic/internal/domain"
	"quillmic/internal/ports"
)

type transcriptDeliverer struct {
	clipboard ports.Clipboard
	notifier  ports.Notifier
	events    ports.EventSink
}

func newTranscriptDeliverer(clipboard ports.Clipboard, notifier ports.Notifier, events ports.EventSink) transcriptDeliverer {
	return transcriptDeliverer{clipboard: clipboard, notifier: notifier, events: events}
}

// Deliver forwards a transcript to the output sink and reports how the
// session ended. The UI receives the text even when the clipboard write
// fails.
func (d transcriptDeliverer) Deliver(ctx context.Context, text string) domain.SessionStateReason {
	d.events.TranscriptReady(text)

	if err := d.clipboard.SetText(ctx, text); err != nil {
		d.events.SessionError(domain.ErrorCodeClipboard, "transcript ready but clipboard write failed")
		return domain.SessionReasonClipboardFailed
	}

	d.notifier.TranscriptReady(text)
	return domain.SessionReasonTranscriptCopied
}
