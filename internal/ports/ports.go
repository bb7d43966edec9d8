package ports

import (
	"context"
	"errors"

	"quillmic/internal/domain"
)

// ErrDeviceUnavailable reports that no usable audio input device exists.
var ErrDeviceUnavailable = errors.New("audio input device unavailable")

// ErrModelLoad reports that the transcription model could not be initialized.
var ErrModelLoad = errors.New("transcription model failed to load")

// DeviceConfig describes how the microphone should be captured.
type DeviceConfig struct {
	SampleRate  int
	Channels    int
	ChunkFrames int
}

// Stream is a live microphone capture stream.
type Stream interface {
	// ReadChunk blocks until one chunk of 16-bit samples is available.
	ReadChunk() ([]int16, error)
	Close() error
}

// Device opens microphone capture streams.
type Device interface {
	Open(cfg DeviceConfig) (Stream, error)
}

// ScratchSink is transient storage for one recording session's samples.
// Append and Finalize are called by the capture task only; Size, Path and
// Release are safe once Finalize has returned.
type ScratchSink interface {
	Append(samples []int16) error
	// Finalize flushes and closes the sink; Path is readable afterwards.
	Finalize() error
	// Size reports the number of PCM bytes appended so far.
	Size() int64
	Path() string
	// Release removes the sink's backing storage. Idempotent.
	Release()
}

// SinkFactory creates scratch sinks.
type SinkFactory interface {
	Create() (ScratchSink, error)
}

// Transcriber converts finished scratch audio into text.
type Transcriber interface {
	// Load makes the model available, loading it on first use. Safe to call
	// repeatedly; a failed load may be retried.
	Load(ctx context.Context) error
	Transcribe(ctx context.Context, wavPath string) (string, error)
}

// Clipboard writes text into the system clipboard.
type Clipboard interface {
	SetText(ctx context.Context, text string) error
}

// Notifier announces a delivered transcript to the desktop.
type Notifier interface {
	TranscriptReady(text string)
}

// EventSink emits backend state/events to the UI. The status indicator is
// driven exclusively through SessionStateChanged.
type EventSink interface {
	SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason)
	TranscriptReady(text string)
	SessionError(code domain.ErrorCode, detail string)
}
