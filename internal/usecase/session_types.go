package usecase

import (
	"quillmic/internal/ports"
)

// recordingSession is one capture-to-transcript attempt. It is created by
// Worker.Begin, owned by the worker for its lifetime, and consumed exactly
// once by Worker.End. The controller holds it only as an opaque handle.
type recordingSession struct {
	stream ports.Stream
	sink   ports.ScratchSink

	// stop signals the capture loop to exit after its current read.
	stop chan struct{}
	// done is closed once the capture loop has exited, the stream is closed
	// and the sink is finalized.
	done chan struct{}

	// finalizeErr is written by the capture goroutine before done closes.
	finalizeErr error
}

func newRecordingSession(stream ports.Stream, sink ports.ScratchSink) *recordingSession {
	return &recordingSession{
		stream: stream,
		sink:   sink,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}
