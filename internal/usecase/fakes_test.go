package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"quillmic/internal/domain"
	"quillmic/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDevice struct {
	mu      sync.Mutex
	streams []ports.Stream
	err     error
	opens   int

	// gate, when non-nil, blocks Open until closed.
	gate chan struct{}
}

func (f *fakeDevice) Open(_ ports.DeviceConfig) (ports.Stream, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if f.err != nil {
		return nil, f.err
	}
	if f.opens > len(f.streams) {
		return nil, errors.New("no stream configured")
	}
	return f.streams[f.opens-1], nil
}

func (f *fakeDevice) openCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

type fakeStream struct {
	mu        sync.Mutex
	chunk     []int16
	reads     int
	failAfter int
	closes    int
}

func (f *fakeStream) ReadChunk() ([]int16, error) {
	time.Sleep(time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failAfter > 0 && f.reads > f.failAfter {
		return nil, errors.New("device gone")
	}
	out := make([]int16, len(f.chunk))
	copy(out, f.chunk)
	return out, nil
}

func (f *fakeStream) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeStream) closeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

type fakeSinkFactory struct {
	mu      sync.Mutex
	sinks   []*fakeSink
	err     error
	creates int
}

func (f *fakeSinkFactory) Create() (ports.ScratchSink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.creates >= len(f.sinks) {
		return nil, errors.New("no sink configured")
	}
	sink := f.sinks[f.creates]
	f.creates++
	return sink, nil
}

func (f *fakeSinkFactory) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

type fakeSink struct {
	mu          sync.Mutex
	bytes       int64
	finalized   bool
	released    bool
	appendErr   error
	finalizeErr error
}

func (f *fakeSink) Append(samples []int16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.bytes += int64(len(samples) * 2)
	return nil
}

func (f *fakeSink) Finalize() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalized = true
	return f.finalizeErr
}

func (f *fakeSink) Size() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bytes
}

func (f *fakeSink) Path() string { return "fake.wav" }

func (f *fakeSink) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
}

func (f *fakeSink) isFinalized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finalized
}

func (f *fakeSink) isReleased() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

type fakeTranscriber struct {
	mu             sync.Mutex
	text           string
	loadErr        error
	transcribeErr  error
	loadCalls      int
	expensiveLoads int
	loaded         bool
	transcribes    int

	// onTranscribe runs inside Transcribe for ordering assertions.
	onTranscribe func(path string)
}

func (f *fakeTranscriber) Load(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.loadErr != nil {
		return f.loadErr
	}
	if !f.loaded {
		f.expensiveLoads++
		f.loaded = true
	}
	return nil
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string) (string, error) {
	f.mu.Lock()
	hook := f.onTranscribe
	f.transcribes++
	f.mu.Unlock()
	if hook != nil {
		hook(path)
	}
	if f.transcribeErr != nil {
		return "", f.transcribeErr
	}
	return f.text, nil
}

func (f *fakeTranscriber) transcribeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transcribes
}

type fakeClipboard struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeClipboard) SetText(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeClipboard) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.texts))
	copy(out, f.texts)
	return out
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeNotifier) TranscriptReady(_ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

func (f *fakeNotifier) notifyCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type stateEvent struct {
	state  domain.SessionState
	reason domain.SessionStateReason
}

type errEvent struct {
	code   domain.ErrorCode
	detail string
}

type fakeEventSink struct {
	mu          sync.Mutex
	states      []stateEvent
	transcripts []string
	errs        []errEvent

	stateCh chan stateEvent
}

func newFakeEventSink() *fakeEventSink {
	return &fakeEventSink{stateCh: make(chan stateEvent, 64)}
}

func (f *fakeEventSink) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	f.mu.Lock()
	f.states = append(f.states, stateEvent{state: state, reason: reason})
	f.mu.Unlock()
	select {
	case f.stateCh <- stateEvent{state: state, reason: reason}:
	default:
	}
}

func (f *fakeEventSink) TranscriptReady(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcripts = append(f.transcripts, text)
}

func (f *fakeEventSink) SessionError(code domain.ErrorCode, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, errEvent{code: code, detail: detail})
}

// waitFor blocks until a state change with the given reason is observed.
func (f *fakeEventSink) waitFor(t *testing.T, reason domain.SessionStateReason) stateEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-f.stateCh:
			if event.reason == reason {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state reason %q; got %+v", reason, f.snapshotStates())
		}
	}
}

func (f *fakeEventSink) snapshotStates() []stateEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]stateEvent, len(f.states))
	copy(out, f.states)
	return out
}

func (f *fakeEventSink) snapshotTranscripts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.transcripts))
	copy(out, f.transcripts)
	return out
}

func (f *fakeEventSink) snapshotErrors() []errEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]errEvent, len(f.errs))
	copy(out, f.errs)
	return out
}
