package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"quillmic/internal/domain"
	"quillmic/internal/ports"
)

// SessionController is the single source of truth for the session state and
// the only component allowed to start or stop a recording session. Toggle
// never blocks: all capture and inference work runs on a background
// goroutine per session, and the busy state serializes toggle events so at
// most one session exists at a time.
type SessionController struct {
	worker    *Worker
	deliverer transcriptDeliverer
	events    ports.EventSink
	log       *slog.Logger

	mu      sync.Mutex
	state   domain.SessionState
	current *recordingSession
}

func NewSessionController(
	worker *Worker,
	clipboard ports.Clipboard,
	notifier ports.Notifier,
	events ports.EventSink,
	log *slog.Logger,
) *SessionController {
	return &SessionController{
		worker:    worker,
		deliverer: newTranscriptDeliverer(clipboard, notifier, events),
		events:    events,
		log:       log,
		state:     domain.SessionStateIdle,
	}
}

// Toggle drives the state machine:
//
//	idle --toggle--> busy --(start succeeds)--> recording
//	recording --toggle--> busy --(stop+transcribe completes)--> idle
//	busy --toggle--> busy (dropped)
//
// Toggles arriving while busy are dropped, not queued.
func (c *SessionController) Toggle(ctx context.Context) {
	c.mu.Lock()
	switch c.state {
	case domain.SessionStateBusy:
		c.mu.Unlock()
		c.log.Debug("toggle ignored while busy")

	case domain.SessionStateIdle:
		c.state = domain.SessionStateBusy
		c.mu.Unlock()
		c.events.SessionStateChanged(domain.SessionStateBusy, domain.SessionReasonStarting)
		go c.begin(ctx)

	case domain.SessionStateRecording:
		session := c.current
		c.current = nil
		c.state = domain.SessionStateBusy
		c.mu.Unlock()
		c.events.SessionStateChanged(domain.SessionStateBusy, domain.SessionReasonTranscribing)
		go c.end(ctx, session)
	}
}

// Status returns the current session status.
func (c *SessionController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Status{State: c.state, Active: c.state != domain.SessionStateIdle}
}

func (c *SessionController) begin(ctx context.Context) {
	session, err := c.worker.Begin(ctx)
	if err != nil {
		code, reason := beginFailure(err)
		c.log.Error("failed to start recording", "error", err)
		c.events.SessionError(code, err.Error())
		c.settle(nil, domain.SessionStateIdle, reason)
		return
	}
	c.settle(session, domain.SessionStateRecording, domain.SessionReasonRecordingStarted)
}

func (c *SessionController) end(ctx context.Context, session *recordingSession) {
	text, reason := c.worker.End(ctx, session)
	if text != "" {
		reason = c.deliverer.Deliver(ctx, text)
	}
	c.settle(nil, domain.SessionStateIdle, reason)
}

// settle records the resolved state of an in-flight transition and emits it.
func (c *SessionController) settle(session *recordingSession, state domain.SessionState, reason domain.SessionStateReason) {
	c.mu.Lock()
	c.state = state
	c.current = session
	c.mu.Unlock()
	c.events.SessionStateChanged(state, reason)
}

func beginFailure(err error) (domain.ErrorCode, domain.SessionStateReason) {
	switch {
	case errors.Is(err, ports.ErrDeviceUnavailable):
		return domain.ErrorCodeDevice, domain.SessionReasonDeviceUnavailable
	case errors.Is(err, ports.ErrModelLoad):
		return domain.ErrorCodeModel, domain.SessionReasonModelLoadFailed
	default:
		return domain.ErrorCodeStartup, domain.SessionReasonStartFailed
	}
}
