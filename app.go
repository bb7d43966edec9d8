package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"quillmic/internal/bootstrap"
	"quillmic/internal/config"
	"quillmic/internal/domain"
	"quillmic/internal/usecase"
)

const (
	eventSession    = "quillmic:session"
	eventTranscript = "quillmic:transcript"
	eventError      = "quillmic:error"
)

// App is the Wails application root. It implements the event sink port by
// forwarding session state to the frontend, which renders the status
// indicator.
type App struct {
	ctx context.Context
	log *slog.Logger

	controller *usecase.SessionController
	cfg        config.Config
	bootErr    error
}

func NewApp(log *slog.Logger) *App {
	return &App{log: log}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a, &wailsClipboard{}, a.log)
	if err != nil {
		a.bootErr = err
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.cfg = services.Config
	a.controller = services.Controller
	a.SessionStateChanged(domain.SessionStateIdle, domain.SessionReasonAppReady)
}

// Toggle flips the recording state. Called from the frontend indicator.
func (a *App) Toggle() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.controller.Toggle(a.ctx)
	return nil
}

// GetStatus returns the current session status.
func (a *App) GetStatus() domain.Status {
	if a.controller == nil {
		if a.bootErr != nil {
			return domain.Status{State: domain.SessionStateIdle, Active: false, Message: a.bootErr.Error()}
		}
		return domain.Status{State: domain.SessionStateIdle, Active: false}
	}
	return a.controller.Status()
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	return map[string]string{
		"model":      a.cfg.Model.Path,
		"language":   a.cfg.Model.Language,
		"sampleRate": strconv.Itoa(a.cfg.Audio.SampleRate),
		"channels":   strconv.Itoa(a.cfg.Audio.Channels),
		"notify":     strconv.FormatBool(a.cfg.Notify),
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// SessionStateChanged emits session lifecycle updates to the frontend.
func (a *App) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventSession, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": sessionReasonMessage(reason),
	})
}

// TranscriptReady emits the finished transcript.
func (a *App) TranscriptReady(text string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventTranscript, map[string]string{"text": text})
}

// SessionError emits backend errors to the UI.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func sessionReasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonAppReady:
		return "Ready"
	case domain.SessionReasonStarting:
		return "Starting recording..."
	case domain.SessionReasonRecordingStarted:
		return "Recording"
	case domain.SessionReasonTranscribing:
		return "Recording stopped. Transcribing..."
	case domain.SessionReasonTranscriptCopied:
		return "Transcript copied to clipboard"
	case domain.SessionReasonClipboardFailed:
		return "Transcript ready (clipboard write failed)"
	case domain.SessionReasonNoTranscript:
		return "No transcript captured"
	case domain.SessionReasonSampleTooShort:
		return "Sample too short"
	case domain.SessionReasonDeviceUnavailable:
		return "No audio input device"
	case domain.SessionReasonModelLoadFailed:
		return "Model failed to load"
	case domain.SessionReasonStartFailed:
		return "Could not start recording"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeDevice:
		return "Audio input unavailable"
	case domain.ErrorCodeModel:
		return "Model load failed"
	case domain.ErrorCodeAudio:
		return "Audio capture issue"
	case domain.ErrorCodeTranscription:
		return "Transcription error"
	case domain.ErrorCodeClipboard:
		return "Clipboard write failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}

type wailsClipboard struct{}

func (c *wailsClipboard) SetText(ctx context.Context, text string) error {
	return runtime.ClipboardSetText(ctx, text)
}
