package domain

// SessionState models the toggle-to-record lifecycle.
type SessionState string

const (
	SessionStateIdle      SessionState = "idle"
	SessionStateBusy      SessionState = "busy"
	SessionStateRecording SessionState = "recording"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonAppReady          SessionStateReason = "app_ready"
	SessionReasonStarting          SessionStateReason = "starting"
	SessionReasonRecordingStarted  SessionStateReason = "recording_started"
	SessionReasonTranscribing      SessionStateReason = "transcribing"
	SessionReasonTranscriptCopied  SessionStateReason = "transcript_copied"
	SessionReasonClipboardFailed   SessionStateReason = "transcript_clipboard_failed"
	SessionReasonNoTranscript      SessionStateReason = "no_transcript"
	SessionReasonSampleTooShort    SessionStateReason = "sample_too_short"
	SessionReasonDeviceUnavailable SessionStateReason = "device_unavailable"
	SessionReasonModelLoadFailed   SessionStateReason = "model_load_failed"
	SessionReasonStartFailed       SessionStateReason = "start_failed"
)

// ErrorCode identifies non-fatal and fatal backend errors.
type ErrorCode string

const (
	ErrorCodeStartup       ErrorCode = "startup"
	ErrorCodeDevice        ErrorCode = "device"
	ErrorCodeModel         ErrorCode = "model"
	ErrorCodeAudio         ErrorCode = "audio"
	ErrorCodeTranscription ErrorCode = "transcription"
	ErrorCodeClipboard     ErrorCode = "clipboard"
)

// Status summarizes the current runtime status.
type Status struct {
	State   SessionState `json:"state"`
	Active  bool         `json:"active"`
	Message string       `json:"message,omitempty"`
}
