package domain

// CaptureState models the per-prompt recording lifecycle.
type CaptureState string

const (
	CaptureStateIdle      CaptureState = "idle"
	CaptureStateRecording CaptureState = "recording"
	CaptureStateReview    CaptureState = "review"
)

// StateReason provides a structured reason for state transitions.
type StateReason string

const (
	ReasonSessionStarted   StateReason = "session_started"
	ReasonRecordingStarted StateReason = "recording_started"
	ReasonRecordingStopped StateReason = "recording_stopped"
	ReasonRetake           StateReason = "retake"
	ReasonCommitted        StateReason = "committed"
	ReasonSessionComplete  StateReason = "session_complete"
	ReasonShutdown         StateReason = "shutdown"
)

// ErrorCode identifies non-fatal backend errors. None of these are fatal:
// every failure resolves back into one of the lifecycle states.
type ErrorCode string

const (
	ErrorCodeStartup      ErrorCode = "startup"
	ErrorCodeDeviceDenied ErrorCode = "device_denied"
	ErrorCodeAudioStream  ErrorCode = "audio_stream"
	ErrorCodeAudioStop    ErrorCode = "audio_stop"
	ErrorCodeSubmission   ErrorCode = "submission"
)

// SlotStatus tags a completed slot. Absence of an entry means the slot has
// not been committed yet.
type SlotStatus string

const SlotStatusUsed SlotStatus = "used"

// Artifact is one finished recording ready for review and submission.
type Artifact struct {
	Identifier string `json:"identifier"`
	Prompt     string `json:"prompt"`
	Slot       int    `json:"slot"`
	PCM        []byte `json:"-"`
	Seconds    int    `json:"seconds"`
}

// SubmitResult is returned once a reviewed recording has been committed.
type SubmitResult struct {
	Identifier    string `json:"identifier"`
	AudioKey      string `json:"audioKey"`
	TranscriptKey string `json:"transcriptKey"`
	Slot          int    `json:"slot"`
	Used          int    `json:"used"`
	Complete      bool   `json:"complete"`
}

// SessionSnapshot is a read-only view of session progress.
type SessionSnapshot struct {
	Slot     int    `json:"slot"`
	Total    int    `json:"total"`
	Used     int    `json:"used"`
	Limit    int    `json:"limit"`
	Complete bool   `json:"complete"`
	Prompt   string `json:"prompt"`
}

// Status summarizes the current runtime status.
type Status struct {
	State   CaptureState    `json:"state"`
	Elapsed int             `json:"elapsed"`
	Session SessionSnapshot `json:"session"`
	Message string          `json:"message,omitempty"`
}
