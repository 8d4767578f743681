package ports

import (
	"context"
	"io"

	"promptbooth/internal/domain"
)

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate  int
	Channels    int
	InputFormat string
	InputDevice string
}

// AudioSession is a live capture handle. It is exclusively owned by the
// recording controller between acquisition and release.
type AudioSession interface {
	io.ReadCloser
	Stop() error
}

// AudioCapture acquires microphone capture sessions.
type AudioCapture interface {
	Start(ctx context.Context, cfg AudioConfig) (AudioSession, error)
}

// Committer durably persists one audio/transcript pair under the dataset
// repository root. Implementations decide the transport.
type Committer interface {
	Commit(ctx context.Context, audioKey string, wav []byte, transcriptKey string, transcript string) error
}

// CorpusSource provides the prompt pool for session building.
type CorpusSource interface {
	Load(ctx context.Context) []string
}

// EventSink emits backend state/events to the front end.
type EventSink interface {
	StateChanged(state domain.CaptureState, reason domain.StateReason)
	PromptPresented(slot int, text string)
	ElapsedSeconds(seconds int)
	SessionError(code domain.ErrorCode, detail string)
}
