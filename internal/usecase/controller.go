package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"promptbooth/internal/domain"
	"promptbooth/internal/ident"
	"promptbooth/internal/ports"
	"promptbooth/internal/session"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrSessionComplete = errors.New("session is complete")
	ErrNotIdle         = errors.New("a recording attempt is already in progress")
	ErrNotRecording    = errors.New("no recording in progress")
	ErrNothingToReview   = errors.New("no finished recording to review")
	ErrSubmitInFlight    = errors.New("a submission is already in flight")
	ErrAttemptSuperseded = errors.New("submitted attempt is no longer current")
)

// Config controls recording and session behavior.
type Config struct {
	Audio        ports.AudioConfig
	ChunkSize    int
	DrawSize     int
	CommitLimit  int
	TickInterval time.Duration
}

// RecordingController owns the capture device handle and the lifecycle of
// a single recording attempt: idle → recording → review → idle. It is the
// only component that mutates the session state, so transitions triggered
// by user actions are serialized here.
type RecordingController struct {
	capture   ports.AudioCapture
	committer ports.Committer
	corpus    ports.CorpusSource
	events    ports.EventSink
	ids       *ident.Generator
	log       *logrus.Logger
	cfg       Config

	mu         sync.Mutex
	state      domain.CaptureState
	sess       *session.Session
	current    *activeAttempt
	tracker    *elapsedTracker
	submitting bool
}

func NewRecordingController(
	capture ports.AudioCapture,
	committer ports.Committer,
	corpus ports.CorpusSource,
	events ports.EventSink,
	ids *ident.Generator,
	log *logrus.Logger,
	cfg Config,
) *RecordingController {
	if cfg.ChunkSize < 256 {
		cfg.ChunkSize = 4096
	}
	if cfg.DrawSize <= 0 {
		cfg.DrawSize = 20
	}
	if cfg.CommitLimit <= 0 {
		cfg.CommitLimit = 5
	}
	if ids == nil {
		ids = ident.NewGenerator()
	}
	if log == nil {
		log = logrus.New()
	}
	return &RecordingController{
		capture:   capture,
		committer: committer,
		corpus:    corpus,
		events:    events,
		ids:       ids,
		log:       log,
		cfg:       cfg,
		state:     domain.CaptureStateIdle,
		tracker:   newElapsedTracker(cfg.TickInterval, events),
	}
}

// StartSession draws a fresh shuffled prompt subset from the corpus.
// Called once at startup and again for every "new session" action; any
// live attempt from the previous session is discarded.
func (c *RecordingController) StartSession(ctx context.Context) domain.SessionSnapshot {
	prompts := c.corpus.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.discardLocked()
	c.tracker.Reset()
	c.sess = session.New(prompts, c.cfg.DrawSize, c.cfg.CommitLimit)
	c.state = domain.CaptureStateIdle

	c.log.WithFields(logrus.Fields{
		"prompts": c.sess.Len(),
		"limit":   c.cfg.CommitLimit,
	}).Info("session started")

	c.events.StateChanged(domain.CaptureStateIdle, domain.ReasonSessionStarted)
	if slot, prompt, ok := c.sess.Current(); ok {
		c.events.PromptPresented(slot, prompt)
	}
	return c.sess.Snapshot()
}

// StartRecording acquires the capture device and begins a new attempt.
// Starting while already recording is a guarded no-op. A denied device
// surfaces an error and leaves the controller idle; no identifier is
// consumed in that case.
func (c *RecordingController) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.sess == nil:
		return ErrNoSession
	case c.sess.Complete():
		return ErrSessionComplete
	case c.state == domain.CaptureStateRecording:
		return nil
	case c.state == domain.CaptureStateReview:
		return ErrNotIdle
	}

	slot, prompt, ok := c.sess.Current()
	if !ok {
		return ErrSessionComplete
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	device, err := c.capture.Start(attemptCtx, c.cfg.Audio)
	if err != nil {
		cancel()
		c.events.SessionError(domain.ErrorCodeDeviceDenied, err.Error())
		return err
	}

	attempt := newAttempt(c.ids.Next(), slot, prompt, cancel, device)
	c.current = attempt

	go pumpAudioSegments(device, attempt.segments, c.cfg.ChunkSize, c.events, attempt.pumpDone)

	c.tracker.Start()
	c.state = domain.CaptureStateRecording

	c.log.WithFields(logrus.Fields{
		"identifier": attempt.identifier,
		"attempt_id": attempt.handle,
		"slot":       slot,
	}).Info("recording started")

	c.events.StateChanged(domain.CaptureStateRecording, domain.ReasonRecordingStarted)
	return nil
}

// StopRecording releases the capture device and finalizes the buffered
// segments into one reviewable artifact.
func (c *RecordingController) StopRecording(ctx context.Context) (domain.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.CaptureStateRecording || c.current == nil {
		return domain.Artifact{}, ErrNotRecording
	}

	if err := c.current.audio.Stop(); err != nil {
		c.events.SessionError(domain.ErrorCodeAudioStop, "failed to release capture device cleanly")
	}
	<-c.current.pumpDone

	c.tracker.Freeze()
	c.state = domain.CaptureStateReview

	artifact := domain.Artifact{
		Identifier: c.current.identifier,
		Prompt:     c.current.prompt,
		Slot:       c.current.slot,
		PCM:        c.current.segments.Bytes(),
		Seconds:    c.tracker.Seconds(),
	}

	c.log.WithFields(logrus.Fields{
		"identifier": artifact.Identifier,
		"attempt_id": c.current.handle,
		"bytes":      len(artifact.PCM),
		"seconds":    artifact.Seconds,
	}).Info("recording stopped")

	c.events.StateChanged(domain.CaptureStateReview, domain.ReasonRecordingStopped)
	return artifact, nil
}

// Retake discards the reviewed artifact and its identifier. The slot
// status map and cursor are untouched. Rejected while a submission of
// the same artifact is in flight.
func (c *RecordingController) Retake() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmitInFlight
	}
	if c.state != domain.CaptureStateReview || c.current == nil {
		return ErrNothingToReview
	}

	c.log.WithField("identifier", c.current.identifier).Info("retake, attempt discarded")

	c.discardLocked()
	c.tracker.Reset()
	c.state = domain.CaptureStateIdle
	c.events.StateChanged(domain.CaptureStateIdle, domain.ReasonRetake)
	return nil
}

// Status returns the current controller status.
func (c *RecordingController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := domain.Status{
		State:   c.state,
		Elapsed: c.tracker.Seconds(),
	}
	if c.sess != nil {
		status.Session = c.sess.Snapshot()
	}
	return status
}

// Close releases every held resource. Must be called at teardown so no
// device handle or periodic task outlives the controller.
func (c *RecordingController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.discardLocked()
	c.tracker.Reset()
	c.state = domain.CaptureStateIdle
	c.events.StateChanged(domain.CaptureStateIdle, domain.ReasonShutdown)
}

// discardLocked releases the live attempt, if any. Callers hold c.mu.
func (c *RecordingController) discardLocked() {
	if c.current == nil {
		return
	}
	c.current.release()
	c.current = nil
}
