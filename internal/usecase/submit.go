package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"promptbooth/internal/audio"
	"promptbooth/internal/domain"
)

// Submit commits the reviewed recording: the audio artifact goes to
// audio/<identifier>.wav and the prompt text to
// transcription/<identifier>.txt, written as a matched pair. On success
// the slot is marked used, the attempt's resources are released, and the
// controller returns to idle, advancing to the next slot or completing
// the session once the commit limit is reached. On failure the attempt,
// its identifier, and the review state are left untouched so the
// participant may retry or retake. Only one submission may be in flight,
// and a session restarted while the commit runs is never mutated by the
// completing submit.
func (c *RecordingController) Submit(ctx context.Context) (domain.SubmitResult, error) {
	c.mu.Lock()
	if c.state != domain.CaptureStateReview || c.current == nil {
		c.mu.Unlock()
		return domain.SubmitResult{}, ErrNothingToReview
	}
	if c.submitting {
		c.mu.Unlock()
		return domain.SubmitResult{}, ErrSubmitInFlight
	}
	c.submitting = true
	attempt := c.current
	sess := c.sess
	c.mu.Unlock()

	audioKey := "audio/" + attempt.identifier + ".wav"
	transcriptKey := "transcription/" + attempt.identifier + ".txt"
	wav := audio.EncodeWAV(attempt.segments.Bytes(), c.cfg.Audio.SampleRate, c.cfg.Audio.Channels)

	err := c.committer.Commit(ctx, audioKey, wav, transcriptKey, attempt.prompt)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.log.WithFields(logrus.Fields{
			"identifier": attempt.identifier,
			"attempt_id": attempt.handle,
		}).WithError(err).Error("submission failed")
		c.events.SessionError(domain.ErrorCodeSubmission, err.Error())
		return domain.SubmitResult{}, err
	}

	// The lock was released during the commit: the controller may have
	// moved on (new session, shutdown). The pair is already persisted,
	// so the stale result is dropped without touching current state.
	if c.current != attempt || c.state != domain.CaptureStateReview || c.sess != sess {
		c.log.WithFields(logrus.Fields{
			"identifier":     attempt.identifier,
			"attempt_id":     attempt.handle,
			"audio_key":      audioKey,
			"transcript_key": transcriptKey,
		}).Warn("pair persisted but submitting attempt was superseded; slot not marked used")
		return domain.SubmitResult{}, ErrAttemptSuperseded
	}

	if err := c.sess.Commit(attempt.slot); err != nil {
		c.log.WithFields(logrus.Fields{
			"identifier":     attempt.identifier,
			"audio_key":      audioKey,
			"transcript_key": transcriptKey,
		}).WithError(err).Error("pair persisted but slot bookkeeping failed")
		c.events.SessionError(domain.ErrorCodeSubmission, err.Error())
		return domain.SubmitResult{}, err
	}

	c.discardLocked()
	c.tracker.Reset()
	c.state = domain.CaptureStateIdle

	result := domain.SubmitResult{
		Identifier:    attempt.identifier,
		AudioKey:      audioKey,
		TranscriptKey: transcriptKey,
		Slot:          attempt.slot,
		Used:          c.sess.Used(),
		Complete:      c.sess.Complete(),
	}

	c.log.WithFields(logrus.Fields{
		"identifier":     attempt.identifier,
		"attempt_id":     attempt.handle,
		"audio_key":      audioKey,
		"transcript_key": transcriptKey,
		"used":           result.Used,
	}).Info("recording committed")

	if result.Complete {
		c.events.StateChanged(domain.CaptureStateIdle, domain.ReasonSessionComplete)
	} else {
		c.events.StateChanged(domain.CaptureStateIdle, domain.ReasonCommitted)
		if slot, prompt, ok := c.sess.Current(); ok {
			c.events.PromptPresented(slot, prompt)
		}
	}
	return result, nil
}
