// Package storage holds the Committer implementations that persist one
// audio/transcript pair per identifier under the dataset repository root.
package storage

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SimulatedCommitter stands in for the real dataset transport: it waits a
// fixed delay and logs the object keys it would have written. Useful for
// booth dry runs and local development.
type SimulatedCommitter struct {
	Delay time.Duration
	Log   *logrus.Logger
}

func NewSimulatedCommitter(delay time.Duration, log *logrus.Logger) *SimulatedCommitter {
	if log == nil {
		log = logrus.New()
	}
	return &SimulatedCommitter{Delay: delay, Log: log}
}

func (c *SimulatedCommitter) Commit(ctx context.Context, audioKey string, wav []byte, transcriptKey string, transcript string) error {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.Log.WithFields(logrus.Fields{
		"audio_key":      audioKey,
		"audio_bytes":    len(wav),
		"transcript_key": transcriptKey,
		"transcript":     transcript,
	}).Info("simulated commit")
	return nil
}
