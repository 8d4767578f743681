package usecase

import (
	"sync"

	"github.com/google/uuid"

	"promptbooth/internal/ports"
)

// activeAttempt is the transient state of one recording attempt: the
// exclusive device handle, the accumulating audio segments, and the
// identifier minted for this take. handle is an internal correlation id
// for logs; identifier is the public UOH token naming the persisted pair.
type activeAttempt struct {
	identifier string
	handle     string
	slot       int
	prompt     string

	cancel   func()
	audio    ports.AudioSession
	segments *segmentBuffer
	pumpDone chan struct{}
}

func newAttempt(identifier string, slot int, prompt string, cancel func(), audio ports.AudioSession) *activeAttempt {
	return &activeAttempt{
		identifier: identifier,
		handle:     uuid.NewString(),
		slot:       slot,
		prompt:     prompt,
		cancel:     cancel,
		audio:      audio,
		segments:   &segmentBuffer{},
		pumpDone:   make(chan struct{}),
	}
}

// release tears down the attempt's resources. Safe to call on a partially
// stopped attempt: the device Stop is idempotent.
func (a *activeAttempt) release() {
	_ = a.audio.Stop()
	a.cancel()
	<-a.pumpDone
	a.segments.Reset()
}

// segmentBuffer accumulates pushed audio segments until the attempt is
// finalized into one artifact.
type segmentBuffer struct {
	mu       sync.Mutex
	segments [][]byte
	size     int
}

func (b *segmentBuffer) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	copied := make([]byte, len(chunk))
	copy(copied, chunk)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.segments = append(b.segments, copied)
	b.size += len(copied)
}

func (b *segmentBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	joined := make([]byte, 0, b.size)
	for _, segment := range b.segments {
		joined = append(joined, segment...)
	}
	return joined
}

func (b *segmentBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

func (b *segmentBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.segments = nil
	b.size = 0
}
