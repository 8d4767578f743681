package session

import (
	"errors"
	"math/rand"

	"promptbooth/internal/domain"
)

var (
	ErrSlotOutOfRange = errors.New("slot index out of range")
	ErrSlotUsed       = errors.New("slot already committed")
	ErrComplete       = errors.New("session already complete")
)

// Session is one bounded working subset of the corpus presented to a
// participant. Prompts are drawn without replacement; per-slot status and
// the cursor are mutated only through Session methods.
type Session struct {
	prompts     []string
	statuses    map[int]domain.SlotStatus
	cursor      int
	commitLimit int
	complete    bool
}

// New draws min(drawSize, len(corpus)) prompts from a freshly shuffled copy
// of the corpus. The corpus itself is not mutated.
func New(corpus []string, drawSize int, commitLimit int) *Session {
	return NewWithRand(corpus, drawSize, commitLimit, nil)
}

// NewWithRand is New with an injectable random source for tests.
func NewWithRand(corpus []string, drawSize int, commitLimit int, rng *rand.Rand) *Session {
	if drawSize <= 0 {
		drawSize = 20
	}
	if commitLimit <= 0 {
		commitLimit = 5
	}

	shuffled := append([]string(nil), corpus...)
	if rng != nil {
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	} else {
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	}
	if len(shuffled) > drawSize {
		shuffled = shuffled[:drawSize]
	}

	return &Session{
		prompts:     shuffled,
		statuses:    make(map[int]domain.SlotStatus),
		commitLimit: commitLimit,
	}
}

// Current returns the cursor slot and its prompt. ok is false once the
// session is complete or the draw is exhausted.
func (s *Session) Current() (slot int, prompt string, ok bool) {
	if s.complete || s.cursor >= len(s.prompts) {
		return 0, "", false
	}
	return s.cursor, s.prompts[s.cursor], true
}

// Commit marks a slot used and advances the cursor. Once the commit count
// reaches the limit the session flips to complete and stays there.
func (s *Session) Commit(slot int) error {
	if s.complete {
		return ErrComplete
	}
	if slot < 0 || slot >= len(s.prompts) {
		return ErrSlotOutOfRange
	}
	if _, used := s.statuses[slot]; used {
		return ErrSlotUsed
	}

	s.statuses[slot] = domain.SlotStatusUsed
	s.cursor++
	if s.Used() >= s.commitLimit || s.cursor >= len(s.prompts) {
		s.complete = true
	}
	return nil
}

// Used reports the number of committed slots.
func (s *Session) Used() int {
	return len(s.statuses)
}

// Complete reports whether the session has reached its commit limit.
func (s *Session) Complete() bool {
	return s.complete
}

// Len reports the number of prompts drawn for this session.
func (s *Session) Len() int {
	return len(s.prompts)
}

// Prompts returns a copy of the drawn prompt sequence.
func (s *Session) Prompts() []string {
	return append([]string(nil), s.prompts...)
}

// Snapshot captures session progress for status reporting.
func (s *Session) Snapshot() domain.SessionSnapshot {
	snapshot := domain.SessionSnapshot{
		Slot:     s.cursor,
		Total:    len(s.prompts),
		Used:     s.Used(),
		Limit:    s.commitLimit,
		Complete: s.complete,
	}
	if _, prompt, ok := s.Current(); ok {
		snapshot.Prompt = prompt
	}
	return snapshot
}
