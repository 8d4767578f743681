// Package ident mints the UOH_ASR tokens that name each recording attempt
// and its persisted audio/transcript pair.
package ident

import (
	"fmt"
	"math/rand"
	"time"
)

// Pattern is the canonical shape of a generated identifier.
const Pattern = `^UOH_ASR_\d{6}_\d{3}$`

// Generator combines the low six decimal digits of the wall clock in
// milliseconds with a three-digit random suffix. Uniqueness is practical,
// not guaranteed: within one session the collision chance is negligible.
type Generator struct {
	now func() time.Time
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewGeneratorWith allows clock and randomness injection for tests.
func NewGeneratorWith(now func() time.Time, rng *rand.Rand) *Generator {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{now: now, rng: rng}
}

// Next mints one identifier. Called exactly once per recording attempt.
func (g *Generator) Next() string {
	timeSuffix := g.now().UnixMilli() % 1_000_000
	return fmt.Sprintf("UOH_ASR_%06d_%03d", timeSuffix, g.rng.Intn(1000))
}
