package usecase

import (
	"sync"
	"time"

	"promptbooth/internal/ports"
)

// elapsedTracker counts whole seconds while a recording is in progress.
// Freeze stops the count without clearing it so a reviewed take still
// shows its duration; Reset clears it when the controller returns to idle.
type elapsedTracker struct {
	interval time.Duration
	events   ports.EventSink

	mu      sync.Mutex
	seconds int
	running bool
	stop    chan struct{}
}

func newElapsedTracker(interval time.Duration, events ports.EventSink) *elapsedTracker {
	if interval <= 0 {
		interval = time.Second
	}
	return &elapsedTracker{interval: interval, events: events}
}

func (t *elapsedTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.stop = make(chan struct{})
	go t.run(t.stop)
}

func (t *elapsedTracker) run(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.mu.Lock()
			if !t.running {
				t.mu.Unlock()
				return
			}
			t.seconds++
			n := t.seconds
			t.mu.Unlock()
			if t.events != nil {
				t.events.ElapsedSeconds(n)
			}
		case <-stop:
			return
		}
	}
}

// Freeze halts the count, preserving the current value.
func (t *elapsedTracker) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
}

// Reset halts the count and clears it to zero.
func (t *elapsedTracker) Reset() {
	t.mu.Lock()
	if t.running {
		t.running = false
		close(t.stop)
	}
	t.seconds = 0
	t.mu.Unlock()
}

func (t *elapsedTracker) Seconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}
