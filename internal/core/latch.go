package core

import (
	"sync"
	"time"
)

// Latch collects key events from a front end and turns them into per-frame
// InputFrames. Terminals only report key presses (with auto-repeat), so a
// continuous action stays held for the hold window after its last press.
// A zero hold window keeps it held until Release.
//
// Latch is safe for concurrent use: input arrives on the front end's goroutine
// while frames are drained by the driver.
type Latch struct {
	mu      sync.Mutex
	hold    time.Duration
	held    map[Action]time.Time
	pending map[Action]bool
	closed  bool
}

// NewLatch creates a latch with the given hold window.
func NewLatch(hold time.Duration) *Latch {
	return &Latch{
		hold:    hold,
		held:    make(map[Action]time.Time),
		pending: make(map[Action]bool),
	}
}

// Press records an action at time now.
func (l *Latch) Press(a Action, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || a == ActionNone {
		return
	}
	if !a.Continuous() {
		l.pending[a] = true
		return
	}
	// Pressing one direction releases the other.
	switch a {
	case ActionLeft:
		delete(l.held, ActionRight)
	case ActionRight:
		delete(l.held, ActionLeft)
	}
	l.held[a] = now
	// A jump press also counts once even if the frame misses the hold window.
	if a == ActionJump {
		l.pending[a] = true
	}
}

// Release ends a held action.
func (l *Latch) Release(a Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, a)
}

// Frame returns the intents active at time now and consumes one-shot actions.
func (l *Latch) Frame(now time.Time) InputFrame {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := NewInputFrame()
	if l.closed {
		return f
	}
	for a, at := range l.held {
		if l.hold > 0 && now.Sub(at) > l.hold {
			delete(l.held, a)
			continue
		}
		f.Set(a)
	}
	for a := range l.pending {
		f.Set(a)
		delete(l.pending, a)
	}
	return f
}

// Close drops all state; further presses are ignored.
func (l *Latch) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	clear(l.held)
	clear(l.pending)
}
