// Package frame provides the frame scheduling primitive that drives the tween
// engine.
//
// A [Requester] runs a callback once, "soon". It is single-shot: a callback
// that wants another frame must request it again. [Loop] is the real-time
// implementation. It owns one goroutine that runs both posted tasks and frame
// callbacks, so code driving an engine through [Loop.Post] never races with
// ticks.
package frame

import (
	"context"
	"sync"
	"time"
)

const (
	// RefreshInterval approximates a 60Hz display refresh.
	RefreshInterval = time.Second / 60
	// FallbackInterval is used when no refresh-aligned interval is configured.
	FallbackInterval = 33 * time.Millisecond
)

// Requester schedules a single callback for the next frame.
type Requester interface {
	RequestFrame(fn func(now time.Time))
}

// Loop runs frame callbacks at a fixed interval on a single goroutine.
type Loop struct {
	interval time.Duration
	clock    Clock
	tasks    chan func()
	wake     chan struct{}

	mu      sync.Mutex
	pending []func(time.Time)
}

// NewLoop creates a loop that fires requested frames every interval. A
// non-positive interval selects [FallbackInterval].
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = FallbackInterval
	}
	return &Loop{
		interval: interval,
		clock:    SystemClock{},
		tasks:    make(chan func(), 64),
		wake:     make(chan struct{}, 1),
	}
}

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration { return l.interval }

// RequestFrame schedules fn for the next frame. Callbacks requested during a
// frame run on the following frame.
func (l *Loop) RequestFrame(fn func(now time.Time)) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Post runs fn on the loop goroutine. It blocks only if the task queue is
// full.
func (l *Loop) Post(fn func()) {
	l.tasks <- fn
}

// Run processes tasks and frames until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(l.interval)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case <-l.wake:
			if !armed {
				timer.Reset(l.interval)
				armed = true
			}
		case <-timer.C:
			armed = false
			l.runFrame()
		}
		if !armed && l.hasPending() {
			timer.Reset(l.interval)
			armed = true
		}
	}
}

func (l *Loop) hasPending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending) > 0
}

func (l *Loop) runFrame() {
	l.mu.Lock()
	callbacks := l.pending
	l.pending = nil
	l.mu.Unlock()

	now := l.clock.Now()
	for _, fn := range callbacks {
		fn(now)
	}
}
