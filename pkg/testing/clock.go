package testing

import (
	"sync"
	"time"
)

// FakeClock provides controllable time for deterministic tween tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ManualFrames is a frame requester that runs callbacks only when pumped.
type ManualFrames struct {
	clock    *FakeClock
	pending  []func(time.Time)
	requests int
}

// NewManualFrames returns frames stamped with clock's time.
func NewManualFrames(clock *FakeClock) *ManualFrames {
	return &ManualFrames{clock: clock}
}

// RequestFrame queues fn for the next Pump.
func (f *ManualFrames) RequestFrame(fn func(time.Time)) {
	f.requests++
	f.pending = append(f.pending, fn)
}

// Pending returns the number of queued callbacks.
func (f *ManualFrames) Pending() int { return len(f.pending) }

// Requests returns the total number of frames ever requested.
func (f *ManualFrames) Requests() int { return f.requests }

// Pump runs the callbacks queued before the call. Callbacks requested while
// pumping wait for the next Pump. It returns the number of callbacks run.
func (f *ManualFrames) Pump() int {
	callbacks := f.pending
	f.pending = nil
	now := f.clock.Now()
	for _, fn := range callbacks {
		fn(now)
	}
	return len(callbacks)
}
