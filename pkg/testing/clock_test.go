package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestManualFrames_Pump(t *testing.T) {
	clk := NewFakeClock()
	frames := NewManualFrames(clk)

	var stamps []time.Time
	var cb func(time.Time)
	cb = func(now time.Time) {
		stamps = append(stamps, now)
		if len(stamps) < 2 {
			frames.RequestFrame(cb)
		}
	}
	frames.RequestFrame(cb)

	if n := frames.Pump(); n != 1 {
		t.Fatalf("Pump() ran %d callbacks, want 1", n)
	}
	if frames.Pending() != 1 {
		t.Fatalf("re-requested frame should wait for the next pump, pending=%d", frames.Pending())
	}
	clk.Advance(16 * time.Millisecond)
	frames.Pump()

	if len(stamps) != 2 || stamps[1].Sub(stamps[0]) != 16*time.Millisecond {
		t.Errorf("unexpected frame stamps %v", stamps)
	}
	if frames.Requests() != 2 {
		t.Errorf("Requests() = %d, want 2", frames.Requests())
	}
	if frames.Pump() != 0 {
		t.Error("expected no pending frames")
	}
}
