package frame

import "time"

// Clock provides time for the engine. Tests inject a fake clock to control
// timing deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system time. Durations between its readings use the
// monotonic clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
