package tween

import "fmt"

// ID identifies a registered tween record. IDs are reused once a record has
// been reaped, so an ID only identifies a record while it is registered.
type ID int

// State is the lifecycle state of a tween record.
//
//	           first tick           Pause()
//	Pending ─────────────► Active ◄─────────► Paused
//	                          │     Resume()
//	                          ▼
//	                      Complete
//
// Complete is terminal. A record leaves the registry in the tick it
// completes, or immediately when it is stopped or superseded.
type State int

const (
	// Pending records are registered but have not run a tick yet.
	Pending State = iota
	// Active records are interpolating.
	Active
	// Paused records keep their progress but do not advance.
	Paused
	// Complete records have finished and are no longer registered.
	Complete
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// finishReason records why a record reached Complete.
type finishReason int

const (
	finishNone finishReason = iota
	// finishCompleted: the duration elapsed and the end value was applied.
	finishCompleted
	// finishStopped: Stop was called.
	finishStopped
	// finishSuperseded: a non-colliding tween replaced it.
	finishSuperseded
	// finishDropped: its target could not be written.
	finishDropped
)
