package countdown

import "time"

// State represents the current countdown mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateExpired State = "expired"
)

const (
	eventStart  = "start"
	eventPause  = "pause"
	eventResume = "resume"
	eventStop   = "stop"
	eventExpire = "expire"
)

// TickResult is the outcome of a single periodic update.
type TickResult struct {
	Remaining time.Duration
	Label     string
	Progress  float64
	// Expired is set on the tick that observed the countdown reach zero.
	Expired bool
	// Continue reports whether the periodic callback should stay armed.
	Continue bool
}

// Snapshot is a read-only view of the engine used for rendering.
type Snapshot struct {
	State     State
	Duration  time.Duration
	Remaining time.Duration
	Progress  float64
	Label     string
}

// Running reports whether the countdown is currently advancing.
func (snapshot Snapshot) Running() bool {
	return snapshot.State == StateRunning
}
