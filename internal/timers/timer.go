package timers

import "time"

// ResetSeconds is the value Reset assigns, independent of a timer's original duration.
const ResetSeconds int64 = 300

// Timer is a single countdown record. Values are immutable once published;
// the registry replaces records with modified copies.
type Timer struct {
	ID        string
	Label     string
	Remaining int64 // seconds
	Paused    bool
}

// State classifies a timer for display.
type State string

const (
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateExpired State = "expired"
)

func (t Timer) State() State {
	switch {
	case !t.Paused:
		return StateRunning
	case t.Remaining <= 0:
		return StateExpired
	default:
		return StatePaused
	}
}

// Expiry is emitted when a running timer reaches zero and gets paused by a tick.
type Expiry struct {
	TimerID string
	Label   string
	At      time.Time
}
