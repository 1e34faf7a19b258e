package timers

import (
	"context"
	"time"
)

// Clock abstracts time operations for testing.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RealClock uses actual system time.
type RealClock struct{}

func (RealClock) Now() time.Time                         { return time.Now() }
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Drive waits interval, calls tick, and repeats until ctx is done. The wait
// restarts after tick returns, so the cadence drifts by the cost of each tick.
// A tick in progress is never interrupted, and a cancelled ctx wins over a
// tick that is due at the same moment. It always returns ctx.Err().
func Drive(ctx context.Context, clock Clock, interval time.Duration, tick func()) error {
	if clock == nil {
		clock = RealClock{}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(interval):
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		tick()
	}
}
