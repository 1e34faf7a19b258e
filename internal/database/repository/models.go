package repository

import "time"

// Expiry represents a journal row for a timer that ran out.
type Expiry struct {
	ID        int64
	TimerID   string
	Label     string
	ExpiredAt time.Time
}
