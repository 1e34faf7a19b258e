package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jask/multitimer/internal/database/repository"
	"github.com/jask/multitimer/internal/timers"
)

// Notifier is told when a timer expires. Delivery is up to the implementation.
type Notifier interface {
	Notify(ctx context.Context, e timers.Expiry) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, e timers.Expiry) error

func (f NotifierFunc) Notify(ctx context.Context, e timers.Expiry) error { return f(ctx, e) }

// Dispatcher fans an expiry out to every notifier and joins their errors.
type Dispatcher struct {
	Notifiers []Notifier
}

func (d *Dispatcher) Notify(ctx context.Context, e timers.Expiry) error {
	var errs []error
	for _, n := range d.Notifiers {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BellNotifier rings the terminal bell.
type BellNotifier struct {
	Out io.Writer
}

func (b *BellNotifier) Notify(_ context.Context, _ timers.Expiry) error {
	if b.Out == nil {
		return nil
	}
	if _, err := io.WriteString(b.Out, "\a"); err != nil {
		return fmt.Errorf("bell: %w", err)
	}
	return nil
}

// JournalNotifier records expiries in the sqlite journal.
type JournalNotifier struct {
	Expiries *repository.ExpiryRepo
}

func (j *JournalNotifier) Notify(ctx context.Context, e timers.Expiry) error {
	if j.Expiries == nil {
		return fmt.Errorf("journal: repo not configured")
	}
	id, err := j.Expiries.Record(ctx, repository.Expiry{TimerID: e.TimerID, Label: e.Label, ExpiredAt: e.At})
	if err != nil {
		return fmt.Errorf("journal %q: %w", e.Label, err)
	}
	log.Printf("journal: recorded expiry %d for %q", id, e.Label)
	return nil
}
