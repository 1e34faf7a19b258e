package timers

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the ordered, in-memory collection of timers.
//
// Every mutation builds a new slice and swaps it in whole, so a snapshot
// returned by Timers or handed to a subscriber is never modified afterwards.
// Commands on unknown ids are silent no-ops. Subscribers and the expiry hook
// run on the mutating goroutine after the swap, outside the registry lock.
// Each commit carries a sequence number and a subscriber is never handed a
// snapshot older than one it already got, so concurrent mutators can only
// cause a stale snapshot to be skipped. Subscribers must not call back into
// the registry.
type Registry struct {
	mu      sync.Mutex
	timers  []Timer
	seq     uint64
	subs    []*subscriber
	hooks   []expiryHook
	nextSub int

	newID   func() string
	now     func() time.Time
	resetTo int64
}

type subscriber struct {
	id int
	fn func([]Timer)

	mu        sync.Mutex // serializes delivery
	delivered bool
	last      uint64
}

type expiryHook struct {
	id int
	fn func(Expiry)
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDFunc replaces the uuid generator. Colliding ids are regenerated.
func WithIDFunc(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

// WithExpiryHook registers a collaborator told about expired timers for the
// registry's whole lifetime. See OnExpire for a cancellable hook.
func WithExpiryHook(fn func(Expiry)) Option {
	return func(r *Registry) { r.OnExpire(fn) }
}

// WithClock sets the time source used to stamp expiries.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithResetSeconds overrides ResetSeconds. Values <= 0 are ignored.
func WithResetSeconds(seconds int64) Option {
	return func(r *Registry) {
		if seconds > 0 {
			r.resetTo = seconds
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		newID:   uuid.NewString,
		now:     time.Now,
		resetTo: ResetSeconds,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Timers returns the latest committed snapshot.
func (r *Registry) Timers() []Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.timers)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

func (r *Registry) Get(id string) (Timer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexLocked(id); i >= 0 {
		return r.timers[i], true
	}
	return Timer{}, false
}

// Subscribe delivers the current snapshot immediately and then one snapshot per
// committed change. The returned cancel func is idempotent.
func (r *Registry) Subscribe(fn func([]Timer)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	r.nextSub++
	id := r.nextSub
	sub := &subscriber{id: id, fn: fn}
	r.subs = append(r.subs, sub)
	snap, seq := r.timers, r.seq
	r.mu.Unlock()

	sub.deliver(snap, seq)

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.subs = slices.DeleteFunc(r.subs, func(s *subscriber) bool { return s.id == id })
		})
	}
}

// OnExpire registers fn to be called, after the snapshot is published, for
// every timer a tick pauses at zero. The returned cancel func is idempotent.
func (r *Registry) OnExpire(fn func(Expiry)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	r.nextSub++
	id := r.nextSub
	r.hooks = append(r.hooks, expiryHook{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.hooks = slices.DeleteFunc(r.hooks, func(h expiryHook) bool { return h.id == id })
		})
	}
}

// Add appends a running timer and returns it. Negative durations clamp to zero.
func (r *Registry) Add(label string, seconds int64) Timer {
	if seconds < 0 {
		seconds = 0
	}
	r.mu.Lock()
	t := Timer{ID: r.freshIDLocked(), Label: label, Remaining: seconds}
	next := make([]Timer, 0, len(r.timers)+1)
	next = append(next, r.timers...)
	next = append(next, t)
	seq, subs := r.commitLocked(next)
	r.mu.Unlock()

	r.publish(next, seq, subs)
	return t
}

// Pause toggles the paused flag; it doubles as resume.
func (r *Registry) Pause(id string) {
	r.update(id, func(t Timer) Timer {
		t.Paused = !t.Paused
		return t
	})
}

// Reset sets the remaining time to the reset value and pauses the timer.
func (r *Registry) Reset(id string) {
	r.update(id, func(t Timer) Timer {
		t.Remaining = r.resetTo
		t.Paused = true
		return t
	})
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return
	}
	next := slices.Delete(slices.Clone(r.timers), i, i+1)
	seq, subs := r.commitLocked(next)
	r.mu.Unlock()

	r.publish(next, seq, subs)
}

// Tick advances every timer by one second:
//  1. running with time left: decrement
//  2. otherwise at zero: pause (expiry when it was running)
//  3. otherwise: unchanged
//
// A running timer at 1 therefore reaches 0 on one tick and pauses on the next.
func (r *Registry) Tick() {
	r.mu.Lock()
	next := make([]Timer, len(r.timers))
	var expired []Expiry
	for i, t := range r.timers {
		switch {
		case !t.Paused && t.Remaining > 0:
			t.Remaining--
		case t.Remaining <= 0:
			if !t.Paused {
				expired = append(expired, Expiry{TimerID: t.ID, Label: t.Label, At: r.now()})
			}
			t.Paused = true
		}
		next[i] = t
	}
	if slices.Equal(next, r.timers) {
		r.mu.Unlock()
		return
	}
	seq, subs := r.commitLocked(next)
	hooks := slices.Clone(r.hooks)
	r.mu.Unlock()

	r.publish(next, seq, subs)
	for _, e := range expired {
		for _, h := range hooks {
			h.fn(e)
		}
	}
}

func (r *Registry) update(id string, fn func(Timer) Timer) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return
	}
	changed := fn(r.timers[i])
	if changed == r.timers[i] {
		r.mu.Unlock()
		return
	}
	next := slices.Clone(r.timers)
	next[i] = changed
	seq, subs := r.commitLocked(next)
	r.mu.Unlock()

	r.publish(next, seq, subs)
}

// commitLocked swaps in next and returns its sequence number and the
// subscribers to notify.
func (r *Registry) commitLocked(next []Timer) (uint64, []*subscriber) {
	r.timers = next
	r.seq++
	return r.seq, slices.Clone(r.subs)
}

func (r *Registry) publish(snap []Timer, seq uint64, subs []*subscriber) {
	for _, s := range subs {
		s.deliver(snap, seq)
	}
}

// deliver hands snap to the subscriber unless it already holds a newer one.
func (s *subscriber) deliver(snap []Timer, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delivered && seq <= s.last {
		return
	}
	s.delivered, s.last = true, seq
	s.fn(slices.Clone(snap))
}

func (r *Registry) indexLocked(id string) int {
	return slices.IndexFunc(r.timers, func(t Timer) bool { return t.ID == id })
}

func (r *Registry) freshIDLocked() string {
	for {
		id := r.newID()
		if id != "" && r.indexLocked(id) < 0 {
			return id
		}
	}
}
