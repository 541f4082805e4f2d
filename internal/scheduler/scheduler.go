// Package scheduler provides a virtual-clock timer scheduler for scene effects.
//
// Time only moves when the owner calls Advance, usually once per frame, so
// callbacks run on the caller's goroutine and never overlap. Tests drive the
// clock directly instead of sleeping.
package scheduler

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled timer. The zero value is never issued.
type TimerID uint64

// Canceler stops a timer by ID. Unknown IDs must be ignored.
type Canceler interface {
	Cancel(id TimerID)
}

type timer struct {
	id       TimerID
	due      time.Duration
	interval time.Duration // 0 for one-shot timers
	fn       func()
}

// Scheduler runs repeating and one-shot callbacks against a virtual clock.
// It is not safe for concurrent use; the owner serialises access.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers map[TimerID]*timer
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{
		timers: make(map[TimerID]*timer),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every registers fn to run each time interval elapses.
// Non-positive intervals are rejected with a zero ID.
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 || fn == nil {
		return 0
	}
	return s.add(interval, interval, fn)
}

// After registers fn to run once, delay from now.
// A non-positive delay fires on the next Advance.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if fn == nil {
		return 0
	}
	return s.add(max(delay, 0), 0, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) TimerID {
	s.nextID++
	id := s.nextID
	s.timers[id] = &timer{
		id:       id,
		due:      s.now + delay,
		interval: interval,
		fn:       fn,
	}
	return id
}

// Cancel stops a timer. Cancelling an unknown or already-fired one-shot is a no-op.
func (s *Scheduler) Cancel(id TimerID) {
	delete(s.timers, id)
}

// Active reports whether a timer is still scheduled.
func (s *Scheduler) Active(id TimerID) bool {
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of scheduled timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// CancelAll drops every scheduled timer.
func (s *Scheduler) CancelAll() {
	clear(s.timers)
}

// Advance moves the clock forward by dt and runs every callback that came due,
// in deadline order (ties broken by registration order). A repeating timer
// fires once per elapsed interval. Callbacks may schedule or cancel timers;
// new timers that fall due inside the same window run in the same call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			delete(s.timers, t.id)
		}
		t.fn()
	}

	s.now = target
}

// nextDue returns the earliest timer due at or before target.
func (s *Scheduler) nextDue(target time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Pending returns the IDs of all scheduled timers in registration order.
func (s *Scheduler) Pending() []TimerID {
	ids := make([]TimerID, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
