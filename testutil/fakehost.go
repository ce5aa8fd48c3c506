// Package testutil provides a deterministic Host implementation for testing
// keepalive scheduling without real timers. The clock only moves when the
// test calls Advance, and timer callbacks run synchronously inside Advance in
// due-time order, so every scenario is reproducible.
package testutil

import (
	"sync"
	"time"

	"github.com/comalice/keepalive"
)

// FakeHost is a manual-clock implementation of keepalive.Host.
//
// Visibility transitions are driven by SetVisible and delivered synchronously
// to registered listeners. Timers fire inside Advance; a timer scheduled
// during a firing (e.g. a one-shot re-arm) participates in the same Advance
// call if its due time falls within the window.
type FakeHost struct {
	mu        sync.Mutex
	now       time.Time
	visible   bool
	nextID    keepalive.TimerHandle
	timers    map[keepalive.TimerHandle]*fakeTimer
	listeners []func(visible bool)

	failSchedule error // next Schedule* returns this, then clears
	failListener error // next RegisterVisibilityListener returns this

	scheduled int
	cancelled int
}

// minResolution is the shortest delay or period a registration can request.
// Non-positive durations clamp to it, matching the wall-clock host; the
// clamp also guarantees every firing moves the clock, so Advance terminates
// even when a consumer re-arms with a zero wake delay.
const minResolution = time.Millisecond

type fakeTimer struct {
	handle    keepalive.TimerHandle
	due       time.Time
	period    time.Duration
	interval  bool
	fn        func()
	cancelled bool
}

// NewFakeHost creates a visible FakeHost whose clock reads start.
func NewFakeHost(start time.Time) *FakeHost {
	return &FakeHost{
		now:     start,
		visible: true,
		nextID:  1,
		timers:  make(map[keepalive.TimerHandle]*fakeTimer),
	}
}

// Now returns the manual clock's current time.
func (h *FakeHost) Now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

// RegisterVisibilityListener installs fn for SetVisible delivery.
func (h *FakeHost) RegisterVisibilityListener(fn func(visible bool)) (keepalive.ListenerHandle, error) {
	h.mu.Lock()
	if err := h.failListener; err != nil {
		h.failListener = nil
		h.mu.Unlock()
		return 0, err
	}
	h.listeners = append(h.listeners, fn)
	handle := keepalive.ListenerHandle(len(h.listeners))
	h.mu.Unlock()
	return handle, nil
}

// ScheduleOnce registers a one-shot timer due after delay. Delays below
// minResolution are clamped.
func (h *FakeHost) ScheduleOnce(delay time.Duration, fn func()) (keepalive.TimerHandle, error) {
	return h.schedule(delay, 0, false, fn)
}

// ScheduleInterval registers a recurring timer firing every period. Periods
// below minResolution are clamped.
func (h *FakeHost) ScheduleInterval(period time.Duration, fn func()) (keepalive.TimerHandle, error) {
	return h.schedule(period, period, true, fn)
}

func (h *FakeHost) schedule(delay, period time.Duration, interval bool, fn func()) (keepalive.TimerHandle, error) {
	if delay < minResolution {
		delay = minResolution
	}
	if interval && period < minResolution {
		period = minResolution
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failSchedule; err != nil {
		h.failSchedule = nil
		return 0, err
	}
	handle := h.nextID
	h.nextID++
	h.timers[handle] = &fakeTimer{
		handle:   handle,
		due:      h.now.Add(delay),
		period:   period,
		interval: interval,
		fn:       fn,
	}
	h.scheduled++
	return handle, nil
}

// CancelTimer marks the timer cancelled. The entry is retained so tests can
// simulate a best-effort cancellation race via ForceFire.
func (h *FakeHost) CancelTimer(handle keepalive.TimerHandle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.timers[handle]; ok && !t.cancelled {
		t.cancelled = true
		h.cancelled++
	}
}

// SetVisible reports a visibility transition to all listeners, synchronously.
// Reporting the current value is a no-op (hosts never deliver duplicate
// transitions).
func (h *FakeHost) SetVisible(visible bool) {
	h.mu.Lock()
	if h.visible == visible {
		h.mu.Unlock()
		return
	}
	h.visible = visible
	listeners := make([]func(bool), len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(visible)
	}
}

// Advance moves the clock forward by d, firing due timers in due-time order.
// Callbacks run with the clock set to their due time. Timers scheduled by a
// callback are eligible within the same call.
func (h *FakeHost) Advance(d time.Duration) {
	h.mu.Lock()
	target := h.now.Add(d)

	for {
		t := h.nextDue(target)
		if t == nil {
			break
		}
		h.now = t.due
		if t.interval {
			t.due = t.due.Add(t.period)
		} else {
			delete(h.timers, t.handle)
		}
		fn := t.fn
		h.mu.Unlock()
		fn()
		h.mu.Lock()
	}

	h.now = target
	h.mu.Unlock()
}

// nextDue returns the earliest live timer due at or before target, or nil.
// Caller holds h.mu.
func (h *FakeHost) nextDue(target time.Time) *fakeTimer {
	var next *fakeTimer
	for _, t := range h.timers {
		if t.cancelled || t.due.After(target) {
			continue
		}
		if next == nil || t.due.Before(next.due) ||
			(t.due.Equal(next.due) && t.handle < next.handle) {
			next = t
		}
	}
	return next
}

// ForceFire invokes a timer's callback regardless of cancellation, without
// moving the clock. It simulates the best-effort cancellation race where a
// firing is already in flight when CancelTimer returns. Returns false if the
// handle was never registered or already consumed.
func (h *FakeHost) ForceFire(handle keepalive.TimerHandle) bool {
	h.mu.Lock()
	t, ok := h.timers[handle]
	h.mu.Unlock()
	if !ok {
		return false
	}
	t.fn()
	return true
}

// FailNextSchedule makes the next ScheduleOnce or ScheduleInterval call
// return err.
func (h *FakeHost) FailNextSchedule(err error) {
	h.mu.Lock()
	h.failSchedule = err
	h.mu.Unlock()
}

// FailNextListener makes the next RegisterVisibilityListener call return err.
func (h *FakeHost) FailNextListener(err error) {
	h.mu.Lock()
	h.failListener = err
	h.mu.Unlock()
}

// LiveTimers reports the number of registered, uncancelled timers.
func (h *FakeHost) LiveTimers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, t := range h.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Scheduled reports how many timer registrations have succeeded.
func (h *FakeHost) Scheduled() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scheduled
}

// Cancelled reports how many timers have been cancelled.
func (h *FakeHost) Cancelled() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}
