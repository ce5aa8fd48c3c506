package realtime

import (
	"sync"
	"time"

	"github.com/comalice/keepalive"
)

// Host implements keepalive.Host on the time package. The zero value is not
// usable; create with NewHost.
type Host struct {
	mu        sync.Mutex
	visible   bool
	nextID    keepalive.TimerHandle
	timers    map[keepalive.TimerHandle]func() // handle -> stop
	listeners []func(visible bool)
}

// NewHost creates a visible Host with no registered timers.
func NewHost() *Host {
	return &Host{
		visible: true,
		nextID:  1,
		timers:  make(map[keepalive.TimerHandle]func()),
	}
}

// Now returns the wall-clock time.
func (h *Host) Now() time.Time { return time.Now() }

// RegisterVisibilityListener installs fn for SetVisible delivery. It never
// fails; the error return satisfies keepalive.Host.
func (h *Host) RegisterVisibilityListener(fn func(visible bool)) (keepalive.ListenerHandle, error) {
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	handle := keepalive.ListenerHandle(len(h.listeners))
	h.mu.Unlock()
	return handle, nil
}

// SetVisible reports a visibility transition. The application's windowing
// layer calls this from its focus or minimize callback; listeners run
// synchronously on the caller's goroutine. Reporting the current value is a
// no-op.
func (h *Host) SetVisible(visible bool) {
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

// Visible reports the last value passed to SetVisible.
func (h *Host) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// ScheduleOnce runs fn once after delay, on a timer goroutine.
func (h *Host) ScheduleOnce(delay time.Duration, fn func()) (keepalive.TimerHandle, error) {
	h.mu.Lock()
	handle := h.nextID
	h.nextID++

	t := time.AfterFunc(delay, func() {
		h.mu.Lock()
		delete(h.timers, handle)
		h.mu.Unlock()
		fn()
	})
	h.timers[handle] = func() { t.Stop() }
	h.mu.Unlock()
	return handle, nil
}

// minResolution is the shortest period a timer registration can request.
// Non-positive durations clamp to it, so a zero wake delay means "as fast as
// the host allows" rather than a dead or panicking timer.
const minResolution = time.Millisecond

// ScheduleInterval runs fn every period, on a dedicated goroutine, until the
// returned handle is cancelled. Periods below minResolution are clamped.
func (h *Host) ScheduleInterval(period time.Duration, fn func()) (keepalive.TimerHandle, error) {
	if period < minResolution {
		period = minResolution
	}
	h.mu.Lock()
	handle := h.nextID
	h.nextID++

	ticker := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	h.timers[handle] = func() { once.Do(func() { close(done) }) }
	h.mu.Unlock()
	return handle, nil
}

// CancelTimer stops a timer. Cancellation is best effort: a firing already
// dispatched may still run after CancelTimer returns, and the keepalive core
// treats it as stale. Unknown or already-fired handles are no-ops.
func (h *Host) CancelTimer(handle keepalive.TimerHandle) {
	h.mu.Lock()
	stop, ok := h.timers[handle]
	if ok {
		delete(h.timers, handle)
	}
	h.mu.Unlock()
	if ok {
		stop()
	}
}

// LiveTimers reports the number of registered, uncancelled timers.
func (h *Host) LiveTimers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.timers)
}
