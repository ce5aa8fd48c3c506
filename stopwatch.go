package keepalive

import (
	"sync"
	"time"
)

// Stopwatch accumulates ticked time. Safe for concurrent use.
type Stopwatch struct {
	mu      sync.RWMutex
	elapsed time.Duration
	paused  bool
}

// Tick adds dt to the accumulator. Negative dt and ticks while paused are
// ignored.
func (s *Stopwatch) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.mu.Lock()
	if !s.paused {
		s.elapsed += dt
	}
	s.mu.Unlock()
}

// Reset sets the accumulator back to zero and unpauses.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	s.elapsed = 0
	s.paused = false
	s.mu.Unlock()
}

// Elapsed returns the accumulated time.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsed
}

// Pause suspends accumulation; Tick becomes a no-op until Unpause or Reset.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Unpause resumes accumulation.
func (s *Stopwatch) Unpause() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Paused reports whether accumulation is suspended.
func (s *Stopwatch) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// BackgroundTimer tracks the time the application has spent hidden. It is
// ticked by the BackgroundScheduler on every background firing with the
// wall-clock time since the previous firing, so the measurement is not
// subject to any delta clamp the host's own update pipeline applies. It is
// reset exactly when the application regains visibility.
//
// Consumers treat it as read-only; a typical use is an inactivity timeout
// that must keep counting real time while the window is backgrounded.
type BackgroundTimer struct {
	Stopwatch
}
