package keepalive

import (
	"math"
	"sync"
	"time"
)

// Settings is the runtime-mutable scheduler configuration. It is written by
// host systems and read by the BackgroundScheduler at each (re)arm decision;
// in one-shot mode a change takes effect on the very next firing, in interval
// mode not before the scheduler next transitions from Idle to Armed.
type Settings struct {
	mu        sync.RWMutex
	wakeDelay float64 // ms
}

// NewSettings creates a Settings record seeded with wakeDelay milliseconds.
func NewSettings(wakeDelay float64) *Settings {
	return &Settings{wakeDelay: wakeDelay}
}

// WakeDelay returns the configured interval between background firings, in
// milliseconds.
func (s *Settings) WakeDelay() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wakeDelay
}

// SetWakeDelay updates the interval between background firings. Values below
// zero are clamped to zero.
func (s *Settings) SetWakeDelay(ms float64) {
	if ms < 0 || math.IsNaN(ms) {
		ms = 0
	}
	s.mu.Lock()
	s.wakeDelay = ms
	s.mu.Unlock()
}

// wakeDelayDuration converts the current wake delay to a time.Duration.
func (s *Settings) wakeDelayDuration() time.Duration {
	return msToDuration(s.WakeDelay())
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
