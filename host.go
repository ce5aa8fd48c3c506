package keepalive

import "time"

// ListenerHandle identifies a registered visibility listener.
type ListenerHandle int

// TimerHandle identifies a live timer registration. Handles are opaque to
// this package; only the Host that issued one can interpret it.
type TimerHandle int

// UpdateCycle invokes one full update pass of the hosted application.
type UpdateCycle func()

// Host abstracts the platform primitives the keepalive core consumes.
// Implementations must deliver each callback at most once per registration
// (per period, for interval timers) and must treat CancelTimer as best
// effort: a firing already in flight when CancelTimer returns is tolerated,
// the core detects and ignores it.
type Host interface {
	// RegisterVisibilityListener installs fn to be called with the new
	// visibility value on every transition. Registration failure is fatal
	// to the caller; there is no retry.
	RegisterVisibilityListener(fn func(visible bool)) (ListenerHandle, error)

	// ScheduleOnce runs fn once after delay. Non-positive delays fire as
	// soon as the host allows.
	ScheduleOnce(delay time.Duration, fn func()) (TimerHandle, error)

	// ScheduleInterval runs fn every period until cancelled. A wake delay of
	// zero is valid configuration, so implementations must not reject or
	// panic on non-positive periods; they clamp to their minimum timer
	// resolution instead.
	ScheduleInterval(period time.Duration, fn func()) (TimerHandle, error)

	// CancelTimer cancels a timer returned by ScheduleOnce or
	// ScheduleInterval. Cancelling an already-fired or unknown handle is a
	// no-op.
	CancelTimer(h TimerHandle)

	// Now reports the host's current wall-clock time. Injected so
	// elapsed-time accounting stays deterministic under test.
	Now() time.Time
}
