// Package keepalive keeps a frame-based application's update cycle running
// while its host window or page is hidden.
//
// The primary scheduling source of such an application (typically a
// visibility-gated animation callback) is throttled or suspended by the host
// when the window loses visibility. This package provides a secondary,
// independent timing source that drives the update cycle in its place:
//
//   - VisibilityTracker bridges the host's visibility-change notification to
//     a shared VisibilityState and runs one final update cycle on hide, so
//     the application observes the transition before its primary source stops.
//   - BackgroundScheduler arms a one-shot or interval timer while hidden and
//     invokes the update cycle on each firing; it disarms on show, yielding
//     control back to the primary source.
//   - BackgroundTimer accumulates wall-clock time spent backgrounded,
//     unaffected by any per-cycle delta clamp the host applies, and resets to
//     zero when the application regains visibility.
//
// # Example Usage
//
//	host := realtime.NewHost()
//	ka, _ := keepalive.New(host, app.RunUpdateCycle,
//		keepalive.WithInitialWakeDelay(200),
//		keepalive.WithIntervalMode(false),
//	)
//	ka.Start()
//	// host windowing layer calls host.SetVisible(v) on focus changes
//
// # Timing Modes
//
// Interval mode registers a single recurring timer whose period is fixed at
// arm time; it has the lowest per-firing overhead but ignores wake-delay
// changes until the scheduler next re-arms. One-shot mode re-registers a
// fresh timer after every firing using the current Settings.WakeDelay, so a
// host can tune responsiveness against battery cost while hidden.
//
// # Concurrency
//
// Both callback sources are cooperative: the scheduler only fires while the
// primary source is dormant, and disarming on show invalidates any pending
// firing so the update cycle is never driven from two sources at once. All
// shared state is serialized internally; hosts with genuinely concurrent
// callback delivery (any Go timer implementation) are safe.
package keepalive
