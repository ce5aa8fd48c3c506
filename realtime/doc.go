// Package realtime provides the wall-clock Host implementation for keepalive.
//
// Timers are backed by the time package: one-shot registrations use
// time.AfterFunc, interval registrations use time.Ticker with a dedicated
// goroutine. Visibility transitions are driven by the application's own
// windowing layer through SetVisible.
//
// # Example Usage
//
//	host := realtime.NewHost()
//	ka, _ := keepalive.New(host, app.RunUpdateCycle)
//	ka.Start()
//
//	// from the windowing layer's focus/minimize callback:
//	host.SetVisible(false)
//
// # Callback Delivery
//
// Timer callbacks run on timer goroutines, not on the goroutine that armed
// them. The keepalive core serializes its own state, and its no-double-drive
// guarantee holds: a callback delivered after its handle was cancelled is
// detected by the core and ignored. Applications whose update cycle is not
// itself safe for cross-goroutine invocation should marshal the UpdateCycle
// onto their main loop.
//
// For deterministic tests prefer testutil.FakeHost, which shares this
// package's contract but moves time manually.
package realtime
