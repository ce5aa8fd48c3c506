package realtime

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/comalice/keepalive"
)

// TestOneShotTimerFires tests basic one-shot delivery.
func TestOneShotTimerFires(t *testing.T) {
	h := NewHost()

	fired := make(chan struct{})
	if _, err := h.ScheduleOnce(10*time.Millisecond, func() { close(fired) }); err != nil {
		t.Fatalf("ScheduleOnce: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("one-shot timer never fired")
	}
	if h.LiveTimers() != 0 {
		t.Fatalf("LiveTimers=%d after firing, want 0", h.LiveTimers())
	}
}

// TestCancelBeforeFiring: a cancelled one-shot must not run.
func TestCancelBeforeFiring(t *testing.T) {
	h := NewHost()

	var fired atomic.Bool
	handle, err := h.ScheduleOnce(50*time.Millisecond, func() { fired.Store(true) })
	if err != nil {
		t.Fatalf("ScheduleOnce: %v", err)
	}
	h.CancelTimer(handle)

	time.Sleep(100 * time.Millisecond)
	if fired.Load() {
		t.Fatal("cancelled timer fired")
	}
}

// TestIntervalTimerRate checks the recurring timer fires at roughly the
// configured period (generous tolerance for CI schedulers).
func TestIntervalTimerRate(t *testing.T) {
	h := NewHost()

	var fired atomic.Int64
	handle, err := h.ScheduleInterval(10*time.Millisecond, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("ScheduleInterval: %v", err)
	}

	time.Sleep(105 * time.Millisecond)
	h.CancelTimer(handle)

	n := fired.Load()
	if n < 5 || n > 15 {
		t.Errorf("expected ~10 firings in 105ms, got %d", n)
	}

	// No further firings after cancel.
	after := fired.Load()
	time.Sleep(50 * time.Millisecond)
	if fired.Load() > after+1 {
		t.Errorf("interval kept firing after cancel: %d -> %d", after, fired.Load())
	}
}

// TestZeroPeriodIntervalClamps: a zero period is valid configuration and
// must clamp to the host's minimum resolution, not panic or go dead.
func TestZeroPeriodIntervalClamps(t *testing.T) {
	h := NewHost()

	var fired atomic.Int64
	handle, err := h.ScheduleInterval(0, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("ScheduleInterval: %v", err)
	}
	defer h.CancelTimer(handle)

	time.Sleep(50 * time.Millisecond)
	if fired.Load() == 0 {
		t.Fatal("clamped interval never fired")
	}
}

// TestZeroWakeDelayDoesNotPanic hides a keepalive configured with a zero
// initial wake delay in interval mode; the hide transition happens inside
// the windowing layer's SetVisible call and must never panic.
func TestZeroWakeDelayDoesNotPanic(t *testing.T) {
	h := NewHost()

	var updates atomic.Int64
	ka, err := keepalive.New(h, func() { updates.Add(1) },
		keepalive.WithInitialWakeDelay(0),
		keepalive.WithIntervalMode(true),
		keepalive.WithRunOnHide(false),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ka.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.SetVisible(false)
	time.Sleep(30 * time.Millisecond)
	h.SetVisible(true)

	if updates.Load() == 0 {
		t.Fatal("expected background updates with a zero wake delay")
	}
}

// TestKeepaliveAgainstWallClock runs the composed library against real
// timers: hide should drive background updates, show should stop them and
// reset the background timer.
func TestKeepaliveAgainstWallClock(t *testing.T) {
	h := NewHost()

	var updates atomic.Int64
	ka, err := keepalive.New(h, func() { updates.Add(1) },
		keepalive.WithInitialWakeDelay(10),
		keepalive.WithIntervalMode(false),
		keepalive.WithRunOnHide(false),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ka.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.SetVisible(false)
	time.Sleep(105 * time.Millisecond)

	n := updates.Load()
	if n < 5 || n > 15 {
		t.Errorf("expected ~10 background updates in 105ms, got %d", n)
	}
	if got := ka.BackgroundTimer().Elapsed(); got < 50*time.Millisecond {
		t.Errorf("elapsed=%v while hidden, want at least 50ms", got)
	}

	h.SetVisible(true)
	if got := ka.BackgroundTimer().Elapsed(); got != 0 {
		t.Errorf("elapsed=%v after show, want 0", got)
	}

	// Allow one in-flight firing, then demand silence.
	time.Sleep(20 * time.Millisecond)
	after := updates.Load()
	time.Sleep(50 * time.Millisecond)
	if updates.Load() != after {
		t.Errorf("updates kept arriving while visible: %d -> %d", after, updates.Load())
	}
	if h.LiveTimers() != 0 {
		t.Errorf("LiveTimers=%d while visible, want 0", h.LiveTimers())
	}
}
