package keepalive

import (
	"sync"
	"time"
)

// VisibilityState is the shared flag tracking whether the application is
// currently visible. It is written only by the VisibilityTracker and may be
// read by any consumer. Applications start visible.
type VisibilityState struct {
	mu      sync.RWMutex
	visible bool
}

// NewVisibilityState creates a VisibilityState in the visible position.
func NewVisibilityState() *VisibilityState {
	return &VisibilityState{visible: true}
}

// Visible reports the host's last reported visibility.
func (v *VisibilityState) Visible() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visible
}

func (v *VisibilityState) set(visible bool) {
	v.mu.Lock()
	v.visible = visible
	v.mu.Unlock()
}

// VisibilityTracker bridges the host's visibility-change notification to the
// shared VisibilityState and drives the hide/show handoff between the
// primary timing source and the BackgroundScheduler.
//
// Each transition is processed in a fixed order: flag update, notification,
// forced final cycle (hide only, when enabled), then scheduler arm or
// disarm. The forced cycle therefore always completes before the first
// background firing is even armed.
type VisibilityTracker struct {
	state     *VisibilityState
	update    UpdateCycle
	notifier  Notifier
	runOnHide bool
	now       func() time.Time

	// handoff hooks, wired by the composing Keepalive
	onHidden func()
	onShown  func()
}

// NewVisibilityTracker creates a tracker writing into state. update is run
// once per hide transition when runOnHide is set. notifier may be nil.
func NewVisibilityTracker(state *VisibilityState, update UpdateCycle, notifier Notifier, runOnHide bool, now func() time.Time) *VisibilityTracker {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if now == nil {
		now = time.Now
	}
	return &VisibilityTracker{
		state:     state,
		update:    update,
		notifier:  notifier,
		runOnHide: runOnHide,
		now:       now,
	}
}

// HandleChange processes one visibility transition reported by the host.
// It is the callback registered with Host.RegisterVisibilityListener.
func (t *VisibilityTracker) HandleChange(visible bool) {
	t.state.set(visible)
	t.notifier.Notify(VisibilityEvent{Visible: visible, At: t.now()})

	if visible {
		if t.onShown != nil {
			t.onShown()
		}
		return
	}

	if t.runOnHide && t.update != nil {
		t.update()
	}
	if t.onHidden != nil {
		t.onHidden()
	}
}
