package keepalive

import "time"

// VisibilityEvent is emitted on every visibility transition.
type VisibilityEvent struct {
	Visible bool
	At      time.Time
}

// Notifier receives visibility transitions. Implementations must not block:
// notification happens inside the host's visibility callback, before the
// forced final cycle.
type Notifier interface {
	Notify(ev VisibilityEvent)
}

// ChannelNotifier forwards visibility events to a Go channel. Publishing is
// non-blocking with drop on backpressure.
type ChannelNotifier struct {
	ch chan<- VisibilityEvent
}

// NewChannelNotifier creates a ChannelNotifier with the given output channel.
// The channel should be buffered; a full channel drops events.
func NewChannelNotifier(ch chan<- VisibilityEvent) *ChannelNotifier {
	return &ChannelNotifier{ch: ch}
}

func (n *ChannelNotifier) Notify(ev VisibilityEvent) {
	select {
	case n.ch <- ev:
	default:
		// Non-blocking drop
	}
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ev VisibilityEvent)

func (f NotifierFunc) Notify(ev VisibilityEvent) { f(ev) }

type nopNotifier struct{}

func (nopNotifier) Notify(VisibilityEvent) {}
