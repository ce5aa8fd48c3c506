package keepalive

import (
	"log/slog"
	"sync"
	"time"
)

// SchedulerState identifies the background scheduler's lifecycle state.
type SchedulerState int

const (
	// Idle means the primary timing source drives the update cycle; no
	// background timer is registered.
	Idle SchedulerState = iota
	// Armed means the application is hidden and the background timer drives
	// the update cycle.
	Armed
)

func (s SchedulerState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Armed:
		return "Armed"
	default:
		return "Unknown"
	}
}

// Mode selects the background timing source.
type Mode int

const (
	// OneShot re-registers a fresh one-shot timer after every firing using
	// the current Settings.WakeDelay, so delay changes take effect on the
	// very next firing.
	OneShot Mode = iota
	// Interval registers a single recurring timer whose period is fixed at
	// arm time; delay changes are ignored until the next Idle to Armed
	// transition.
	Interval
)

func (m Mode) String() string {
	switch m {
	case OneShot:
		return "OneShot"
	case Interval:
		return "Interval"
	default:
		return "Unknown"
	}
}

// BackgroundScheduler keeps invoking the update cycle while the application
// is hidden, using a secondary timing source independent of the primary
// visibility-gated one.
//
// State machine: Idle and Armed. Arm transitions Idle to Armed and acquires
// exactly one live timer handle; Disarm transitions Armed to Idle and
// cancels it. Every firing ticks the BackgroundTimer with wall-clock dt and
// runs one update cycle; in OneShot mode it then re-arms. At most one live
// handle exists at any instant, and a firing delivered for an
// already-cancelled handle is detected and ignored.
type BackgroundScheduler struct {
	host     Host
	update   UpdateCycle
	settings *Settings
	timer    *BackgroundTimer
	log      *slog.Logger

	mode         Mode
	initialDelay time.Duration

	mu       sync.Mutex
	state    SchedulerState
	handle   TimerHandle
	live     bool // handle refers to a live registration
	gen      uint64
	lastFire time.Time
}

// NewBackgroundScheduler creates a scheduler in the Idle state. timer is
// ticked on every firing; update is run once per firing.
func NewBackgroundScheduler(host Host, update UpdateCycle, settings *Settings, timer *BackgroundTimer, mode Mode, initialDelay time.Duration, log *slog.Logger) *BackgroundScheduler {
	if log == nil {
		log = slog.Default()
	}
	return &BackgroundScheduler{
		host:         host,
		update:       update,
		settings:     settings,
		timer:        timer,
		log:          log,
		mode:         mode,
		initialDelay: initialDelay,
	}
}

// State returns the scheduler's current lifecycle state.
func (s *BackgroundScheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mode returns the configured timing-source mode.
func (s *BackgroundScheduler) Mode() Mode { return s.mode }

// Arm activates the background timing source. The first firing is scheduled
// after the configured initial wake delay in OneShot mode, or one period of
// the current Settings.WakeDelay in Interval mode. Arming while already
// Armed is a no-op.
//
// Registration failure does not panic: the failure is logged and the
// scheduler stays Armed with no live handle until the next visibility
// transition.
func (s *BackgroundScheduler) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Armed {
		return
	}
	s.state = Armed
	s.gen++
	gen := s.gen
	s.lastFire = s.host.Now()

	var (
		h   TimerHandle
		err error
	)
	switch s.mode {
	case Interval:
		h, err = s.host.ScheduleInterval(s.settings.wakeDelayDuration(), func() { s.fire(gen) })
	default:
		h, err = s.host.ScheduleOnce(s.initialDelay, func() { s.fire(gen) })
	}
	if err != nil {
		s.live = false
		s.log.Error("background timer registration failed, ticking stops until next visibility transition",
			"mode", s.mode.String(), "err", err)
		return
	}
	s.handle = h
	s.live = true
}

// Disarm deactivates the background timing source and cancels any pending
// firing. A firing already in flight when Disarm returns is treated as
// stale and ignored. Disarming while Idle is a no-op.
func (s *BackgroundScheduler) Disarm() {
	s.mu.Lock()
	if s.state == Idle {
		s.mu.Unlock()
		return
	}
	s.state = Idle
	s.gen++ // invalidate pending firings, cancellation is best effort
	cancel := s.live
	h := s.handle
	s.live = false
	s.mu.Unlock()

	if cancel {
		s.host.CancelTimer(h)
	}
}

// fire handles one timing-source firing for generation gen.
func (s *BackgroundScheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.state != Armed || gen != s.gen {
		// Stale firing for a cancelled handle.
		s.mu.Unlock()
		return
	}
	now := s.host.Now()
	dt := now.Sub(s.lastFire)
	s.lastFire = now
	s.mu.Unlock()

	if s.timer != nil {
		s.timer.Tick(dt)
	}
	if s.update != nil {
		s.update()
	}

	if s.mode == OneShot {
		s.rearm(gen)
	}
}

// rearm schedules the next one-shot firing using the current wake delay.
func (s *BackgroundScheduler) rearm(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Armed || gen != s.gen {
		// Disarmed during the update cycle.
		return
	}
	delay := s.settings.wakeDelayDuration()
	h, err := s.host.ScheduleOnce(delay, func() { s.fire(gen) })
	if err != nil {
		s.live = false
		s.log.Error("background timer re-arm failed, ticking stops until next visibility transition",
			"delay", delay, "err", err)
		return
	}
	s.handle = h
	s.live = true
}
