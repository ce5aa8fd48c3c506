package keepalive

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Option applies configuration to Keepalive via functional options pattern.
type Option func(*Keepalive)

// WithConfig replaces the entire initialization-time configuration, e.g.
// one produced by LoadConfig.
func WithConfig(cfg Config) Option {
	return func(k *Keepalive) {
		k.cfg = cfg
	}
}

// WithInitialWakeDelay sets the delay in milliseconds before the first
// background firing after a hide transition.
func WithInitialWakeDelay(ms float64) Option {
	return func(k *Keepalive) {
		k.cfg.InitialWakeDelay = ms
	}
}

// WithIntervalMode selects between a recurring interval timer (true) and a
// self-re-arming one-shot timer (false).
func WithIntervalMode(interval bool) Option {
	return func(k *Keepalive) {
		k.cfg.UseIntervalMode = interval
	}
}

// WithRunOnHide controls whether one update cycle runs synchronously on
// every hide transition.
func WithRunOnHide(run bool) Option {
	return func(k *Keepalive) {
		k.cfg.RunMainScheduleOnHide = run
	}
}

// WithNotifier configures a Notifier for visibility transitions.
func WithNotifier(n Notifier) Option {
	return func(k *Keepalive) {
		k.notifier = n
	}
}

// WithLogger configures the diagnostic logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(k *Keepalive) {
		k.log = l
	}
}

// WithResources configures a Resources store; Keepalive publishes its
// settings, background timer, and visibility state into it on Start.
func WithResources(r *Resources) Option {
	return func(k *Keepalive) {
		k.resources = r
	}
}

// Keepalive composes the visibility tracker, background scheduler, and
// background timer around a Host and the application's update cycle.
type Keepalive struct {
	host      Host
	update    UpdateCycle
	cfg       Config
	log       *slog.Logger
	notifier  Notifier
	resources *Resources

	visibility *VisibilityState
	settings   *Settings
	timer      *BackgroundTimer
	tracker    *VisibilityTracker
	scheduler  *BackgroundScheduler

	started    atomic.Bool
	registered bool
}

// New wires the keepalive components together. The returned Keepalive does
// nothing until Start registers the visibility listener with the host.
func New(host Host, update UpdateCycle, opts ...Option) (*Keepalive, error) {
	if host == nil {
		return nil, errors.New("nil host")
	}
	if update == nil {
		return nil, errors.New("nil update cycle")
	}

	k := &Keepalive{
		host:   host,
		update: update,
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(k)
	}
	if err := k.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if k.log == nil {
		k.log = slog.Default()
	}

	k.visibility = NewVisibilityState()
	k.settings = NewSettings(k.cfg.InitialWakeDelay)
	k.timer = &BackgroundTimer{}

	mode := OneShot
	if k.cfg.UseIntervalMode {
		mode = Interval
	}
	k.scheduler = NewBackgroundScheduler(
		host, update, k.settings, k.timer,
		mode, msToDuration(k.cfg.InitialWakeDelay), k.log,
	)

	k.tracker = NewVisibilityTracker(k.visibility, update, k.notifier, k.cfg.RunMainScheduleOnHide, host.Now)
	k.tracker.onHidden = func() {
		if k.started.Load() {
			k.scheduler.Arm()
		}
	}
	k.tracker.onShown = func() {
		k.scheduler.Disarm()
		k.timer.Reset()
	}

	return k, nil
}

// Start registers the visibility listener with the host and publishes the
// shared resources. Listener registration failure is fatal: background
// liveness cannot be guaranteed without visibility tracking.
func (k *Keepalive) Start() error {
	if k.started.Load() {
		return errors.New("keepalive already started")
	}

	if !k.registered {
		if _, err := k.host.RegisterVisibilityListener(k.tracker.HandleChange); err != nil {
			return fmt.Errorf("register visibility listener: %w", err)
		}
		k.registered = true
	}
	k.started.Store(true)

	if k.resources != nil {
		k.resources.Set(ResourceSettings, k.settings)
		k.resources.Set(ResourceTimer, k.timer)
		k.resources.Set(ResourceVisibility, k.visibility)
	}

	k.log.Debug("keepalive started",
		"initialWakeDelay", k.cfg.InitialWakeDelay,
		"mode", k.scheduler.Mode().String(),
		"runOnHide", k.cfg.RunMainScheduleOnHide)
	return nil
}

// Stop disarms the scheduler and stops arming on future hide transitions.
// The visibility listener stays registered; the host owns listener
// lifecycles and tears them down with the application. A stopped Keepalive
// can be started again.
func (k *Keepalive) Stop() {
	if !k.started.CompareAndSwap(true, false) {
		return
	}
	k.scheduler.Disarm()
}

// Settings returns the runtime-mutable scheduler settings.
func (k *Keepalive) Settings() *Settings { return k.settings }

// Visibility returns the shared read-only visibility flag.
func (k *Keepalive) Visibility() *VisibilityState { return k.visibility }

// BackgroundTimer returns the elapsed-background-time accumulator.
func (k *Keepalive) BackgroundTimer() *BackgroundTimer { return k.timer }

// Scheduler returns the background scheduler, mainly for state inspection.
func (k *Keepalive) Scheduler() *BackgroundScheduler { return k.scheduler }
