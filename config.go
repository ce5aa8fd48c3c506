package keepalive

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines the initialization-time configuration of the keepalive
// plugin. Runtime-mutable state lives in Settings; Config fields are fixed
// once New returns.
type Config struct {
	// InitialWakeDelay is the delay in milliseconds before the first
	// background firing after the application is hidden. It also seeds
	// Settings.WakeDelay. The default is 1000 (one update per second).
	InitialWakeDelay float64 `json:"initialWakeDelay" yaml:"initialWakeDelay"`

	// UseIntervalMode selects a recurring interval timer over a
	// self-re-arming one-shot timer. Interval mode fixes its period at arm
	// time; one-shot mode re-reads Settings.WakeDelay before every firing.
	UseIntervalMode bool `json:"useIntervalMode" yaml:"useIntervalMode"`

	// RunMainScheduleOnHide runs one synchronous update cycle on every hide
	// transition, before the background timer is armed.
	RunMainScheduleOnHide bool `json:"runMainScheduleOnHide" yaml:"runMainScheduleOnHide"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		InitialWakeDelay:      1000.0,
		UseIntervalMode:       true,
		RunMainScheduleOnHide: true,
	}
}

// Validate validates the configuration:
// - InitialWakeDelay must be finite and >= 0
func (c Config) Validate() error {
	if c.InitialWakeDelay < 0 {
		return fmt.Errorf("initialWakeDelay must be >= 0, got %v", c.InitialWakeDelay)
	}
	if math.IsNaN(c.InitialWakeDelay) || math.IsInf(c.InitialWakeDelay, 0) {
		return errors.New("initialWakeDelay must be finite")
	}
	return nil
}

// LoadConfig reads a Config from a YAML file. Fields absent from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}
