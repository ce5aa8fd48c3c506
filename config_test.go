package keepalive

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig pins the documented defaults.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.InitialWakeDelay != 1000.0 {
		t.Errorf("InitialWakeDelay=%v, want 1000", cfg.InitialWakeDelay)
	}
	if !cfg.UseIntervalMode {
		t.Error("UseIntervalMode should default to true")
	}
	if !cfg.RunMainScheduleOnHide {
		t.Error("RunMainScheduleOnHide should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// TestConfigValidate rejects negative and NaN delays.
func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialWakeDelay = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative initialWakeDelay")
	}
	cfg.InitialWakeDelay = math.NaN()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for NaN initialWakeDelay")
	}
	cfg.InitialWakeDelay = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero delay should be valid: %v", err)
	}
}

// TestLoadConfig reads YAML and layers it over defaults.
func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keepalive.yaml")
	content := "initialWakeDelay: 16.667\nuseIntervalMode: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.InitialWakeDelay != 16.667 {
		t.Errorf("InitialWakeDelay=%v, want 16.667", cfg.InitialWakeDelay)
	}
	if cfg.UseIntervalMode {
		t.Error("UseIntervalMode should be false")
	}
	// Absent field keeps its default.
	if !cfg.RunMainScheduleOnHide {
		t.Error("RunMainScheduleOnHide should keep default true")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("initialWakeDelay: -3\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected validation error for negative delay")
	}

	garbled := filepath.Join(dir, "garbled.yaml")
	if err := os.WriteFile(garbled, []byte(":\n\t-"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadConfig(garbled); err == nil {
		t.Error("expected parse error for garbled YAML")
	}
}
