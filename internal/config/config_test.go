package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bubble" {
		t.Errorf("expected algorithm bubble, got %s", cfg.Algorithm)
	}
	if cfg.Input.Size != 30 || cfg.Input.Min != 5 || cfg.Input.Max != 100 {
		t.Errorf("unexpected input defaults %+v", cfg.Input)
	}
	if cfg.Playback.Speed != 50 || cfg.Playback.BaseDelay != time.Second {
		t.Errorf("unexpected playback defaults %+v", cfg.Playback)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	data := "algorithm: heap\ninput:\n  size: 12\nplayback:\n  base_delay: 250ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Algorithm != "heap" || cfg.Input.Size != 12 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Playback.BaseDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms base delay, got %v", cfg.Playback.BaseDelay)
	}
	if cfg.Input.Max != DefaultMax || cfg.Playback.Speed != DefaultSpeed {
		t.Errorf("defaults lost for keys missing from the file: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Algorithm = "merge"
	cfg.Input.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown algorithm", func(c *Config) { c.Algorithm = "bogo" }, "Algorithm"},
		{"zero size", func(c *Config) { c.Input.Size = 0 }, "Size"},
		{"oversized", func(c *Config) { c.Input.Size = MaxSize + 1 }, "Size"},
		{"inverted range", func(c *Config) { c.Input.Min, c.Input.Max = 50, 10 }, "Max"},
		{"unknown pattern", func(c *Config) { c.Input.Pattern = "spiral" }, "Pattern"},
		{"zero speed", func(c *Config) { c.Playback.Speed = 0 }, "Speed"},
		{"zero delay", func(c *Config) { c.Playback.BaseDelay = 0 }, "BaseDelay"},
		{"unknown theme", func(c *Config) { c.Theme = "pastel" }, "Theme"},
		{"bad addr", func(c *Config) { c.Server.Addr = "nonsense" }, "Addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected %s in %q", tt.field, err.Error())
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bubble", "worst")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Input.Pattern != "reversed" {
		t.Errorf("expected reversed pattern, got %s", cfg.Input.Pattern)
	}

	cfg.Input.Size = 3
	if Presets["bubble"]["worst"].Input.Size == 3 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("bubble", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "small") != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("merge")
	if strings.Join(presets, ",") != "large,small,worst" {
		t.Errorf("unexpected presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestPresetsValidate(t *testing.T) {
	for alg, named := range Presets {
		for name, cfg := range named {
			if cfg.Algorithm != alg {
				t.Errorf("%s/%s: algorithm %s", alg, name, cfg.Algorithm)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", alg, name, err)
			}
		}
	}
}
