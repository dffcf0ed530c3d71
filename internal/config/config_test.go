package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Epsilon != 1.0 || cfg.Sigma != 1.0 {
		t.Errorf("default params epsilon=%g sigma=%g", cfg.Epsilon, cfg.Sigma)
	}
	if cfg.RCut != 2.5 {
		t.Errorf("default rcut = %g, want 2.5", cfg.RCut)
	}
	if len(cfg.Separations) != 2 {
		t.Errorf("expected 2 default separations, got %d", len(cfg.Separations))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"negative sigma", func(c *Config) { c.Sigma = -1 }},
		{"rcut inside sigma", func(c *Config) { c.RCut = 0.5 }},
		{"no separations", func(c *Config) { c.Separations = nil }},
		{"negative separation", func(c *Config) { c.Separations = []float64{-1} }},
		{"empty slab", func(c *Config) { c.Slab.NX = 0 }},
		{"zero spacing", func(c *Config) { c.Slab.Spacing = 0 }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	data := []byte("rcut: 3.0\ntolerance: 1e-5\nengines:\n  lammps:\n    binary: lmp_serial\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RCut != 3.0 {
		t.Errorf("rcut = %g, want 3.0", cfg.RCut)
	}
	if cfg.Tolerance != 1e-5 {
		t.Errorf("tolerance = %g, want 1e-5", cfg.Tolerance)
	}
	if cfg.Engines.LAMMPS.Binary != "lmp_serial" {
		t.Errorf("binary = %q", cfg.Engines.LAMMPS.Binary)
	}
	// untouched fields keep their defaults
	if cfg.Epsilon != 1.0 {
		t.Errorf("epsilon = %g, want default 1.0", cfg.Epsilon)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte("epsilon: -2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	cfg := DefaultConfig()
	cfg.RCut = 3.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.RCut != 3.5 {
		t.Errorf("roundtrip rcut = %g, want 3.5", loaded.RCut)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tight")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Tolerance != 1e-6 {
		t.Errorf("tight tolerance = %g, want 1e-6", cfg.Tolerance)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	found := false
	for _, n := range names {
		if n == "standard" {
			found = true
		}
	}
	if !found {
		t.Error("standard preset missing")
	}
}
