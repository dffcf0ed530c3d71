package config

import "sort"

// Presets are named suite configurations. Each is a full Config so a preset
// can be run without a config file.
var Presets = map[string]func() *Config{
	"standard": DefaultConfig,
	"tight": func() *Config {
		cfg := DefaultConfig()
		cfg.Tolerance = 1e-6
		return cfg
	},
	"short-range": func() *Config {
		cfg := DefaultConfig()
		cfg.RCut = 1.5
		cfg.Separations = []float64{0.95, 1.1}
		return cfg
	},
	"dense-slab": func() *Config {
		cfg := DefaultConfig()
		cfg.Slab = SlabConfig{NX: 6, NY: 6, NZ: 3, Spacing: 1.1}
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
