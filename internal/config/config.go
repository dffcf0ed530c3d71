package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEpsilon   = 1.0
	DefaultSigma     = 1.0
	DefaultRCut      = 2.5
	DefaultTolerance = 1e-3
	DefaultSpacing   = 1.5
)

// Config describes one validation suite: the potential parameters, the
// configurations to evaluate, and the engines to evaluate them with.
type Config struct {
	Epsilon     float64       `yaml:"epsilon"`
	Sigma       float64       `yaml:"sigma"`
	RCut        float64       `yaml:"rcut"`
	Separations []float64     `yaml:"separations"`
	Slab        SlabConfig    `yaml:"slab"`
	Tolerance   float64       `yaml:"tolerance"`
	Engines     EnginesConfig `yaml:"engines"`
}

// SlabConfig sizes the bulk check configuration.
type SlabConfig struct {
	NX      int     `yaml:"nx"`
	NY      int     `yaml:"ny"`
	NZ      int     `yaml:"nz"`
	Spacing float64 `yaml:"spacing"`
}

type EnginesConfig struct {
	// Enabled lists the engines to run; "reference" is implied and always runs.
	Enabled  []string     `yaml:"enabled"`
	LAMMPS   LAMMPSConfig `yaml:"lammps"`
	HOOMD    HOOMDConfig  `yaml:"hoomd"`
	KeepWork bool         `yaml:"keep_work"`
}

type LAMMPSConfig struct {
	Binary string `yaml:"binary"`
}

type HOOMDConfig struct {
	Python string `yaml:"python"`
}

func DefaultConfig() *Config {
	return &Config{
		Epsilon:     DefaultEpsilon,
		Sigma:       DefaultSigma,
		RCut:        DefaultRCut,
		Separations: []float64{1.0, 1.5},
		Slab: SlabConfig{
			NX: 5, NY: 5, NZ: 2,
			Spacing: DefaultSpacing,
		},
		Tolerance: DefaultTolerance,
		Engines: EnginesConfig{
			Enabled: []string{"lammps", "hoomd"},
			LAMMPS:  LAMMPSConfig{Binary: "lmp"},
			HOOMD:   HOOMDConfig{Python: "python3"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if c.Sigma <= 0 {
		return fmt.Errorf("sigma must be positive, got %g", c.Sigma)
	}
	if c.RCut <= c.Sigma {
		return fmt.Errorf("rcut %g must exceed sigma %g", c.RCut, c.Sigma)
	}
	if len(c.Separations) == 0 {
		return fmt.Errorf("at least one two-particle separation is required")
	}
	for _, r := range c.Separations {
		if r <= 0 {
			return fmt.Errorf("separation must be positive, got %g", r)
		}
	}
	if c.Slab.NX < 1 || c.Slab.NY < 1 || c.Slab.NZ < 1 {
		return fmt.Errorf("slab dimensions must be at least 1x1x1")
	}
	if c.Slab.Spacing <= 0 {
		return fmt.Errorf("slab spacing must be positive, got %g", c.Slab.Spacing)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	return nil
}
