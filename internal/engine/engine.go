// Package engine computes configuration energies through pluggable
// backends: the in-process reference formula and external molecular
// dynamics packages (LAMMPS, HOOMD-blue) driven over their own CLIs.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/potval/internal/potential"
	"github.com/san-kum/potval/internal/system"
)

var (
	ErrEngineNotFound = errors.New("engine executable not found")
	ErrEnergyNotFound = errors.New("energy not found in output")
	ErrBadOutput      = errors.New("engine output contains an error")
	ErrUnknownPot     = errors.New("unknown potential")
)

// Case is one configuration to evaluate: a set of positions plus the
// potential it interacts under.
type Case struct {
	Label     string
	Config    system.Config
	Potential string // "lj" or "wca"
	Params    potential.Params
	RCut      float64
}

// Pair builds the potential for this case. LJ is truncated at RCut without
// shifting; WCA carries its own cutoff at the LJ minimum.
func (c Case) Pair() (potential.Pair, error) {
	switch c.Potential {
	case "lj":
		return potential.NewTruncated(potential.NewLJ(c.Params), c.RCut, potential.ShiftNone), nil
	case "wca":
		return potential.NewWCA(c.Params), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPot, c.Potential)
	}
}

// EffectiveCut is the interaction range actually used for this case.
func (c Case) EffectiveCut() float64 {
	if c.Potential == "wca" {
		return c.Params.MinimumRadius()
	}
	return c.RCut
}

// Shifted reports whether the potential is energy-shifted at the cutoff,
// which external engines need to be told explicitly.
func (c Case) Shifted() bool {
	return c.Potential == "wca"
}

// Engine evaluates the total potential energy of a Case.
type Engine interface {
	Name() string

	// Detect probes for the engine and returns its version string, or an
	// error (usually wrapping ErrEngineNotFound) if it cannot run.
	Detect(ctx context.Context) (string, error)

	Energy(ctx context.Context, c Case) (float64, error)
}
