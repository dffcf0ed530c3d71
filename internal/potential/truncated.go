package potential

import "math"

type ShiftMode int

const (
	// ShiftNone truncates the potential at rcut without shifting, so U jumps
	// to zero there. This matches the LAMMPS lj/cut default.
	ShiftNone ShiftMode = iota
	// ShiftEnergy subtracts U(rcut) inside the cutoff so the potential is
	// continuous at rcut. This matches HOOMD's "shift" mode.
	ShiftEnergy
)

// Truncated wraps a Pair with a finite cutoff radius.
type Truncated struct {
	Inner Pair
	RCut  float64
	Shift ShiftMode
}

func NewTruncated(inner Pair, rcut float64, shift ShiftMode) *Truncated {
	return &Truncated{Inner: inner, RCut: rcut, Shift: shift}
}

func (t *Truncated) Name() string { return t.Inner.Name() + "/cut" }

func (t *Truncated) Cutoff() float64 {
	return math.Min(t.RCut, t.Inner.Cutoff())
}

func (t *Truncated) Energy(r float64) float64 {
	if r >= t.RCut {
		return 0
	}
	e := t.Inner.Energy(r)
	if t.Shift == ShiftEnergy {
		e -= t.Inner.Energy(t.RCut)
	}
	return e
}
