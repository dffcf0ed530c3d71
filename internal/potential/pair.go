package potential

import "math"

// Params holds the Lennard-Jones well depth and diameter shared by every
// potential in this package. Reduced (LJ) units throughout.
type Params struct {
	Epsilon float64
	Sigma   float64
}

// MinimumRadius returns 2^(1/6)*sigma, the separation at the LJ minimum.
// WCA is truncated exactly there.
func (p Params) MinimumRadius() float64 {
	return math.Pow(2, 1.0/6.0) * p.Sigma
}

// Pair is a radially symmetric two-body potential.
type Pair interface {
	Name() string

	// Energy returns the interaction energy at separation r.
	// r <= 0 yields +Inf rather than NaN.
	Energy(r float64) float64

	// Cutoff returns the radius beyond which Energy is exactly zero,
	// or +Inf for a full-range potential.
	Cutoff() float64
}
