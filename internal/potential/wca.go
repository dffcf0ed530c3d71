package potential

import "math"

// WCA is the Weeks-Chandler-Andersen potential: LJ shifted up by epsilon and
// truncated at the LJ minimum 2^(1/6)*sigma, leaving only the repulsive core.
type WCA struct {
	P  Params
	lj LJ
}

func NewWCA(p Params) *WCA {
	return &WCA{P: p, lj: LJ{P: p}}
}

func (w *WCA) Name() string { return "wca" }

func (w *WCA) Cutoff() float64 { return w.P.MinimumRadius() }

func (w *WCA) Energy(r float64) float64 {
	if r <= 0 {
		return math.Inf(1)
	}
	if r > w.Cutoff() {
		return 0
	}
	return w.lj.Energy(r) + w.P.Epsilon
}
