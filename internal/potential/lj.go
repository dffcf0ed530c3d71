package potential

import "math"

// LJ is the 12-6 Lennard-Jones potential:
//
//	U(r) = 4*epsilon*((sigma/r)^12 - (sigma/r)^6)
type LJ struct {
	P Params
}

func NewLJ(p Params) *LJ { return &LJ{P: p} }

func (l *LJ) Name() string { return "lj" }

func (l *LJ) Cutoff() float64 { return math.Inf(1) }

func (l *LJ) Energy(r float64) float64 {
	if r <= 0 {
		return math.Inf(1)
	}
	sr := l.P.Sigma / r
	sr6 := sr * sr * sr * sr * sr * sr
	return 4 * l.P.Epsilon * (sr6*sr6 - sr6)
}
