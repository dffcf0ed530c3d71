package report

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/potval/internal/potential"
)

// Curve samples pair.Energy on n points over [rmin, rmax], clamping the
// repulsive wall so the plot scale stays readable.
func Curve(pair potential.Pair, rmin, rmax float64, n int, clamp float64) []float64 {
	if n < 2 {
		n = 2
	}
	data := make([]float64, n)
	step := (rmax - rmin) / float64(n-1)
	for i := range data {
		e := pair.Energy(rmin + float64(i)*step)
		if e > clamp || math.IsInf(e, 1) {
			e = clamp
		}
		data[i] = e
	}
	return data
}

// PlotPotential renders the U(r) curve for one potential.
func PlotPotential(pair potential.Pair, rmin, rmax float64) string {
	data := Curve(pair, rmin, rmax, 120, 2.0)
	return asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s  U(r), r in [%.2f, %.2f]", pair.Name(), rmin, rmax)),
	)
}
