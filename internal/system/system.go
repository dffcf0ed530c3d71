// Package system builds particle configurations and sums pair energies
// over them. Systems here are validation-sized, so the total energy is a
// plain double loop over unique pairs with no neighbor structures.
package system

import (
	"fmt"
	"math"

	"github.com/san-kum/potval/internal/potential"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Norm()
}

// Config is a fixed, non-periodic set of particle positions.
type Config struct {
	Label     string
	Positions []Vec3
}

// TwoParticle places two particles a distance r apart along x.
func TwoParticle(r float64) Config {
	return Config{
		Label: fmt.Sprintf("two_particle_r%.4f", r),
		Positions: []Vec3{
			{0, 0, 0},
			{r, 0, 0},
		},
	}
}

// Slab builds an nx*ny*nz cubic grid with the given lattice spacing,
// centered on the origin.
func Slab(nx, ny, nz int, spacing float64) Config {
	positions := make([]Vec3, 0, nx*ny*nz)
	ox := -spacing * float64(nx-1) / 2
	oy := -spacing * float64(ny-1) / 2
	oz := -spacing * float64(nz-1) / 2
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				positions = append(positions, Vec3{
					X: ox + spacing*float64(i),
					Y: oy + spacing*float64(j),
					Z: oz + spacing*float64(k),
				})
			}
		}
	}
	return Config{
		Label:     fmt.Sprintf("slab_%dx%dx%d", nx, ny, nz),
		Positions: positions,
	}
}

// TotalEnergy sums pair.Energy over all unique pairs closer than rcut.
// Coincident particles produce +Inf, which propagates into the sum.
func TotalEnergy(cfg Config, pair potential.Pair, rcut float64) float64 {
	pos := cfg.Positions
	var sum float64
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			r := pos[i].Dist(pos[j])
			if r >= rcut {
				continue
			}
			sum += pair.Energy(r)
		}
	}
	return sum
}

// Bounds returns the axis-aligned bounding box of the configuration.
func (c Config) Bounds() (lo, hi Vec3) {
	if len(c.Positions) == 0 {
		return Vec3{}, Vec3{}
	}
	lo, hi = c.Positions[0], c.Positions[0]
	for _, p := range c.Positions[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}
	return lo, hi
}
