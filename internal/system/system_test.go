package system

import (
	"math"
	"testing"

	"github.com/san-kum/potval/internal/potential"
)

func TestTwoParticle(t *testing.T) {
	cfg := TwoParticle(1.5)
	if len(cfg.Positions) != 2 {
		t.Fatalf("expected 2 particles, got %d", len(cfg.Positions))
	}
	if d := cfg.Positions[0].Dist(cfg.Positions[1]); math.Abs(d-1.5) > 1e-12 {
		t.Errorf("separation = %g, want 1.5", d)
	}
}

func TestSlabCount(t *testing.T) {
	cfg := Slab(5, 5, 2, 1.5)
	if len(cfg.Positions) != 50 {
		t.Errorf("expected 50 particles, got %d", len(cfg.Positions))
	}
}

func TestSlabCentered(t *testing.T) {
	cfg := Slab(4, 4, 2, 1.2)
	var com Vec3
	for _, p := range cfg.Positions {
		com.X += p.X
		com.Y += p.Y
		com.Z += p.Z
	}
	n := float64(len(cfg.Positions))
	for _, c := range []float64{com.X / n, com.Y / n, com.Z / n} {
		if math.Abs(c) > 1e-12 {
			t.Errorf("grid not centered, mean coordinate %g", c)
		}
	}
}

func TestSlabSpacing(t *testing.T) {
	cfg := Slab(3, 1, 1, 1.5)
	// nearest-neighbor distance along the line is the spacing
	if d := cfg.Positions[0].Dist(cfg.Positions[1]); math.Abs(d-1.5) > 1e-12 {
		t.Errorf("neighbor distance = %g, want 1.5", d)
	}
}

func TestTotalEnergyTwoParticles(t *testing.T) {
	lj := potential.NewLJ(potential.Params{Epsilon: 1.0, Sigma: 1.0})
	cfg := TwoParticle(1.5)

	got := TotalEnergy(cfg, lj, 2.5)
	want := lj.Energy(1.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("total = %g, want single pair energy %g", got, want)
	}
}

func TestTotalEnergyThreeInLine(t *testing.T) {
	lj := potential.NewLJ(potential.Params{Epsilon: 1.0, Sigma: 1.0})
	cfg := Config{
		Label: "line",
		Positions: []Vec3{
			{0, 0, 0}, {1.2, 0, 0}, {2.4, 0, 0},
		},
	}

	got := TotalEnergy(cfg, lj, 10.0)
	want := 2*lj.Energy(1.2) + lj.Energy(2.4)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("total = %g, want %g", got, want)
	}
}

func TestTotalEnergyCutoffExcludes(t *testing.T) {
	lj := potential.NewLJ(potential.Params{Epsilon: 1.0, Sigma: 1.0})
	cfg := Config{
		Label: "pair beyond cutoff",
		Positions: []Vec3{
			{0, 0, 0}, {3.0, 0, 0},
		},
	}

	if got := TotalEnergy(cfg, lj, 2.5); got != 0 {
		t.Errorf("pair beyond rcut contributed %g", got)
	}
	// exactly at rcut is excluded too
	cfg.Positions[1].X = 2.5
	if got := TotalEnergy(cfg, lj, 2.5); got != 0 {
		t.Errorf("pair at rcut contributed %g", got)
	}
}

func TestTotalEnergyCoincident(t *testing.T) {
	lj := potential.NewLJ(potential.Params{Epsilon: 1.0, Sigma: 1.0})
	cfg := Config{
		Positions: []Vec3{{0, 0, 0}, {0, 0, 0}},
	}
	if got := TotalEnergy(cfg, lj, 2.5); !math.IsInf(got, 1) {
		t.Errorf("coincident particles gave %g, want +Inf", got)
	}
}

func TestBounds(t *testing.T) {
	cfg := Slab(3, 3, 1, 2.0)
	lo, hi := cfg.Bounds()
	if math.Abs(lo.X+2.0) > 1e-12 || math.Abs(hi.X-2.0) > 1e-12 {
		t.Errorf("x bounds [%g, %g], want [-2, 2]", lo.X, hi.X)
	}
	if lo.Z != 0 || hi.Z != 0 {
		t.Errorf("z bounds [%g, %g], want [0, 0]", lo.Z, hi.Z)
	}
}
