package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/potval/internal/potential"
	"github.com/san-kum/potval/internal/system"
)

func TestReferenceTwoParticleLJ(t *testing.T) {
	ref := NewReference()
	c := ljCase(1.5)

	got, err := ref.Energy(context.Background(), c)
	if err != nil {
		t.Fatalf("energy failed: %v", err)
	}

	lj := potential.NewLJ(c.Params)
	want := lj.Energy(1.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("energy = %g, want %g", got, want)
	}
}

func TestReferenceWCABeyondCore(t *testing.T) {
	ref := NewReference()
	c := Case{
		Label:     "wca separated",
		Config:    system.TwoParticle(1.5),
		Potential: "wca",
		Params:    potential.Params{Epsilon: 1.0, Sigma: 1.0},
		RCut:      2.5,
	}

	got, err := ref.Energy(context.Background(), c)
	if err != nil {
		t.Fatalf("energy failed: %v", err)
	}
	if got != 0 {
		t.Errorf("wca energy at r=1.5 = %g, want 0", got)
	}
}

func TestReferenceUnknownPotential(t *testing.T) {
	ref := NewReference()
	c := ljCase(1.5)
	c.Potential = "morse"

	if _, err := ref.Energy(context.Background(), c); !errors.Is(err, ErrUnknownPot) {
		t.Errorf("expected ErrUnknownPot, got %v", err)
	}
}

func TestCaseEffectiveCut(t *testing.T) {
	c := ljCase(1.5)
	if c.EffectiveCut() != 2.5 {
		t.Errorf("lj cut = %g, want 2.5", c.EffectiveCut())
	}

	c.Potential = "wca"
	want := c.Params.MinimumRadius()
	if math.Abs(c.EffectiveCut()-want) > 1e-12 {
		t.Errorf("wca cut = %g, want %g", c.EffectiveCut(), want)
	}
}

func TestReferenceDetect(t *testing.T) {
	ref := NewReference()
	v, err := ref.Detect(context.Background())
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if v != ReferenceVersion {
		t.Errorf("version = %q, want %q", v, ReferenceVersion)
	}
}
