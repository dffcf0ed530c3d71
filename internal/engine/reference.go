package engine

import (
	"context"

	"github.com/san-kum/potval/internal/system"
)

// ReferenceVersion identifies the hand-written formula, recorded as the
// "version" of the reference package in stored statepoints.
const ReferenceVersion = "builtin"

// Reference evaluates cases in-process with the closed-form potentials.
// It is always available and serves as the baseline the external engines
// are compared against.
type Reference struct{}

func NewReference() *Reference { return &Reference{} }

func (*Reference) Name() string { return "reference" }

func (*Reference) Detect(ctx context.Context) (string, error) {
	return ReferenceVersion, nil
}

func (*Reference) Energy(ctx context.Context, c Case) (float64, error) {
	pair, err := c.Pair()
	if err != nil {
		return 0, err
	}
	return system.TotalEnergy(c.Config, pair, c.EffectiveCut()), nil
}
