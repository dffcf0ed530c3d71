package engine

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/san-kum/potval/internal/system"
)

//go:embed lammps.in.tmpl
var lammpsFS embed.FS

var lammpsTemplate = template.Must(template.ParseFS(lammpsFS, "lammps.in.tmpl"))

// boxMargin pads the simulation box around the configuration so no particle
// sits on a boundary and periodic images cannot interact.
const boxMargin = 2.0

// LAMMPS runs single-point energy evaluations through the lmp binary:
// a templated input deck per case, fixed (non-periodic) boundaries, and a
// print marker scanned out of the captured output.
type LAMMPS struct {
	Binary   string
	KeepWork bool
}

func NewLAMMPS(binary string) *LAMMPS {
	if binary == "" {
		binary = "lmp"
	}
	return &LAMMPS{Binary: binary}
}

func (l *LAMMPS) Name() string { return "lammps" }

func (l *LAMMPS) Detect(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, l.Binary, "-h")
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrEngineNotFound, l.Binary)
		}
		return "", fmt.Errorf("probing %s: %w", l.Binary, err)
	}
	// banner like "Large-scale Atomic/Molecular Massively Parallel Simulator - 2 Aug 2023"
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "Large-scale Atomic") {
			if i := strings.LastIndex(line, " - "); i >= 0 {
				return strings.TrimSpace(line[i+3:]), nil
			}
			return strings.TrimSpace(line), nil
		}
	}
	return "", fmt.Errorf("%w: unrecognized banner from %s -h", ErrBadOutput, l.Binary)
}

type lammpsDeck struct {
	Lo, Hi    system.Vec3
	Positions []system.Vec3
	Epsilon   float64
	Sigma     float64
	RCut      float64
	Shift     bool
}

func lammpsDeckFor(c Case) lammpsDeck {
	lo, hi := c.Config.Bounds()
	pad := c.EffectiveCut() + boxMargin
	return lammpsDeck{
		Lo:        system.Vec3{X: lo.X - pad, Y: lo.Y - pad, Z: lo.Z - pad},
		Hi:        system.Vec3{X: hi.X + pad, Y: hi.Y + pad, Z: hi.Z + pad},
		Positions: c.Config.Positions,
		Epsilon:   c.Params.Epsilon,
		Sigma:     c.Params.Sigma,
		RCut:      c.EffectiveCut(),
		Shift:     c.Shifted(),
	}
}

func renderLAMMPSDeck(c Case) (string, error) {
	var b strings.Builder
	if err := lammpsTemplate.Execute(&b, lammpsDeckFor(c)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (l *LAMMPS) Energy(ctx context.Context, c Case) (float64, error) {
	deck, err := renderLAMMPSDeck(c)
	if err != nil {
		return 0, err
	}

	dir, err := os.MkdirTemp("", "potval-lammps-")
	if err != nil {
		return 0, err
	}
	if !l.KeepWork {
		defer os.RemoveAll(dir)
	}

	deckPath := filepath.Join(dir, "in.potval")
	if err := os.WriteFile(deckPath, []byte(deck), 0644); err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, l.Binary, "-in", "in.potval", "-log", "none")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrEngineNotFound, l.Binary)
		}
		return 0, fmt.Errorf("%s %s: %w\n%s", l.Binary, c.Label, err, outputTail(out, 10))
	}

	e, err := scanEnergy(bytes.NewReader(out))
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w\n%s", l.Binary, c.Label, err, outputTail(out, 10))
	}
	return e, nil
}
