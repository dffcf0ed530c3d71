package engine

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/san-kum/potval/internal/system"
)

//go:embed hoomd.py.tmpl
var hoomdFS embed.FS

var hoomdTemplate = template.Must(template.ParseFS(hoomdFS, "hoomd.py.tmpl"))

// HOOMD drives HOOMD-blue through its Python API: a rendered script per
// case, run under the configured interpreter, with the energy printed to
// stdout behind the shared marker.
type HOOMD struct {
	Python   string
	KeepWork bool
}

func NewHOOMD(python string) *HOOMD {
	if python == "" {
		python = "python3"
	}
	return &HOOMD{Python: python}
}

func (h *HOOMD) Name() string { return "hoomd" }

func (h *HOOMD) Detect(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, h.Python, "-c",
		"import hoomd; print(hoomd.version.version)")
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrEngineNotFound, h.Python)
		}
		return "", fmt.Errorf("%w: hoomd not importable under %s", ErrEngineNotFound, h.Python)
	}
	v := strings.TrimSpace(string(out))
	if v == "" {
		return "", fmt.Errorf("%w: empty version from %s", ErrBadOutput, h.Python)
	}
	return v, nil
}

type hoomdScript struct {
	Positions []system.Vec3
	Box       float64
	Epsilon   float64
	Sigma     float64
	RCut      float64
	Shift     bool
}

func hoomdScriptFor(c Case) hoomdScript {
	lo, hi := c.Config.Bounds()
	extent := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	// HOOMD's box is periodic; pad with two cutoffs so images never interact.
	box := extent + 2*(c.EffectiveCut()+boxMargin)
	return hoomdScript{
		Positions: c.Config.Positions,
		Box:       box,
		Epsilon:   c.Params.Epsilon,
		Sigma:     c.Params.Sigma,
		RCut:      c.EffectiveCut(),
		Shift:     c.Shifted(),
	}
}

func renderHOOMDScript(c Case) (string, error) {
	var b strings.Builder
	if err := hoomdTemplate.Execute(&b, hoomdScriptFor(c)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (h *HOOMD) Energy(ctx context.Context, c Case) (float64, error) {
	script, err := renderHOOMDScript(c)
	if err != nil {
		return 0, err
	}

	dir, err := os.MkdirTemp("", "potval-hoomd-")
	if err != nil {
		return 0, err
	}
	if !h.KeepWork {
		defer os.RemoveAll(dir)
	}

	scriptPath := filepath.Join(dir, "case.py")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, h.Python, scriptPath)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrEngineNotFound, h.Python)
		}
		return 0, fmt.Errorf("%s %s: %w\n%s", h.Python, c.Label, err, outputTail(out, 10))
	}

	e, err := scanEnergy(bytes.NewReader(out))
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w\n%s", h.Python, c.Label, err, outputTail(out, 10))
	}
	return e, nil
}
