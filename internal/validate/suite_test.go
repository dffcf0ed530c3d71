package validate

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/potval/internal/config"
	"github.com/san-kum/potval/internal/engine"
	"github.com/san-kum/potval/internal/store"
)

// offsetEngine wraps the reference values with a constant offset, standing
// in for an external engine in tests.
type offsetEngine struct {
	name   string
	offset float64
	ref    *engine.Reference
}

func (o *offsetEngine) Name() string { return o.name }

func (o *offsetEngine) Detect(ctx context.Context) (string, error) {
	return "test", nil
}

func (o *offsetEngine) Energy(ctx context.Context, c engine.Case) (float64, error) {
	v, err := o.ref.Energy(ctx, c)
	return v + o.offset, err
}

// downEngine always fails detection.
type downEngine struct{}

func (downEngine) Name() string { return "down" }
func (downEngine) Detect(ctx context.Context) (string, error) {
	return "", engine.ErrEngineNotFound
}
func (downEngine) Energy(ctx context.Context, c engine.Case) (float64, error) {
	return 0, engine.ErrEngineNotFound
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCases(t *testing.T) {
	cfg := config.DefaultConfig()
	cases := Cases(cfg)

	if len(cases) != 4 {
		t.Fatalf("expected 4 cases, got %d", len(cases))
	}
	if cases[0].Label != "two_particle_0" || cases[1].Label != "two_particle_1" {
		t.Errorf("unexpected pairwise labels %q %q", cases[0].Label, cases[1].Label)
	}
	if cases[2].Label != CaseLJSlab || cases[3].Label != CaseWCASlab {
		t.Errorf("unexpected slab labels %q %q", cases[2].Label, cases[3].Label)
	}
	if n := len(cases[2].Config.Positions); n != 50 {
		t.Errorf("slab has %d particles, want 50", n)
	}
	if cases[3].Potential != "wca" {
		t.Errorf("last case potential = %q", cases[3].Potential)
	}
}

func TestSuiteRunStoresDocuments(t *testing.T) {
	cfg := config.DefaultConfig()
	st := testStore(t)

	s := NewWithEngines(cfg, st,
		engine.NewReference(),
		&offsetEngine{name: "fake", ref: engine.NewReference()},
	)

	res, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.Engines) != 2 {
		t.Fatalf("expected 2 engine results, got %d", len(res.Engines))
	}

	ref := res.Reference()
	if ref == nil || ref.Skipped {
		t.Fatal("reference result missing or skipped")
	}
	if !ref.Complete(res.Cases) {
		t.Error("reference did not complete all cases")
	}

	// both engines upserted a job keyed by their package
	jobs, err := st.List()
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	for _, j := range jobs {
		if j.Statepoint.RCut != cfg.RCut {
			t.Errorf("job %s rcut = %g, want %g", j.ID, j.Statepoint.RCut, cfg.RCut)
		}
	}

	// run audit rows: 2 engines x 4 cases
	runs, err := st.ListRuns("")
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 8 {
		t.Errorf("expected 8 run rows, got %d", len(runs))
	}
}

func TestSuiteDocumentShape(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewWithEngines(cfg, nil, engine.NewReference())

	res, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	ref := res.Reference()
	doc := ref.Document

	// separation 1.0 sits exactly at sigma, so the LJ energy is zero
	if math.Abs(doc.TwoParticleEnergies[0]) > 1e-12 {
		t.Errorf("two_particle_energies[0] = %g, want 0", doc.TwoParticleEnergies[0])
	}
	// r=1.5 is in the attractive well
	if doc.TwoParticleEnergies[1] >= 0 {
		t.Errorf("two_particle_energies[1] = %g, want negative", doc.TwoParticleEnergies[1])
	}
	// spacing 1.5 puts nearest neighbors in the well: attractive bulk
	if doc.LJSlabEnergy >= 0 {
		t.Errorf("lj_slab_energy = %g, want negative", doc.LJSlabEnergy)
	}
	// all slab pairs sit beyond the WCA core at spacing 1.5
	if doc.WCASlabEnergy != 0 {
		t.Errorf("wca_slab_energy = %g, want 0", doc.WCASlabEnergy)
	}
}

func TestSuiteSkipsUnavailableEngine(t *testing.T) {
	cfg := config.DefaultConfig()
	st := testStore(t)
	s := NewWithEngines(cfg, st, engine.NewReference(), downEngine{})

	var sawSkip bool
	res, err := s.Run(context.Background(), func(ev Event) {
		if ev.Engine == "down" && ev.Skipped {
			sawSkip = true
		}
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !sawSkip {
		t.Error("no skip event for unavailable engine")
	}

	var down *EngineResult
	for i := range res.Engines {
		if res.Engines[i].Engine == "down" {
			down = &res.Engines[i]
		}
	}
	if down == nil || !down.Skipped {
		t.Fatal("down engine not marked skipped")
	}
	if !errors.Is(down.Err, engine.ErrEngineNotFound) {
		t.Errorf("skip reason = %v", down.Err)
	}

	// skipped engine leaves no job behind
	jobs, _ := st.List()
	if len(jobs) != 1 {
		t.Errorf("expected only the reference job, got %d", len(jobs))
	}
}

func TestSuiteProgressEvents(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewWithEngines(cfg, nil, engine.NewReference())

	var detects, values int
	_, err := s.Run(context.Background(), func(ev Event) {
		if ev.Case == "" {
			detects++
		} else {
			values++
		}
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if detects != 1 || values != 4 {
		t.Errorf("events: %d detects, %d values; want 1 and 4", detects, values)
	}
}

func TestSuiteContextCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewWithEngines(cfg, nil, engine.NewReference())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewRejectsUnknownEngine(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engines.Enabled = []string{"gromacs"}

	if _, err := New(cfg, nil); err == nil {
		t.Error("expected error for unknown engine name")
	}
}

func TestNewBuildsEnabledEngines(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if len(s.engines) != 3 {
		t.Errorf("expected reference+lammps+hoomd, got %d engines", len(s.engines))
	}
	if s.engines[0].Name() != "reference" {
		t.Errorf("first engine = %q, want reference", s.engines[0].Name())
	}
}
