// Package validate runs the cross-engine validation suite: every case is
// evaluated by the reference formula and by each enabled external engine,
// results land in the job store, and deviations are checked against a
// tolerance.
package validate

import (
	"context"
	"fmt"

	"github.com/san-kum/potval/internal/config"
	"github.com/san-kum/potval/internal/engine"
	"github.com/san-kum/potval/internal/potential"
	"github.com/san-kum/potval/internal/store"
	"github.com/san-kum/potval/internal/system"
)

const (
	CaseLJSlab  = "lj_slab"
	CaseWCASlab = "wca_slab"
)

// TwoParticleLabel names the i-th pairwise check case.
func TwoParticleLabel(i int) string {
	return fmt.Sprintf("two_particle_%d", i)
}

// Cases expands a config into the concrete case list: one LJ two-particle
// case per separation, then an LJ slab and a WCA slab over the same grid.
func Cases(cfg *config.Config) []engine.Case {
	p := potential.Params{Epsilon: cfg.Epsilon, Sigma: cfg.Sigma}

	cases := make([]engine.Case, 0, len(cfg.Separations)+2)
	for i, r := range cfg.Separations {
		cases = append(cases, engine.Case{
			Label:     TwoParticleLabel(i),
			Config:    system.TwoParticle(r),
			Potential: "lj",
			Params:    p,
			RCut:      cfg.RCut,
		})
	}

	slab := system.Slab(cfg.Slab.NX, cfg.Slab.NY, cfg.Slab.NZ, cfg.Slab.Spacing)
	cases = append(cases,
		engine.Case{Label: CaseLJSlab, Config: slab, Potential: "lj", Params: p, RCut: cfg.RCut},
		engine.Case{Label: CaseWCASlab, Config: slab, Potential: "wca", Params: p, RCut: cfg.RCut},
	)
	return cases
}

// Event reports suite progress, one per engine detection and one per
// computed value.
type Event struct {
	Engine  string
	Case    string // empty for detection events
	Version string
	Value   float64
	Err     error
	Skipped bool
}

// EngineResult collects everything one engine produced for the suite.
type EngineResult struct {
	Engine     string
	Version    string
	Skipped    bool
	Err        error // detection failure when Skipped
	Values     map[string]float64
	Errors     map[string]error
	Statepoint store.Statepoint
	Document   store.Document
	JobID      string
}

// Complete reports whether every case produced a value.
func (er *EngineResult) Complete(cases []engine.Case) bool {
	if er.Skipped {
		return false
	}
	for _, c := range cases {
		if _, ok := er.Values[c.Label]; !ok {
			return false
		}
	}
	return true
}

type Result struct {
	Cases   []engine.Case
	Engines []EngineResult
}

// Reference returns the baseline result. The reference engine always runs
// first, but look it up by name to be safe.
func (r *Result) Reference() *EngineResult {
	for i := range r.Engines {
		if r.Engines[i].Engine == "reference" {
			return &r.Engines[i]
		}
	}
	return nil
}

type Suite struct {
	cfg     *config.Config
	engines []engine.Engine
	st      *store.Store // nil disables persistence
}

// New builds a suite from config: the reference engine plus each enabled
// external engine.
func New(cfg *config.Config, st *store.Store) (*Suite, error) {
	engines := []engine.Engine{engine.NewReference()}
	for _, name := range cfg.Engines.Enabled {
		switch name {
		case "reference":
			// implied, already first
		case "lammps":
			l := engine.NewLAMMPS(cfg.Engines.LAMMPS.Binary)
			l.KeepWork = cfg.Engines.KeepWork
			engines = append(engines, l)
		case "hoomd":
			h := engine.NewHOOMD(cfg.Engines.HOOMD.Python)
			h.KeepWork = cfg.Engines.KeepWork
			engines = append(engines, h)
		default:
			return nil, fmt.Errorf("unknown engine: %s", name)
		}
	}
	return &Suite{cfg: cfg, engines: engines, st: st}, nil
}

// NewWithEngines bypasses config-based engine construction. Used by the CLI
// for engine subsets and by tests for stub engines.
func NewWithEngines(cfg *config.Config, st *store.Store, engines ...engine.Engine) *Suite {
	return &Suite{cfg: cfg, engines: engines, st: st}
}

func (s *Suite) Config() *config.Config { return s.cfg }

// Run evaluates every case on every engine, sequentially. Engines that fail
// detection are skipped. A per-case failure is recorded, not fatal; only a
// cancelled context or a store failure aborts the run.
func (s *Suite) Run(ctx context.Context, progress func(Event)) (*Result, error) {
	res := &Result{Cases: Cases(s.cfg)}

	for _, eng := range s.engines {
		er := EngineResult{
			Engine: eng.Name(),
			Values: make(map[string]float64),
			Errors: make(map[string]error),
		}

		version, err := eng.Detect(ctx)
		if err != nil {
			er.Skipped = true
			er.Err = err
			emit(progress, Event{Engine: er.Engine, Err: err, Skipped: true})
			res.Engines = append(res.Engines, er)
			continue
		}
		er.Version = version
		emit(progress, Event{Engine: er.Engine, Version: version})

		for _, c := range res.Cases {
			select {
			case <-ctx.Done():
				res.Engines = append(res.Engines, er)
				return res, ctx.Err()
			default:
			}

			v, err := eng.Energy(ctx, c)
			if err != nil {
				er.Errors[c.Label] = err
			} else {
				er.Values[c.Label] = v
			}
			emit(progress, Event{Engine: er.Engine, Case: c.Label, Value: v, Err: err})
		}

		er.Statepoint = store.Statepoint{
			Package: er.Engine,
			Version: version,
			RCut:    s.cfg.RCut,
		}
		er.Document = documentFrom(er.Values)
		er.JobID = er.Statepoint.JobID()

		if s.st != nil {
			if err := s.persist(&er, res.Cases); err != nil {
				res.Engines = append(res.Engines, er)
				return res, err
			}
		}
		res.Engines = append(res.Engines, er)
	}

	return res, nil
}

// persist upserts the document when the engine completed every case, and
// always records the individual values it did produce.
func (s *Suite) persist(er *EngineResult, cases []engine.Case) error {
	if er.Complete(cases) {
		if _, err := s.st.Upsert(er.Statepoint, er.Document); err != nil {
			return fmt.Errorf("storing %s document: %w", er.Engine, err)
		}
	}
	for _, c := range cases {
		v, ok := er.Values[c.Label]
		if !ok {
			continue
		}
		if _, err := s.st.SaveRun(er.JobID, er.Engine, c.Label, v); err != nil {
			return fmt.Errorf("recording %s %s: %w", er.Engine, c.Label, err)
		}
	}
	return nil
}

// documentFrom maps case values into the fixed document shape. Only the
// first two separations feed two_particle_energies.
func documentFrom(values map[string]float64) store.Document {
	var doc store.Document
	doc.TwoParticleEnergies[0] = values[TwoParticleLabel(0)]
	doc.TwoParticleEnergies[1] = values[TwoParticleLabel(1)]
	doc.LJSlabEnergy = values[CaseLJSlab]
	doc.WCASlabEnergy = values[CaseWCASlab]
	return doc
}

func emit(progress func(Event), ev Event) {
	if progress != nil {
		progress(ev)
	}
}
