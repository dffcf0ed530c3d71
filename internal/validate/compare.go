package validate

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Row is one reference-vs-engine check.
type Row struct {
	Case      string
	Engine    string
	Reference float64
	Value     float64
	AbsDev    float64
	OK        bool
}

// Failure is a case an engine could not evaluate at all.
type Failure struct {
	Case   string
	Engine string
	Err    error
}

type Comparison struct {
	Tolerance float64
	Rows      []Row
	Skipped   []string // engines that failed detection
	Failures  []Failure
	MaxDev    float64
	MeanDev   float64
}

// Pass reports whether every computed value agreed within tolerance and no
// case errored. Skipped engines do not fail the comparison.
func (c *Comparison) Pass() bool {
	if len(c.Failures) > 0 {
		return false
	}
	for _, r := range c.Rows {
		if !r.OK {
			return false
		}
	}
	return true
}

// Compare checks every non-reference engine against the reference values.
func Compare(res *Result, tolerance float64) *Comparison {
	cmp := &Comparison{Tolerance: tolerance}

	ref := res.Reference()
	if ref == nil {
		return cmp
	}

	var devs []float64
	for i := range res.Engines {
		er := &res.Engines[i]
		if er.Engine == "reference" {
			continue
		}
		if er.Skipped {
			cmp.Skipped = append(cmp.Skipped, er.Engine)
			continue
		}
		for _, c := range res.Cases {
			if err, ok := er.Errors[c.Label]; ok {
				cmp.Failures = append(cmp.Failures, Failure{Case: c.Label, Engine: er.Engine, Err: err})
				continue
			}
			v, ok := er.Values[c.Label]
			if !ok {
				continue
			}
			refV := ref.Values[c.Label]
			dev := math.Abs(v - refV)
			devs = append(devs, dev)
			cmp.Rows = append(cmp.Rows, Row{
				Case:      c.Label,
				Engine:    er.Engine,
				Reference: refV,
				Value:     v,
				AbsDev:    dev,
				OK:        dev <= tolerance,
			})
		}
	}

	if len(devs) > 0 {
		cmp.MaxDev = floats.Max(devs)
		cmp.MeanDev = stat.Mean(devs, nil)
	}
	return cmp
}
