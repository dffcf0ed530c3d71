// Package report renders validation results for the terminal: the
// comparison table, job listings, and ascii potential curves.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/potval/internal/store"
	"github.com/san-kum/potval/internal/validate"
)

// WriteComparison renders the reference-vs-engines table plus a summary line.
func WriteComparison(w io.Writer, cmp *validate.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tENGINE\tREFERENCE\tVALUE\tABS DEV\tSTATUS")
	for _, r := range cmp.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%.10f\t%.10f\t%.2e\t%s\n",
			r.Case, r.Engine, r.Reference, r.Value, r.AbsDev, statusText(r.OK))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range cmp.Skipped {
		fmt.Fprintf(w, "%s\n", skipStyle.Render(fmt.Sprintf("skipped %s (not available)", name)))
	}
	for _, f := range cmp.Failures {
		fmt.Fprintf(w, "%s\n", failStyle.Render(fmt.Sprintf("%s/%s: %v", f.Engine, f.Case, f.Err)))
	}

	if len(cmp.Rows) > 0 {
		fmt.Fprintf(w, "\n%s max %.2e  mean %.2e  tolerance %.0e\n",
			labelStyle.Render("deviation:"), cmp.MaxDev, cmp.MeanDev, cmp.Tolerance)
	}

	verdict := statusText(cmp.Pass())
	if cmp.Pass() && len(cmp.Rows) == 0 {
		verdict = skipStyle.Render("nothing compared")
	}
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("result:"), verdict)
	return nil
}

// WriteEngines renders detection results from the engines command.
func WriteEngines(w io.Writer, rows []EngineStatus) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tSTATUS\tVERSION")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%v\n", r.Name, failStyle.Render("unavailable"), r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, passStyle.Render("available"), r.Version)
	}
	return tw.Flush()
}

type EngineStatus struct {
	Name    string
	Version string
	Err     error
}

// WriteJobs renders the stored jobs as a table.
func WriteJobs(w io.Writer, jobs []store.Job) error {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "no jobs found")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPACKAGE\tVERSION\tRCUT\tLJ SLAB\tWCA SLAB\tUPDATED")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%.6f\t%.6f\t%s\n",
			shortID(j.ID),
			j.Statepoint.Package,
			j.Statepoint.Version,
			j.Statepoint.RCut,
			j.Document.LJSlabEnergy,
			j.Document.WCASlabEnergy,
			j.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.Flush()
}

// WriteRuns renders the audit rows.
func WriteRuns(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs found")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tJOB\tENGINE\tCASE\tVALUE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.10f\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			shortID(r.JobID), r.Engine, r.CaseLabel, r.Value)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// Banner is the one-line suite header printed before a run.
func Banner(engines []string, rcut, tolerance float64) string {
	return headerStyle.Render("potval") + labelStyle.Render(
		fmt.Sprintf("  engines=%s rcut=%.3f tolerance=%.0e",
			strings.Join(engines, ","), rcut, tolerance))
}
