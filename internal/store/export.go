package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"
)

// ExportEntry is the JSON shape of one exported job.
type ExportEntry struct {
	ID         string     `json:"id"`
	Statepoint Statepoint `json:"statepoint"`
	Document   Document   `json:"document"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ExportJSON writes every job to w as an indented JSON array.
func (s *Store) ExportJSON(w io.Writer) error {
	jobs, err := s.List()
	if err != nil {
		return err
	}

	entries := make([]ExportEntry, len(jobs))
	for i, j := range jobs {
		entries[i] = ExportEntry{
			ID:         j.ID,
			Statepoint: j.Statepoint,
			Document:   j.Document,
			UpdatedAt:  j.UpdatedAt,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// ExportJSONStdout is ExportJSON to standard output.
func (s *Store) ExportJSONStdout() error {
	return s.ExportJSON(os.Stdout)
}

// ExportRunsCSV writes every recorded run value to w as CSV, one row per
// energy evaluation. jobID filters to one job when non-empty.
func (s *Store) ExportRunsCSV(w io.Writer, jobID string) error {
	runs, err := s.ListRuns(jobID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "job_id", "engine", "case", "value", "created_at"}); err != nil {
		return err
	}
	for _, r := range runs {
		row := []string{
			r.ID,
			r.JobID,
			r.Engine,
			r.CaseLabel,
			strconv.FormatFloat(r.Value, 'g', -1, 64),
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
