// Package store persists validation results in a job-keyed document store
// backed by SQLite. A job is one (engine package, version, rcut) statepoint;
// its document holds the energies computed for that statepoint. A separate
// runs table keeps an append-only audit of every individual value.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrJobNotFound = errors.New("job not found")

type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the store at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		statepoint TEXT NOT NULL,
		document TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		engine TEXT NOT NULL,
		case_label TEXT NOT NULL,
		value REAL NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Job pairs a statepoint with its document.
type Job struct {
	ID         string
	Statepoint Statepoint
	Document   Document
	UpdatedAt  time.Time
}

// Upsert writes the document for sp, replacing any previous one.
func (s *Store) Upsert(sp Statepoint, doc Document) (string, error) {
	spJSON, err := json.Marshal(sp)
	if err != nil {
		return "", err
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	id := sp.JobID()
	_, err = s.db.Exec(
		`INSERT INTO jobs (id, statepoint, document, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET document=excluded.document, updated_at=excluded.updated_at`,
		id, string(spJSON), string(docJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the document stored for sp, or ErrJobNotFound.
func (s *Store) Get(sp Statepoint) (*Document, error) {
	row := s.db.QueryRow(`SELECT document FROM jobs WHERE id = ?`, sp.JobID())
	var docJSON string
	if err := row.Scan(&docJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, sp.JobID())
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByID is Get keyed by the raw job id, for CLI lookups.
func (s *Store) GetByID(id string) (*Job, error) {
	row := s.db.QueryRow(
		`SELECT id, statepoint, document, updated_at FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
		}
		return nil, err
	}
	return job, nil
}

// List returns all jobs, most recently updated first.
func (s *Store) List() ([]Job, error) {
	rows, err := s.db.Query(
		`SELECT id, statepoint, document, updated_at FROM jobs ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// Delete removes the job for sp. Its run history is kept.
func (s *Store) Delete(sp Statepoint) error {
	res, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, sp.JobID())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotFound, sp.JobID())
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanJob(row scannable) (*Job, error) {
	var job Job
	var spJSON, docJSON, updated string
	if err := row.Scan(&job.ID, &spJSON, &docJSON, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(spJSON), &job.Statepoint); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(docJSON), &job.Document); err != nil {
		return nil, err
	}
	job.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &job, nil
}

// Run is one audit row: a single value computed by one engine for one case.
type Run struct {
	ID        string
	JobID     string
	Engine    string
	CaseLabel string
	Value     float64
	CreatedAt time.Time
}

func (s *Store) SaveRun(jobID, engine, caseLabel string, value float64) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, job_id, engine, case_label, value, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, jobID, engine, caseLabel, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns the audit rows, newest first, optionally filtered by job.
func (s *Store) ListRuns(jobID string) ([]Run, error) {
	q := `SELECT id, job_id, engine, case_label, value, created_at FROM runs`
	args := []any{}
	if jobID != "" {
		q += ` WHERE job_id = ?`
		args = append(args, jobID)
	}
	q += ` ORDER BY created_at DESC, id`

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.JobID, &r.Engine, &r.CaseLabel, &r.Value, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
