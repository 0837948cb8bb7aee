package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"rcjobs/internal/adapters/jobrecord"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.JobStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements JobStore
var _ ports.JobStore = (*Store)(nil)

// Open opens (creating if needed) the job database at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single writer keeps concurrent run updates serialized
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			data TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_position ON jobs(position);
		CREATE INDEX IF NOT EXISTS idx_jobs_name ON jobs(name);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) checkSchema() error {
	var version string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("job store %s has schema version %s, expected %s", s.dbPath, version, schemaVersion)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// List returns every job ordered by insertion
func (s *Store) List(ctx context.Context) ([]domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM jobs ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		job, err := jobrecord.Unmarshal([]byte(data))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Get retrieves a job by ID
func (s *Store) Get(ctx context.Context, id string) (*domain.Job, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM jobs WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	job, err := jobrecord.Unmarshal([]byte(data))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Save inserts or replaces a job
func (s *Store) Save(ctx context.Context, job domain.Job) error {
	return s.SaveAll(ctx, []domain.Job{job})
}

// SaveAll saves jobs in one transaction
func (s *Store) SaveAll(ctx context.Context, jobs []domain.Job) error {
	return s.withTx(ctx, func(tx *jobTx) error {
		for _, job := range jobs {
			if err := tx.upsert(job); err != nil {
				return fmt.Errorf("failed to save job %s: %w", job.ID, err)
			}
		}
		return nil
	})
}

// Delete removes a job by ID
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *jobTx) error {
		return tx.delete(id)
	})
}
