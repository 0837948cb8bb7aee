package sqlite

import (
	"context"
	"database/sql"

	"rcjobs/internal/adapters/jobrecord"
	"rcjobs/internal/domain"
)

// jobTx wraps a transaction with the job statements
type jobTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (s *Store) withTx(ctx context.Context, fn func(*jobTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&jobTx{ctx: ctx, tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// upsert inserts a job at the end of the list or replaces it in place
func (t *jobTx) upsert(job domain.Job) error {
	data, err := jobrecord.Marshal(job)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(t.ctx, `
		INSERT INTO jobs (id, position, name, data)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM jobs), ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data
	`, job.ID, job.Name, string(data))
	return err
}

// delete removes a job by ID
func (t *jobTx) delete(id string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}
