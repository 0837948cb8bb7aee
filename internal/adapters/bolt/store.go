// Package bolt stores jobs in a single bbolt file. Jobs live in a bucket
// keyed by insertion sequence so iteration yields list order; a second
// bucket maps job IDs to their sequence key.
package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"rcjobs/internal/adapters/jobrecord"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

var (
	jobsBucket  = []byte("jobs")
	indexBucket = []byte("job_ids")
)

// Store implements ports.JobStore using bbolt
type Store struct {
	db *bbolt.DB
}

var _ ports.JobStore = (*Store)(nil)

// Open opens the store, creating the file and buckets if needed. The
// timeout stops a second process from blocking forever on the file lock.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(jobsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(indexBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns every job in insertion order
func (s *Store) List(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(jobsBucket).ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			job, err := jobrecord.Unmarshal(v)
			if err != nil {
				return fmt.Errorf("corrupt job at key %x: %w", k, err)
			}
			jobs = append(jobs, job)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Get returns the job with the given ID, or nil
func (s *Store) Get(ctx context.Context, id string) (*domain.Job, error) {
	var job *domain.Job
	err := s.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket(indexBucket).Get([]byte(id))
		if key == nil {
			return nil
		}
		v := tx.Bucket(jobsBucket).Get(key)
		if v == nil {
			return nil
		}
		j, err := jobrecord.Unmarshal(v)
		if err != nil {
			return err
		}
		job = &j
		return nil
	})
	return job, err
}

// Save inserts or replaces a job
func (s *Store) Save(ctx context.Context, job domain.Job) error {
	return s.SaveAll(ctx, []domain.Job{job})
}

// SaveAll saves jobs in one transaction
func (s *Store) SaveAll(ctx context.Context, jobs []domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, job := range jobs {
			if err := put(tx, job); err != nil {
				return fmt.Errorf("failed to save job %s: %w", job.ID, err)
			}
		}
		return nil
	})
}

func put(tx *bbolt.Tx, job domain.Job) error {
	data, err := jobrecord.Marshal(job)
	if err != nil {
		return err
	}

	jobsB := tx.Bucket(jobsBucket)
	indexB := tx.Bucket(indexBucket)

	key := indexB.Get([]byte(job.ID))
	if key == nil {
		seq, err := jobsB.NextSequence()
		if err != nil {
			return err
		}
		key = seqKey(seq)
		if err := indexB.Put([]byte(job.ID), key); err != nil {
			return err
		}
	}
	return jobsB.Put(key, data)
}

// Delete removes a job by ID
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		indexB := tx.Bucket(indexBucket)
		key := indexB.Get([]byte(id))
		if key == nil {
			return nil
		}
		// key is only valid inside the transaction; copy before deleting
		key = append([]byte(nil), key...)
		if err := tx.Bucket(jobsBucket).Delete(key); err != nil {
			return err
		}
		return indexB.Delete([]byte(id))
	})
}

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
