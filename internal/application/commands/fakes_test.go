package commands

import (
	"context"
	"errors"
	"sync"

	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

type memStore struct {
	mu    sync.Mutex
	order []string
	jobs  map[string]domain.Job
	saves int
}

func newMemStore(jobs ...domain.Job) *memStore {
	s := &memStore{jobs: make(map[string]domain.Job)}
	for _, j := range jobs {
		s.put(j)
	}
	return s
}

func (s *memStore) put(job domain.Job) {
	if _, ok := s.jobs[job.ID]; !ok {
		s.order = append(s.order, job.ID)
	}
	s.jobs[job.ID] = job.Clone()
}

func (s *memStore) List(ctx context.Context) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]domain.Job, 0, len(s.order))
	for _, id := range s.order {
		jobs = append(jobs, s.jobs[id].Clone())
	}
	return jobs, nil
}

func (s *memStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	job = job.Clone()
	return &job, nil
}

func (s *memStore) Save(ctx context.Context, job domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.put(job)
	return nil
}

func (s *memStore) SaveAll(ctx context.Context, jobs []domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range jobs {
		s.put(j)
	}
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) byName(name string) (domain.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.Name == name {
			return j, true
		}
	}
	return domain.Job{}, false
}

// fakeRunner answers with a fixed result per source path
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]ports.ExecResult
	calls   [][]string
	block   chan struct{}
}

var errNotStarted = errors.New("executable not found")

func (r *fakeRunner) Execute(ctx context.Context, args []string) (ports.ExecResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, args)
	res, ok := r.results[args[1]]
	r.mu.Unlock()

	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ports.ExecResult{ExitCode: -1}, ctx.Err()
		}
	}
	if ok && res.ExitCode < 0 {
		return res, errNotStarted
	}
	return res, nil
}

func (r *fakeRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func testJob(id, name, src, dst string) domain.Job {
	job := domain.NewJob(domain.OpCopy)
	job.ID = id
	job.Name = name
	job.Source = domain.LocalPath{Path: src}
	job.Destination = domain.RemotePath{Remote: "remote", Path: dst}
	return job
}
