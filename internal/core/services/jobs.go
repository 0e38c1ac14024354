package services

import (
	"fmt"

	"github.com/panjf2000/ants/v2"

	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
)

// Ensure JobPool implements the interface.
var _ driving.JobRunner = (*JobPool)(nil)

// JobPool runs bulk ingestion jobs on a bounded goroutine pool so the
// server can accept a folder request and answer immediately with a task
// id. Files within one job stay sequential; the pool only bounds how
// many independent jobs run at once.
type JobPool struct {
	pool *ants.Pool
}

// NewJobPool creates a pool with the given number of workers.
func NewJobPool(workers int) (*JobPool, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create job pool: %w", err)
	}
	return &JobPool{pool: pool}, nil
}

// Submit schedules a job. It blocks only when the pool is saturated.
func (p *JobPool) Submit(job func()) error {
	if err := p.pool.Submit(job); err != nil {
		return fmt.Errorf("submit job: %w", err)
	}
	return nil
}

// Release drains the pool and stops accepting jobs.
func (p *JobPool) Release() {
	p.pool.Release()
}
