package ecs

import (
	"golang.org/x/sync/errgroup"
)

// Pool runs batches of tasks on at most Threads goroutines at a time.
type Pool struct {
	threads int
}

func NewPool(threads int) *Pool {
	if threads < 1 {
		threads = 1
	}
	return &Pool{threads: threads}
}

func (p *Pool) Threads() int { return p.threads }

// Batch starts an empty task group bound to the pool's limit.
func (p *Pool) Batch() *Batch {
	b := &Batch{}
	b.g.SetLimit(p.threads)
	return b
}

// Batch is a group of tasks joined by Wait. Go blocks while the pool is at
// its limit.
type Batch struct {
	g errgroup.Group
}

func (b *Batch) Go(task func() error) {
	b.g.Go(task)
}

// Wait blocks until every task has returned and reports the first error.
func (b *Batch) Wait() error {
	return b.g.Wait()
}
