// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"sync"
	"sync/atomic"
)

// Options configures a Pool. Both fields are required; see [ConfigError].
type Options struct {
	// NumWorkers is the number of pinned worker goroutines to run.
	NumWorkers int

	// QueueCapacity is the requested number of slots per worker's ring
	// buffer. It is rounded up to the next power of two and clamped to at
	// least StealChunk+1. Use [Capacity] to compute the
	// value an (M,N,P) GEMM needs.
	QueueCapacity int
}

// Pool is an explicitly owned collection of pinned workers, each consuming
// its own ring buffer and cooperatively stealing from its neighbors. Create
// one with [NewPool] and release it with [Pool.Destroy] when done; a Pool is
// a process-wide resource in the original C program, but here it is scoped
// to whatever owns the value.
type Pool struct {
	queues []*ringBuffer

	nextQueue      atomic.Uint64
	tasksRemaining atomic.Int64
	shutdown       atomic.Bool

	doneMu  sync.Mutex
	allDone sync.Cond

	wg sync.WaitGroup
}

// NewPool creates and starts NumWorkers pinned workers, each owning a ring
// buffer sized from QueueCapacity. Returns a [ConfigError] and no pool on
// invalid configuration; it never partially constructs a pool.
func NewPool(opts Options) (*Pool, error) {
	if opts.NumWorkers <= 0 {
		return nil, &ConfigError{Field: "NumWorkers", Reason: "must be > 0"}
	}
	if opts.QueueCapacity <= 0 {
		return nil, &ConfigError{Field: "QueueCapacity", Reason: "must be > 0"}
	}

	p := &Pool{
		queues: make([]*ringBuffer, opts.NumWorkers),
	}
	p.allDone.L = &p.doneMu

	for i := range p.queues {
		p.queues[i] = newRingBuffer(opts.QueueCapacity)
	}

	p.wg.Add(opts.NumWorkers)
	for id := range p.queues {
		go p.runWorker(id)
	}

	return p, nil
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return len(p.queues)
}

// Submit round-robin assigns task to the next worker's queue
// and increments the outstanding-task counter. It is the caller's
// responsibility to have sized QueueCapacity so the current batch of
// submissions fits — Submit performs no backpressure and a full queue is a
// precondition failure, not a reported error.
func (p *Pool) Submit(task TileTask) {
	qid := int(p.nextQueue.Add(1)-1) % len(p.queues)
	p.tasksRemaining.Add(1)
	p.queues[qid].tryPush(task)
}

// Wait blocks until every task submitted so far has completed
// (tasksRemaining reaches zero). Only doneMu is held during the wait;
// workers acquire it only to broadcast on completion.
func (p *Pool) Wait() {
	p.doneMu.Lock()
	for p.tasksRemaining.Load() > 0 {
		p.allDone.Wait()
	}
	p.doneMu.Unlock()
}

// completeTask decrements the outstanding counter and, if it reaches zero,
// wakes any submitter blocked in Wait. Called by a worker immediately after
// running the Tile Kernel, so the decrement happens-after the kernel's
// writes to C in program order, and Wait's acquire load of tasksRemaining
// pairs with this release decrement to make those writes visible to the
// caller on return.
func (p *Pool) completeTask() {
	if p.tasksRemaining.Add(-1) == 0 {
		p.doneMu.Lock()
		p.allDone.Broadcast()
		p.doneMu.Unlock()
	}
}

// Destroy sets the shutdown flag, wakes each queue once so a blocked worker
// observes it, and joins all worker goroutines. Tasks still sitting in a
// queue when Destroy is called are silently dropped — callers must Wait
// before Destroy. Destroying an empty or already-drained pool
// is safe.
func (p *Pool) Destroy() {
	p.shutdown.Store(true)
	for _, q := range p.queues {
		q.wake()
	}
	p.wg.Wait()
}
