// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// cacheLinePad is sized to push the fields that follow it onto their own
// cache line, the same false-sharing guard the original C ring buffer gets
// from __attribute__((aligned(MEM_ALIGNMENT))). Go gives no per-field
// alignment control, so the padding idiom — an empty byte array between the
// hot fields — does the job instead.
type cacheLinePad [MemAlignment - 8]byte

// ringBuffer is a fixed-capacity, power-of-two-sized circular buffer of tile
// tasks with one producer cursor, one consumer cursor, and a counting
// semaphore that mirrors occupancy for blocking waits.
//
// There is exactly one producer per ring buffer (the dispatcher, round-robin
// assigning tasks of a single in-flight mm call), so tail is advanced with
// an atomic load followed by an atomic store, never a CAS. head is advanced
// by CAS in tryPopOwn (after re-checking head < tail), by atomic fetch-add in
// popOwnHead, and by CAS for a thief's batch claim; all operate on the same
// atomic variable, so the runtime serializes them into claims over disjoint
// slot ranges regardless of interleaving.
type ringBuffer struct {
	tasks []TileTask
	mask  uint64
	sem   *semaphore.Weighted

	_    cacheLinePad
	tail atomic.Uint64
	_    cacheLinePad
	head atomic.Uint64
	_    cacheLinePad
}

// nextPow2 rounds n up to the next power of two (n=0 rounds to 1).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// newRingBuffer allocates a ring buffer whose capacity is always a power of
// two, at least max(capacity, StealChunk+1).
func newRingBuffer(capacity int) *ringBuffer {
	if capacity < StealChunk+1 {
		capacity = StealChunk + 1
	}
	capacity = nextPow2(capacity)

	sem := semaphore.NewWeighted(int64(capacity))
	// Weighted starts with its full weight available (0 acquired), the
	// opposite polarity of the counting semaphore we need: an empty ring
	// buffer must have zero permits to acquire. Claim the whole weight up
	// front so every subsequent tryPush's Release grants exactly one
	// permit and an empty buffer blocks Acquire/TryAcquire as required.
	// This always succeeds against a freshly constructed semaphore.
	if !sem.TryAcquire(int64(capacity)) {
		panic("gemm: could not prime fresh ring buffer semaphore")
	}

	return &ringBuffer{
		tasks: make([]TileTask, capacity),
		mask:  uint64(capacity - 1),
		sem:   sem,
	}
}

func (r *ringBuffer) capacity() int {
	return len(r.tasks)
}

// tryPush is the dispatcher's non-blocking publish: claim the next tail
// slot, write the task, then signal the semaphore. Overflowing capacity
// (tail-head > capacity) is a programmer error; the driver is responsible
// for sizing capacity so this never happens in practice.
func (r *ringBuffer) tryPush(task TileTask) {
	tail := r.tail.Load()
	r.tasks[tail&r.mask] = task
	r.tail.Store(tail + 1)
	r.sem.Release(1)
}

// tryPopOwn is the owning worker's fast path: a non-blocking semaphore
// decrement: on success, re-check that head < tail (the permit may be a
// shutdown wake or an over-count left by a thief), then advance head by CAS
// and read the claimed slot.
func (r *ringBuffer) tryPopOwn() (TileTask, bool) {
	if !r.sem.TryAcquire(1) {
		return TileTask{}, false
	}
	for {
		head := r.head.Load()
		if head >= r.tail.Load() {
			return TileTask{}, false
		}
		if r.head.CompareAndSwap(head, head+1) {
			return r.tasks[head&r.mask], true
		}
	}
}

// blockAcquire blocks the owning worker on the semaphore until a task is
// available or destroy wakes it for shutdown. The caller must check the
// pool's shutdown flag after this returns and, if clear, call popOwnHead to
// claim the slot — split into two steps so the ring buffer stays unaware of
// pool-level shutdown state.
func (r *ringBuffer) blockAcquire(ctx context.Context) error {
	return r.sem.Acquire(ctx, 1)
}

// popOwnHead claims the next head slot after a successful blockAcquire. It
// must only be called by the owning worker, immediately after blockAcquire
// returns with a task actually pending (i.e. shutdown was not the reason for
// waking).
func (r *ringBuffer) popOwnHead() TileTask {
	idx := r.head.Add(1) - 1
	return r.tasks[idx&r.mask]
}

// wake releases one permit without a corresponding task, used by pool
// destruction to unblock a worker sleeping in blockAcquire so it can observe
// shutdown.
func (r *ringBuffer) wake() {
	r.sem.Release(1)
}

// tryStealBatch attempts to claim StealChunk tasks from this (foreign)
// queue. buf must have length >= StealChunk. Returns the number stolen: 0 or
// StealChunk, never a partial batch.
func (r *ringBuffer) tryStealBatch(buf []TileTask) int {
	head := r.head.Load()
	tail := r.tail.Load()

	available := tail - head
	if available <= StealChunk {
		return 0
	}

	newHead := head + StealChunk
	if !r.head.CompareAndSwap(head, newHead) {
		return 0
	}

	for k := uint64(0); k < StealChunk; k++ {
		buf[k] = r.tasks[(head+k)&r.mask]
		// Best-effort: the owner may have already drained some of these via
		// tryPopOwn/blockAcquire between our loads above and this decrement
		// and failed sem.TryAcquire calls here are expected and harmless —
		// the semaphore is only ever an upper bound on live tasks for a
		// sleeper, never an under-count.
		r.sem.TryAcquire(1)
	}

	return StealChunk
}
