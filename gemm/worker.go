// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"context"
	"runtime"
)

// runWorker is one worker's main loop: drain a previously stolen batch, pop
// from its own queue, spin-and-steal from neighbors, then block — looping
// until shutdown is observed at one of the documented check points.
//
// runtime.LockOSThread gives the worker a dedicated OS thread for its
// lifetime — the closest portable approximation of the original C program's
// pthread_setaffinity_np(i % N_CORES) pinning, since the Go runtime exposes
// no public CPU-affinity API.
func (p *Pool) runWorker(id int) {
	defer p.wg.Done()
	runtime.LockOSThread()

	self := p.queues[id]
	numWorkers := len(p.queues)

	var stealBuf [StealChunk]TileTask
	stealPos, stealN := 0, 0

	for {
		// DRAIN_LOCAL_STEAL: work through a previously stolen batch before
		// touching anything else.
		if stealPos < stealN {
			task := stealBuf[stealPos]
			stealPos++
			kernel(&task)
			p.completeTask()
			continue
		}

		// POP_OWN
		if task, ok := self.tryPopOwn(); ok {
			kernel(&task)
			p.completeTask()
			continue
		}

		// STEAL: spin for SpinLimit iterations, walking victims at
		// increasing offsets from self so workers don't all hammer the same
		// neighbor.
		stole := false
		for spin := 0; spin < SpinLimit; spin++ {
			for off := 1; off < numWorkers; off++ {
				victim := p.queues[(id+off)%numWorkers]
				if n := victim.tryStealBatch(stealBuf[:]); n > 0 {
					stealN, stealPos = n, 0
					stole = true
					break
				}
			}
			if stole {
				break
			}
			if p.shutdown.Load() {
				return
			}
			runtime.Gosched()
		}
		if stole {
			continue
		}

		// BLOCK: sleep on our own queue's semaphore.
		if err := self.blockAcquire(context.Background()); err != nil {
			return
		}
		if p.shutdown.Load() {
			return
		}

		task := self.popOwnHead()
		kernel(&task)
		p.completeTask()
	}
}
