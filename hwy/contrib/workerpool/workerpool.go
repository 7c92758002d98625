// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// row-parallel image kernels. A Pool is created once and reused across frames,
// so a tight per-frame loop pays no goroutine spawn or channel allocation cost.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, frame := range frames {
//	    // Bayer kernels work on pairs of rows: never split a 2x2 block.
//	    pool.ParallelRows(2, frame.Height()-2, 2, func(y0, y1 int) {
//	        demosaicRows(frame, out, y0, y1)
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	tasks      chan task

	// mu is held for reading while a loop queues its chunks and for writing
	// while Close closes tasks, so no send races the close.
	mu     sync.RWMutex
	closed bool
}

// task is one chunk of a parallel loop.
type task struct {
	run  func()
	done *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for t := range p.tasks {
		t.run()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. Pending work completes first.
// Calling Close multiple times is safe, also concurrently with running loops;
// a closed pool runs loops inline.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
}

// ParallelFor executes fn over [0, n) split into at most NumWorkers
// contiguous chunks. Blocks until all chunks complete.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.ParallelRows(0, n, 1, fn)
}

// ParallelRows executes fn over the row range [first, last) split into
// contiguous chunks whose boundaries fall on first + k*step. Each chunk covers
// whole groups of step rows, so a kernel that writes row pairs (Bayer blocks)
// never sees a block split between two workers. The last chunk ends at last.
// Blocks until all chunks complete.
func (p *Pool) ParallelRows(first, last, step int, fn func(y0, y1 int)) {
	if last <= first {
		return
	}
	if step <= 0 {
		step = 1
	}

	groups := (last - first + step - 1) / step
	workers := min(p.numWorkers, groups)
	if workers <= 1 {
		fn(first, last)
		return
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		fn(first, last)
		return
	}

	perWorker := (groups + workers - 1) / workers

	var wg sync.WaitGroup
	for i := range workers {
		y0 := first + i*perWorker*step
		if y0 >= last {
			break
		}
		y1 := min(y0+perWorker*step, last)

		wg.Add(1)
		p.tasks <- task{
			run:  func() { fn(y0, y1) },
			done: &wg,
		}
	}
	p.mu.RUnlock()
	wg.Wait()
}
