// Copyright 2025 The gemmflux Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for parallel
// computation. A Pool is created once and reused across many operations, so
// no goroutine is spawned per call.
//
// Work is statically partitioned: [0, n) is split into contiguous ranges, as
// even as possible, one per worker. The assignment of ranges to units depends
// only on n and the worker count.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.Run(numRowBlocks, func(r workerpool.Range) error {
//	    return processRowBlocks(r.Start, r.End)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// State of a Pool's dispatch/join protocol.
type State int32

const (
	// Idle means no work has been dispatched yet.
	Idle State = iota

	// Dispatched means units are running on workers.
	Dispatched

	// Joined means every unit of the last dispatch has completed. The pool
	// stays Joined until the next dispatch.
	Joined
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dispatched:
		return "dispatched"
	case Joined:
		return "joined"
	default:
		return "unknown"
	}
}

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
//
// State is tracked for one dispatch at a time: callers that need it to be
// meaningful must not call Run concurrently on the same Pool.
type Pool struct {
	numWorkers int
	workC      chan workItem

	// mu is held for reading by every dispatch and for writing by Close, so
	// the work channel is never closed under an in-flight Run.
	mu     sync.RWMutex
	closed bool
	state  atomic.Int32
}

// workItem represents a single unit of a parallel operation.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
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
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}
	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// State returns the dispatch state of the pool.
func (p *Pool) State() State {
	return State(p.state.Load())
}

// Close shuts down the worker pool. It waits for dispatches in flight on
// other goroutines to join. Calling Close multiple times is safe. A closed
// pool runs work sequentially on the caller's goroutine.
//
// Close must not be called from inside a unit of work of the same pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workC)
}

// Run statically partitions [0, n) into at most NumWorkers contiguous
// ranges and runs fn once per range, one range per worker. It blocks until
// every unit has finished, including after a unit fails.
//
// A panic inside fn is recovered and reported as an error for that unit.
// Run returns the first error observed; ranges whose fn succeeded remain
// fully processed.
func (p *Pool) Run(n int, fn func(r Range) error) error {
	if n <= 0 {
		return nil
	}
	ranges := Partition(n, p.numWorkers)

	var (
		errMu    sync.Mutex
		firstErr error
	)
	runAndRecord := func(r Range) {
		if err := runUnit(fn, r); err != nil {
			errMu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMu.Unlock()
		}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	p.state.Store(int32(Dispatched))
	if p.closed || len(ranges) == 1 {
		// Fallback to sequential if pool is closed or there is one unit.
		for _, r := range ranges {
			runAndRecord(r)
		}
	} else {
		var wg sync.WaitGroup
		wg.Add(len(ranges))
		for _, r := range ranges {
			p.workC <- workItem{
				fn:      func() { runAndRecord(r) },
				barrier: &wg,
			}
		}
		wg.Wait()
	}
	p.state.Store(int32(Joined))
	return firstErr
}

// RunSequential runs fn once over [0, n) on the calling goroutine, with the
// same panic recovery as a pool worker. It returns nil when n <= 0.
func RunSequential(n int, fn func(r Range) error) error {
	if n <= 0 {
		return nil
	}
	return runUnit(fn, Range{Start: 0, End: n})
}

// runUnit calls fn and converts a panic into an error.
func runUnit(fn func(r Range) error, r Range) (err error) {
	exception := exceptions.Try(func() {
		err = fn(r)
	})
	if exception == nil {
		return err
	}
	if e, ok := exception.(error); ok {
		return errors.Wrapf(e, "worker panicked on range [%d, %d)", r.Start, r.End)
	}
	return errors.Errorf("worker panicked on range [%d, %d): %v", r.Start, r.End, exception)
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
// A panic in fn is re-raised on the caller's goroutine after all workers
// have finished.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	err := p.Run(n, func(r Range) error {
		fn(r.Start, r.End)
		return nil
	})
	if err != nil {
		panic(err)
	}
}
