// Package active implements a single-worker task-serialization engine. Any
// number of goroutines may submit blocking work; one dedicated worker runs the
// tasks strictly one at a time, which is what makes the shared transport
// resources safe to use behind concurrent, synchronous-looking calls.
package active

import (
	"errors"
	"sync"
)

// ErrEngineClosed is returned by Submit once Shutdown has begun.
var ErrEngineClosed = errors.New("active: engine closed")

// Task is one unit of serialized work: typically a single request execution
// returning the raw response buffer.
type Task func() ([]byte, error)

// Future is the completion slot for one submitted task.
type Future struct {
	done chan struct{}
	body []byte
	err  error
}

// Wait blocks until the worker has run the task and returns its result.
// It is safe to call Wait from multiple goroutines.
func (f *Future) Wait() ([]byte, error) {
	<-f.done
	return f.body, f.err
}

type job struct {
	run Task
	fut *Future
}

// Engine owns the worker goroutine and the FIFO queue feeding it. Tasks run
// in queue order; there is no fairness guarantee between submitters beyond
// that, and no cancellation once a task is accepted.
type Engine struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan job
	wg     sync.WaitGroup
}

// New starts an engine with a running worker.
func New() *Engine {
	e := &Engine{tasks: make(chan job, 64)}
	e.wg.Add(1)
	go e.work()
	return e
}

// Submit queues a task and returns its future immediately. Callers block only
// when they choose to Wait. After Shutdown has begun, Submit fails with
// ErrEngineClosed instead of blocking forever.
func (e *Engine) Submit(t Task) (*Future, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	fut := &Future{done: make(chan struct{})}
	e.tasks <- job{run: t, fut: fut}
	return fut, nil
}

// Shutdown stops intake, lets the worker drain every queued task, and joins
// it. Safe to call more than once.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.tasks)
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Engine) work() {
	defer e.wg.Done()

	for j := range e.tasks {
		j.fut.body, j.fut.err = j.run()
		close(j.fut.done)
	}
}
