// Package parallel runs rasterizer units on a fixed set of pinned threads.
//
// Task i of a dispatch always runs on thread i % Threads(), so a unit
// keeps its OS thread, and that thread's caches, from frame to frame.
// Tasks that share a thread run in dispatch order.
package parallel

import (
	"runtime"
	"sync"
)

// threadQueueSize is the number of tasks a thread buffers before
// Dispatch blocks.
const threadQueueSize = 4

// Pool owns a fixed set of pinned worker threads.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu      sync.RWMutex
	closed  bool
	threads []chan task
	exited  sync.WaitGroup
}

type task struct {
	fn   func()
	join *Join
}

// Join is the completion barrier of one Dispatch.
type Join struct {
	pending sync.WaitGroup
}

// Wait blocks until every task of the dispatch has run.
// A nil Join is already complete.
func (j *Join) Wait() {
	if j == nil {
		return
	}
	j.pending.Wait()
}

// NewPool starts n threads. If n is 0 or negative, GOMAXPROCS is used.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	p := &Pool{threads: make([]chan task, n)}
	p.exited.Add(n)
	for i := range p.threads {
		p.threads[i] = make(chan task, threadQueueSize)
		go p.run(p.threads[i])
	}
	return p
}

// run is the loop of one thread. It returns once its queue is closed and
// drained.
func (p *Pool) run(tasks <-chan task) {
	defer p.exited.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for t := range tasks {
		t.fn()
		t.join.pending.Done()
	}
}

// Dispatch queues tasks and returns without waiting for them.
// It blocks only while a thread's queue is full. On a closed pool the
// tasks are dropped and the returned Join is already complete.
func (p *Pool) Dispatch(tasks []func()) *Join {
	j := &Join{}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || len(tasks) == 0 {
		return j
	}

	j.pending.Add(len(tasks))
	for i, fn := range tasks {
		p.threads[i%len(p.threads)] <- task{fn: fn, join: j}
	}
	return j
}

// Run dispatches tasks and waits for all of them.
func (p *Pool) Run(tasks []func()) {
	p.Dispatch(tasks).Wait()
}

// Close stops accepting tasks, lets the threads finish what is queued and
// waits for them to exit. Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for _, q := range p.threads {
		close(q)
	}
	p.mu.Unlock()

	p.exited.Wait()
}

// Threads returns the number of threads.
func (p *Pool) Threads() int {
	return len(p.threads)
}
