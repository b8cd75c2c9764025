package http

import "sync"

// Dispatcher decides on which goroutine a completion runs.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}

// Inline runs completions directly on the goroutine that finished the request.
var Inline Dispatcher = DispatchFunc(func(fn func()) { fn() })

const queueSize = 64

// Queue is a serial execution context. Tasks run one at a time, in the order
// they were dispatched, on a single goroutine owned by the Queue.
type Queue struct {
	tasks  chan func()
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// NewQueue starts a Queue. Call Close to stop its goroutine.
func NewQueue() *Queue {
	q := &Queue{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer close(q.done)
	for fn := range q.tasks {
		fn()
	}
}

// Dispatch schedules fn on the queue goroutine. Once the queue is closed
// fn runs on the caller's goroutine instead, so it is never dropped.
func (q *Queue) Dispatch(fn func()) {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		fn()
		return
	}
	q.tasks <- fn
	q.mu.RUnlock()
}

// Close stops accepting tasks and waits for queued ones to finish.
// It must not be called from a task running on the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	<-q.done
}
