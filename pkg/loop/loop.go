// Package loop provides a single-threaded task queue.
//
// Any goroutine may Dispatch tasks; they run one at a time, in order, on
// whichever goroutine drives the loop with Run, Step or Drain. The renderer
// posts its render passes here, which gives the macrotask boundary that
// coalesces bursts of state changes into one pass.
package loop

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Scheduler accepts tasks to run later on the loop goroutine.
type Scheduler interface {
	Dispatch(fn func())
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for recovered task panics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop is an unbounded FIFO of tasks.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	logger *slog.Logger

	// running is the id of the goroutine executing a task, or zero.
	running atomic.Int64
}

// New creates an empty loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dispatch queues fn. It never blocks and never drops a task.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Step runs the oldest queued task and reports whether there was one.
func (l *Loop) Step() bool {
	l.mu.Lock()
	if len(l.queue) == 0 {
		l.mu.Unlock()
		return false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	l.mu.Unlock()

	l.safeExecute(fn)
	return true
}

// Drain runs tasks until the queue is empty, including tasks queued by the
// tasks it runs, and returns how many ran.
func (l *Loop) Drain() int {
	n := 0
	for l.Step() {
		n++
	}
	return n
}

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// OnLoop reports whether the caller is a task running on this loop.
func (l *Loop) OnLoop() bool {
	return l.running.Load() == goid.Get()
}

// safeExecute runs a task with panic recovery.
func (l *Loop) safeExecute(fn func()) {
	prev := l.running.Swap(goid.Get())
	defer func() {
		l.running.Store(prev)
		if r := recover(); r != nil {
			l.logger.Error("task panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	fn()
}
