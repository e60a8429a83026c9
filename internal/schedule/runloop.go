package schedule

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/textkit/internal/logger"
)

// PanicHandler is called when a task panics. It receives the panic value
// and the stack trace.
type PanicHandler func(value any, stack []byte)

func defaultPanicHandler(value any, stack []byte) {
	logger.Errorf("task panicked: %v\n%s", value, stack)
}

// RunLoop is a Loop backed by a single goroutine.
type RunLoop struct {
	queueSize    int
	panicHandler PanicHandler

	mu       sync.Mutex // guards queue sends against close, and overflow
	queue    chan func()
	overflow []func()
	running  atomic.Bool
	wg       sync.WaitGroup

	enqueued   atomic.Uint64
	processed  atomic.Uint64
	panicked   atomic.Uint64
	dropped    atomic.Uint64
	overflowed atomic.Uint64
}

// RunLoopOption configures a RunLoop.
type RunLoopOption func(*RunLoop)

// WithQueueSize sets the task queue size.
func WithQueueSize(size int) RunLoopOption {
	return func(l *RunLoop) {
		if size > 0 {
			l.queueSize = size
		}
	}
}

// WithPanicHandler sets the handler called when a task panics.
func WithPanicHandler(h PanicHandler) RunLoopOption {
	return func(l *RunLoop) {
		l.panicHandler = h
	}
}

// NewRunLoop creates a stopped run loop.
func NewRunLoop(opts ...RunLoopOption) *RunLoop {
	l := &RunLoop{
		queueSize:    1024,
		panicHandler: defaultPanicHandler,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start starts the loop goroutine.
func (l *RunLoop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running.Load() {
		return ErrAlreadyRunning
	}

	l.queue = make(chan func(), l.queueSize)
	l.running.Store(true)

	l.wg.Add(1)
	go l.run(l.queue)

	return nil
}

// Stop stops accepting tasks and waits until queued tasks have run or ctx
// is done.
func (l *RunLoop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.running.Load() {
		l.mu.Unlock()
		return ErrNotRunning
	}
	l.running.Store(false)
	close(l.queue)
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning returns true if the loop accepts tasks.
func (l *RunLoop) IsRunning() bool {
	return l.running.Load()
}

// Post queues task, reporting ErrNotRunning or ErrQueueFull.
// It never blocks, so it is safe to call from a task on the loop.
func (l *RunLoop) Post(task func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.Load() {
		return ErrNotRunning
	}

	// Tasks waiting in overflow go first.
	if len(l.overflow) == 0 {
		select {
		case l.queue <- task:
			l.enqueued.Add(1)
			return nil
		default:
		}
	}
	l.dropped.Add(1)
	return ErrQueueFull
}

// Perform queues task. When the queue is full the task waits in an
// unbounded overflow list, so it is never dropped while the loop runs.
// Tasks performed on a stopped loop are dropped and logged.
func (l *RunLoop) Perform(task func()) {
	if err := l.perform(task); err != nil {
		logger.Errorf("run loop dropped task: %v", err)
	}
}

func (l *RunLoop) perform(task func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.Load() {
		l.dropped.Add(1)
		return ErrNotRunning
	}

	l.enqueued.Add(1)
	if len(l.overflow) == 0 {
		select {
		case l.queue <- task:
			return nil
		default:
		}
	}
	l.overflow = append(l.overflow, task)
	l.overflowed.Add(1)
	return nil
}

// Do runs fn on the loop and waits for it to return or for ctx to be done.
// Like Perform it never fails on a full queue. It must not be called from a
// task running on the same loop.
func (l *RunLoop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.perform(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *RunLoop) run(queue chan func()) {
	defer l.wg.Done()

	for task := range queue {
		l.refill(queue)
		l.execute(task)
	}

	// Overflow left behind by Stop.
	l.mu.Lock()
	var rest []func()
	if !l.running.Load() {
		rest = l.overflow
		l.overflow = nil
	}
	l.mu.Unlock()
	for _, task := range rest {
		l.execute(task)
	}
}

// refill moves overflowed tasks into the slots freed by the loop.
func (l *RunLoop) refill(queue chan func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.Load() || queue != l.queue {
		return
	}
	for len(l.overflow) > 0 {
		select {
		case queue <- l.overflow[0]:
			l.overflow[0] = nil
			l.overflow = l.overflow[1:]
		default:
			return
		}
	}
}

func (l *RunLoop) execute(task func()) {
	l.processed.Add(1)

	defer func() {
		if r := recover(); r != nil {
			l.panicked.Add(1)
			if l.panicHandler != nil {
				stack := debug.Stack()
				func() {
					defer func() { _ = recover() }()
					l.panicHandler(r, stack)
				}()
			}
		}
	}()

	task()
}

// RunLoopStats contains statistics for a run loop.
type RunLoopStats struct {
	// Enqueued is the number of tasks accepted.
	Enqueued uint64

	// Processed is the number of tasks run.
	Processed uint64

	// Panicked is the number of tasks that panicked.
	Panicked uint64

	// Dropped is the number of tasks rejected by Post because the queue
	// was full, or performed on a stopped loop.
	Dropped uint64

	// Overflowed is the number of performed tasks that found the queue
	// full and waited in the overflow list.
	Overflowed uint64
}

// Stats returns loop statistics.
func (l *RunLoop) Stats() RunLoopStats {
	return RunLoopStats{
		Enqueued:   l.enqueued.Load(),
		Processed:  l.processed.Load(),
		Panicked:   l.panicked.Load(),
		Dropped:    l.dropped.Load(),
		Overflowed: l.overflowed.Load(),
	}
}
