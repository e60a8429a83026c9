package schedule

import "sync"

// Loop runs tasks serially on one logical thread.
type Loop interface {
	// Perform queues task to run on a later tick. It is safe to call from
	// any goroutine.
	Perform(task func())
}

// ManualLoop is a Loop pumped explicitly by its owner.
type ManualLoop struct {
	mu    sync.Mutex
	queue []func()
}

// NewManualLoop creates an empty manual loop.
func NewManualLoop() *ManualLoop {
	return &ManualLoop{}
}

// Perform queues task for the next tick.
func (l *ManualLoop) Perform(task func()) {
	l.mu.Lock()
	l.queue = append(l.queue, task)
	l.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (l *ManualLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// RunOnce runs one tick: the tasks queued before the call. Tasks queued
// while they run wait for the next tick. It returns the number of tasks run.
func (l *ManualLoop) RunOnce() int {
	l.mu.Lock()
	tasks := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks)
}

// Drain runs ticks until no task is queued and returns the number of tasks run.
func (l *ManualLoop) Drain() int {
	total := 0
	for {
		n := l.RunOnce()
		if n == 0 {
			return total
		}
		total += n
	}
}
