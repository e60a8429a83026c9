package schedule

import "errors"

// Sentinel errors for the schedule package.
var (
	// ErrCancelled is passed to a completion whose schedule was replaced by a
	// newer one before the filter ran.
	ErrCancelled = errors.New("schedule cancelled")

	// ErrNotLatest is passed to a completion whose filter ran but finished
	// after a newer invocation had started.
	ErrNotLatest = errors.New("schedule result is not the latest")

	// ErrAlreadyRunning is returned when Start is called on a running loop.
	ErrAlreadyRunning = errors.New("loop is already running")

	// ErrNotRunning is returned when tasks are posted to a stopped loop.
	ErrNotRunning = errors.New("loop is not running")

	// ErrQueueFull is returned when the loop queue cannot accept more tasks.
	ErrQueueFull = errors.New("task queue is full")
)
