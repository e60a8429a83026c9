// Package schedule provides the cooperative single-threaded execution
// model of the editor and the schedulers built on it.
//
// # Loops
//
// A Loop runs tasks one at a time, in order, on one logical thread. All
// editing state, scheduler state and layout caches are only touched from
// tasks running on the loop. Two implementations are provided:
//
//   - RunLoop: a goroutine-backed loop for production use, with a bounded
//     queue for Post, an overflow list that keeps Perform from ever
//     dropping a task, panic recovery and statistics.
//   - ManualLoop: a loop pumped by the caller, one tick at a time, which
//     makes scheduler behavior deterministic in tests.
//
// Perform may be called from any goroutine; it is the only way work that
// finished elsewhere gets back onto the loop.
//
// # Debounce
//
// Debounce coalesces any number of Schedule calls made before the next tick
// into a single run of its block. Perform runs the block immediately and
// turns an already queued tick into a no-op:
//
//	d := schedule.NewDebounce(loop, flush)
//	d.Schedule()
//	d.Schedule() // no-op, one tick pending
//	d.Perform()  // runs flush now
//
// # ContentFilter
//
// ContentFilter runs an asynchronous filter over an input with
// latest-wins semantics:
//
//   - a Schedule call made while another is still waiting for its tick
//     fails the waiting one with ErrCancelled;
//   - a filter result that arrives after a newer invocation started fails
//     with ErrNotLatest;
//   - the last successful input/output pair is cached, and scheduling an
//     equal input completes from the cache without running the filter.
//
// Every completion is called exactly once, on the loop. The filter itself
// may finish on any goroutine; its result is marshalled back onto the loop
// by the scheduler. The filter receives a context that is cancelled as soon
// as a newer invocation starts, so long-running filters can stop early.
package schedule
