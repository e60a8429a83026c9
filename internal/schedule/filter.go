package schedule

import (
	"context"
	"sync"

	"github.com/dshills/textkit/internal/logger"
)

// Completion receives the outcome of a scheduled filtering.
type Completion[O any] func(output O, err error)

// Filter transforms input asynchronously and calls done exactly once.
// done may be called from any goroutine. ctx is cancelled when a newer
// invocation starts.
type Filter[I, O any] func(ctx context.Context, input I, done Completion[O])

type pendingSchedule[I, O any] struct {
	input      I
	completion Completion[O]
}

type cacheEntry[I, O any] struct {
	key   I
	value O
}

// ContentFilter coalesces filter requests with latest-wins semantics and a
// single-entry cache. It must only be used from tasks running on its loop.
type ContentFilter[I, O any] struct {
	loop   Loop
	filter Filter[I, O]
	equal  func(a, b I) bool

	pending    *pendingSchedule[I, O]
	cache      *cacheEntry[I, O]
	generation uint64
	cancel     context.CancelFunc
}

// NewContentFilter creates a ContentFilter comparing inputs with equal.
func NewContentFilter[I, O any](loop Loop, filter Filter[I, O], equal func(a, b I) bool) *ContentFilter[I, O] {
	return &ContentFilter[I, O]{
		loop:   loop,
		filter: filter,
		equal:  equal,
	}
}

// NewComparableContentFilter creates a ContentFilter comparing inputs with ==.
func NewComparableContentFilter[I comparable, O any](loop Loop, filter Filter[I, O]) *ContentFilter[I, O] {
	return NewContentFilter(loop, filter, func(a, b I) bool { return a == b })
}

// Schedule requests filtering of input. A request still waiting for its
// tick is failed with ErrCancelled and replaced.
func (s *ContentFilter[I, O]) Schedule(input I, completion Completion[O]) {
	previous := s.pending
	s.pending = &pendingSchedule[I, O]{input: input, completion: completion}

	if previous != nil {
		logger.Debugf("content filter: cancelled")
		var zero O
		previous.completion(zero, ErrCancelled)
		return
	}

	s.loop.Perform(s.dispatch)
}

// Generation returns the number of filter invocations so far.
func (s *ContentFilter[I, O]) Generation() uint64 {
	return s.generation
}

func (s *ContentFilter[I, O]) dispatch() {
	sched := s.pending
	s.pending = nil
	if sched == nil {
		return
	}

	if s.cache != nil && s.equal(s.cache.key, sched.input) {
		logger.Debugf("content filter: use cache")
		sched.completion(s.cache.value, nil)
		return
	}

	s.generation++
	generation := s.generation

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	var once sync.Once
	s.filter(ctx, sched.input, func(output O, err error) {
		once.Do(func() {
			s.loop.Perform(func() {
				s.deliver(generation, sched, output, err)
			})
		})
	})
}

func (s *ContentFilter[I, O]) deliver(generation uint64, sched *pendingSchedule[I, O], output O, err error) {
	if generation != s.generation {
		logger.Debugf("content filter: not latest")
		var zero O
		sched.completion(zero, ErrNotLatest)
		return
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if err == nil {
		s.cache = &cacheEntry[I, O]{key: sched.input, value: output}
	}
	sched.completion(output, err)
}
