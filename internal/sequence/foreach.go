package sequence

import (
	"iter"
	"sync/atomic"

	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/schedule"
)

// Action tells the walk what to do after a body call.
type Action int

const (
	// Continue moves on to the next element.
	Continue Action = iota
	// Break ends the walk.
	Break
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Break:
		return "break"
	default:
		return "unknown"
	}
}

// Next reports the outcome of one body call. Only the first call for a
// given element has any effect.
type Next func(Action)

// ForEach walks items in order on loop. completion may be nil.
func ForEach[T any](loop schedule.Loop, items []T, body func(T, Next), completion func()) {
	ForEachSeq(loop, func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}, body, completion)
}

// ForEachSeq walks seq in order on loop. The sequence is pulled one element
// per step, from loop tasks only. completion may be nil.
func ForEachSeq[T any](loop schedule.Loop, seq iter.Seq[T], body func(T, Next), completion func()) {
	pull, stop := iter.Pull(seq)

	finish := func() {
		stop()
		if completion != nil {
			completion()
		}
	}

	var step func(Action)
	step = func(action Action) {
		loop.Perform(func() {
			if action == Break {
				finish()
				return
			}
			item, ok := pull()
			if !ok {
				finish()
				return
			}
			body(item, once(step))
		})
	}
	step(Continue)
}

func once(step func(Action)) Next {
	var called atomic.Bool
	return func(action Action) {
		if !called.CompareAndSwap(false, true) {
			logger.Warnf("sequence: next called more than once, ignoring %s", action)
			return
		}
		step(action)
	}
}
