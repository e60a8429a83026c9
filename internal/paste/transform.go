package paste

import (
	"sync"

	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/schedule"
	"github.com/dshills/textkit/internal/sequence"
)

// ResultKind is the kind of result set on a pasted item.
type ResultKind int

const (
	// ResultDefault lets the editor paste the item's text itself.
	ResultDefault ResultKind = iota
	// ResultNone pastes nothing.
	ResultNone
	// ResultString pastes String.
	ResultString
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case ResultDefault:
		return "default"
	case ResultNone:
		return "none"
	case ResultString:
		return "string"
	default:
		return "unknown"
	}
}

// Result is the final result for one pasted item.
type Result struct {
	Kind   ResultKind
	String string
}

// resultOnce forwards only the first result it is given.
type resultOnce struct {
	set func(Result)
}

func (r *resultOnce) setResult(result Result) {
	if r.set == nil {
		return
	}
	set := r.set
	r.set = nil
	set(result)
}

// CanPaste returns true if an observer accepting one of the items can
// paste it.
func CanPaste(observers []Observer, items []Item) bool {
	for _, item := range items {
		for _, o := range observers {
			if CanAccept(o, item) && o.CanPaste(item) {
				return true
			}
		}
	}
	return false
}

// Transform asks observers, in order, to transform item and calls set
// exactly once on loop with the result.
func Transform(loop schedule.Loop, observers []Observer, item Item, set func(Result)) {
	var accepting []Observer
	for _, o := range observers {
		if CanAccept(o, item) {
			accepting = append(accepting, o)
		}
	}

	if len(accepting) == 0 {
		set(Result{Kind: ResultDefault})
		return
	}

	result := &resultOnce{set: set}

	if len(accepting) == 1 {
		accepting[0].Transform(item, onLoop(loop, func(out Outcome) {
			switch out.Kind {
			case OutcomeTransformed:
				result.setResult(Result{Kind: ResultNone})
			case OutcomeTransformedToString:
				result.setResult(Result{Kind: ResultString, String: out.String})
			default:
				result.setResult(Result{Kind: ResultDefault})
			}
		}))
		return
	}

	sequence.ForEach(loop, accepting, func(o Observer, next sequence.Next) {
		o.Transform(item, onLoop(loop, func(out Outcome) {
			switch out.Kind {
			case OutcomeTransformed:
				result.setResult(Result{Kind: ResultNone})
				next(sequence.Break)
			case OutcomeTransformedToString:
				result.setResult(Result{Kind: ResultString, String: out.String})
				next(sequence.Break)
			default:
				next(sequence.Continue)
			}
		}))
	}, func() {
		result.setResult(Result{Kind: ResultDefault})
	})
}

// onLoop returns a done function that runs fn on loop, once.
func onLoop(loop schedule.Loop, fn func(Outcome)) func(Outcome) {
	var once sync.Once
	return func(out Outcome) {
		called := false
		once.Do(func() {
			called = true
			loop.Perform(func() { fn(out) })
		})
		if !called {
			logger.Warnf("paste: observer reported more than one outcome")
		}
	}
}
