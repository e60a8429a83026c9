// Package sequence walks a collection one element at a time where each
// step may finish asynchronously.
//
// The body receives each element and a Next function. Calling
// Next(Continue) moves on to the following element and Next(Break) ends the
// walk. The completion runs once, after the last element or after a Break.
// Every body call and the completion run as separate tasks on the given
// schedule.Loop, so they never overlap even when Next is called from
// another goroutine.
//
//	sequence.ForEach(loop, observers, func(o Observer, next sequence.Next) {
//		o.Transform(item, func(handled bool) {
//			if handled {
//				next(sequence.Break)
//				return
//			}
//			next(sequence.Continue)
//		})
//	}, done)
package sequence
