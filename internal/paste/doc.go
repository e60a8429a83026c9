// Package paste turns pasted or dropped items into text.
//
// An Item offers its data under one or more type identifiers. Observers
// declare the types they accept and, when asked, transform an item
// asynchronously, finishing with exactly one Outcome:
//
//   - Transformed: the observer handled the item; nothing is inserted.
//   - TransformedTo(s): the observer handled the item; s is inserted.
//   - NoTransform: the next accepting observer is asked.
//
// Transform asks the accepting observers in order, one at a time, on the
// editor's loop, and reports exactly one Result per item. When every
// observer passes, the item gets the default result. DefaultTextObserver
// is meant to be the last observer and always finishes the walk.
package paste
