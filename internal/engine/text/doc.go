// Package text provides the index space shared by the editing engine and
// the layout engine: ranges over UTF-16 code units and helpers that convert
// between Go strings and UTF-16 offsets.
//
// Text is carried as an ordinary Go string. All offsets, lengths and ranges
// exposed by this package count UTF-16 code units, because the external
// layout engine indexes text that way. A character outside the Basic
// Multilingual Plane occupies two code units; the offset between them is a
// surrogate-pair interior and is never a valid range endpoint.
//
// # Ranges
//
// A Range is a location and a length:
//
//	r := text.NewRange(2, 3) // {2, 3}, upper bound 5
//	r.ContainsRange(text.NewRange(3, 1)) // true
//
// The Null range uses the NotFound sentinel as its location and represents
// "absent".
//
// # Remapping
//
// MovedByReplacing computes where a range lands after another range of the
// text has been replaced:
//
//	sel := text.NewRange(2, 3)
//	sel.MovedByReplacing(text.NewRange(0, 1), 0) // {1, 3}
//
// A caret (zero-length range) overlapping the replaced range snaps to
// whichever side of the affected span it was nearer to, preferring the left
// side on ties.
//
// # Strings
//
//	text.Length("a😀")                           // 3
//	text.Replace("meow", text.NewRange(0, 0), "purr") // "purrmeow"
//	text.IsBoundary("a😀", 2)                    // false
package text
