// Package attributed provides a string with attributes attached to ranges
// of its text.
//
// Offsets and ranges use the same UTF-16 index space as package text.
// Attributes are stored as runs: maximal spans of text sharing one
// attribute set. Adjacent runs with equal attributes are always merged, so
// two strings with the same text and the same attribute layout compare
// equal regardless of how they were built.
//
// Attribute values are compared with == when their dynamic type is
// comparable and with reflect.DeepEqual otherwise. Values carrying
// functions should be stored behind a pointer so that equal values compare
// equal.
//
// A String is not safe for concurrent use. Copy it before handing it to
// another goroutine.
package attributed
