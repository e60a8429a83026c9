// Package styling computes text attributes for the editor.
//
// A Highlighter parses the text with tree-sitter, runs a highlight query
// and maps every capture name to a terminal style through a Theme. It
// satisfies the editor's attributes delegate, so it runs behind the
// editor's content filter and its result is dropped when the text changed
// in the meantime.
//
// Capture names are dotted scopes such as "function.method". A theme that
// has no style for a scope falls back to its parents ("function") and
// finally to the "default" style.
package styling
