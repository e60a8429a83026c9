// Package textkit is a rich-text editing engine.
//
// An Editor keeps UTF-16 text with a selected range, applies programmatic
// updates and user edits, rewrites content through a ContentDelegate,
// styles text asynchronously through an AttributesDelegate, transforms
// pasted items and lays out text with inline image attachments.
//
// Open builds an Editor from a configuration file, with syntax styling,
// a Lua content filter and live reloading:
//
//	s, err := textkit.OpenFile("textkit.toml")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	e := s.Editor()
//	_ = e.SetText("package main")
package textkit

import (
	"github.com/dshills/textkit/internal/editor"
	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/content"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/paste"
	"github.com/dshills/textkit/internal/schedule"
)

type (
	// Editor is the editor controller.
	Editor = editor.Editor
	// Option configures an Editor.
	Option = editor.Option
	// Handle identifies a registered observer.
	Handle = editor.Handle

	ContentDelegate    = editor.ContentDelegate
	AttributesDelegate = editor.AttributesDelegate
	ChangeObserver     = editor.ChangeObserver

	Range          = text.Range
	EditingContent = content.EditingContent
	UpdateRequest  = content.UpdateRequest
	ChangeResult   = content.ChangeResult

	AttributedString = attributed.String
	Attributes       = attributed.Attributes

	PasteItem     = paste.Item
	PasteObserver = paste.Observer

	Loop       = schedule.Loop
	ManualLoop = schedule.ManualLoop
	RunLoop    = schedule.RunLoop
)

// NotFound is the location of a null range.
const NotFound = text.NotFound

// Editor constructor and options.
var (
	New = editor.New

	WithLoop               = editor.WithLoop
	WithText               = editor.WithText
	WithTypingAttributes   = editor.WithTypingAttributes
	WithContentDelegate    = editor.WithContentDelegate
	WithAttributesDelegate = editor.WithAttributesDelegate
	WithContainerWidth     = editor.WithContainerWidth
	WithFace               = editor.WithFace
	WithDebugOutline       = editor.WithDebugOutline
	WithDescribeOptions    = editor.WithDescribeOptions
	WithClipboard          = editor.WithClipboard
)

// Errors returned by Editor.
var (
	ErrUserInteractionInProgress  = editor.ErrUserInteractionInProgress
	ErrInconsistentEditingContent = editor.ErrInconsistentEditingContent
	ErrOutOfSelectedRange         = content.ErrOutOfSelectedRange
	ErrOutOfReplacingRange        = content.ErrOutOfReplacingRange
)

// NewRange returns the range {location, length}.
func NewRange(location, length int) Range {
	return text.NewRange(location, length)
}

// NewManualLoop returns a loop that runs tasks only when asked to.
func NewManualLoop() *ManualLoop {
	return schedule.NewManualLoop()
}

// NewRunLoop returns a loop that runs tasks on its own goroutine once
// started.
func NewRunLoop() *RunLoop {
	return schedule.NewRunLoop()
}
