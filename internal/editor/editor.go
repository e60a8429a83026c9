package editor

import (
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/content"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/layout"
	"github.com/dshills/textkit/internal/layout/mono"
	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/schedule"
)

// Editor is the editor controller.
type Editor struct {
	id   uuid.UUID
	loop schedule.Loop

	// Live state.
	storage       *attributed.String
	liveSelection text.Range

	// Committed state.
	committed   content.EditingContent
	interacting bool

	typingAttributes attributed.Attributes
	describe         attributed.DescribeOptions
	useClipboard     bool
	jsonObserver     *Handle

	contentDelegate    ContentDelegate
	attributesDelegate AttributesDelegate
	observers          registry

	userInteractionDidChange *schedule.Debounce
	textAttributes           *schedule.ContentFilter[*attributed.String, *attributed.String]

	coordinator *layout.Coordinator
	layout      *mono.Engine
	container   layout.TextContainer
	face        font.Face

	debugOutline  bool
	initText      string
	initSelection text.Range
}

// New creates an editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		id:       uuid.New(),
		describe: attributed.DescribeOptions{Short: true},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.loop == nil {
		e.loop = schedule.NewManualLoop()
	}

	committed, err := content.New(e.initText, e.initSelection)
	if err != nil {
		logger.Warnf("editor: initial selection: %v", err)
		committed, _ = content.New(e.initText, text.NewRange(text.Length(e.initText), 0))
	}
	e.committed = committed
	e.storage = attributed.New(committed.Text(), e.typingAttributes)
	e.liveSelection = committed.SelectedRange()

	e.userInteractionDidChange = schedule.NewDebounce(e.loop, e.didChangeByUserInteraction)
	e.textAttributes = schedule.NewContentFilter(e.loop, e.filterTextAttributes, (*attributed.String).Equal)

	e.coordinator = layout.NewCoordinator(layout.WithDebugOutline(e.debugOutline))
	layoutOpts := []mono.Option{mono.WithDelegate(e.coordinator)}
	if e.face != nil {
		layoutOpts = append(layoutOpts, mono.WithFace(e.face))
	}
	e.layout = mono.New(e.storage, &e.container, layoutOpts...)

	if committed.Length() > 0 {
		e.scheduleUpdateTextAttributes()
	}

	logger.Debugf("editor: created %s with %v", e.id, committed)
	return e
}

// ID returns the editor's unique identifier.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// Loop returns the loop the editor runs on.
func (e *Editor) Loop() schedule.Loop {
	return e.loop
}

// EditingContent returns the committed editing content.
func (e *Editor) EditingContent() content.EditingContent {
	return e.committed
}

// Text returns the committed text.
func (e *Editor) Text() string {
	return e.committed.Text()
}

// SelectedRange returns the committed selection in UTF-16 offsets.
func (e *Editor) SelectedRange() text.Range {
	return e.committed.SelectedRange()
}

// Storage returns the live attributed text. Callers must not change its
// characters; attributes may be changed followed by
// SetNeedsUpdateTextAttributes.
func (e *Editor) Storage() *attributed.String {
	return e.storage
}

// IsUserInteractionInProgress returns true while a user interaction is
// being processed.
func (e *Editor) IsUserInteractionInProgress() bool {
	return e.interacting
}

// Update applies req to the committed content.
func (e *Editor) Update(req content.UpdateRequest) error {
	logger.DebugTagf("editor", "request: %v", req)

	if e.interacting {
		logger.Errorf("editor: user interaction is being processed")
		return ErrUserInteractionInProgress
	}

	if live := e.live(); live != e.committed {
		logger.Errorf("editor: live editing content %v is not equal to editing content %v", live, e.committed)
		return ErrInconsistentEditingContent
	}

	current := e.committed
	interim, err := current.Update(req)
	if err != nil {
		return err
	}
	updated := interim
	if e.contentDelegate != nil {
		if c, ok := e.contentDelegate.UpdateEditingContent(interim); ok {
			updated = c
		}
	}

	logger.DebugTagf("editor", "current: %v, interim: %v, updated: %v", current, interim, updated)

	if updated.Text() != current.Text() {
		logger.DebugTagf("editor", "update text %q with text %q", current.Text(), updated.Text())
		e.storage.Reset(updated.Text(), e.typingAttributes)
		e.textDidChange()
	}
	if updated.SelectedRange() != e.liveSelection {
		logger.DebugTagf("editor", "update selected range %v with %v", e.liveSelection, updated.SelectedRange())
		e.liveSelection = updated.SelectedRange()
	}

	e.committed = e.live()
	return nil
}

// SetText replaces the whole text.
func (e *Editor) SetText(s string) error {
	return e.Update(content.TextRequest(s, nil))
}

// SetSelectedRange moves the selection.
func (e *Editor) SetSelectedRange(r text.Range) error {
	return e.Update(content.SelectedRangeRequest(r))
}

// UpdateByReplacing replaces r with s. A nil selectedRange moves the current
// selection along with the replacement.
func (e *Editor) UpdateByReplacing(r text.Range, s string, selectedRange *text.Range) error {
	return e.Update(content.SubtextRequest(r, s, selectedRange))
}

// live returns the live state as editing content.
func (e *Editor) live() content.EditingContent {
	c, err := content.New(e.storage.Text(), e.liveSelection)
	if err != nil {
		// The live selection is validated whenever it is set.
		logger.Errorf("editor: invalid live state: %v", err)
		return content.EditingContent{}
	}
	return c
}

// updateEditingContent lets the content delegate rewrite the committed
// content.
func (e *Editor) updateEditingContent() {
	if err := e.Update(content.NullRequest()); err != nil {
		logger.DebugTagf("editor", "update editing content: %v", err)
	}
}

func (e *Editor) textDidChange() {
	e.layout.Invalidate()
	e.scheduleUpdateTextAttributes()
}

// Layout returns the attachment layout coordinator.
func (e *Editor) Layout() *layout.Coordinator {
	return e.coordinator
}

// TextLayout returns the layout engine laying out the storage.
func (e *Editor) TextLayout() *mono.Engine {
	return e.layout
}

// Draw lays the text out if needed and draws it with the container origin
// at origin.
func (e *Editor) Draw(origin fixed.Point26_6, canvas mono.Canvas) {
	e.layout.Draw(origin, canvas)
}
