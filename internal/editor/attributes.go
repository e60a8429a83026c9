package editor

import (
	"context"
	"errors"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/schedule"
)

// SetNeedsUpdateTextAttributes asks the attributes delegate to restyle the
// text. Text changes do this on their own; call it when something else the
// delegate depends on changed.
func (e *Editor) SetNeedsUpdateTextAttributes() {
	logger.DebugTagf("editor", "set needs update text attributes")
	e.scheduleUpdateTextAttributes()
}

func (e *Editor) scheduleUpdateTextAttributes() {
	snapshot := e.storage.Copy()
	logger.DebugTagf("editor", "attributes: %v", snapshot.LoggingDescription(e.describe))

	e.textAttributes.Schedule(snapshot, func(output *attributed.String, err error) {
		if err != nil || output == nil {
			logger.DebugTagf("editor", "cancel update text attributes: %v, err: %v", snapshot.LoggingDescription(e.describe), err)
			return
		}

		logger.DebugTagf("editor", "set text attributes: %v", output.LoggingDescription(e.describe))
		if err := e.storage.SetAttributesFrom(output); err != nil {
			if errors.Is(err, attributed.ErrCharactersEdited) {
				logger.DebugTagf("editor", "text changed while updating attributes")
			} else {
				logger.Errorf("editor: set text attributes: %v", err)
			}
			return
		}
		e.layout.Invalidate()
	})
}

// filterTextAttributes runs the attributes delegate for the text
// attributes scheduler.
func (e *Editor) filterTextAttributes(ctx context.Context, input *attributed.String, done schedule.Completion[*attributed.String]) {
	d := e.attributesDelegate
	if d == nil {
		done(nil, nil)
		return
	}

	sp := logger.Begin("editor.updateAttributes", "length: %d", input.Length())
	d.UpdateAttributes(ctx, input, func(output *attributed.String) {
		sp.End()
		done(output, nil)
	})
}
