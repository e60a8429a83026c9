package editor

import (
	"github.com/dshills/textkit/internal/config"
	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/paste"
)

// ApplyConfig applies the settings the editor owns. It may be called again
// with a reloaded configuration.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	e.coordinator.SetDebugOutline(cfg.Debug.DrawGlyphs)
	e.describe = cfg.DescribeOptions()
	e.useClipboard = cfg.Paste.UseClipboard

	if level, ok := logger.ParseLevel(cfg.Logging.Level); ok {
		logger.SetLevel(level)
	}

	if e.jsonObserver != nil {
		_ = e.RemoveObserver(*e.jsonObserver)
		e.jsonObserver = nil
	}
	if cfg.Paste.JSON {
		h := e.AddPasteObserver(paste.NewJSONObserver(paste.WithIndent(cfg.Paste.IndentJSON)))
		e.jsonObserver = &h
	}

	logger.DebugTagf("editor", "applied config: debug outline %t", cfg.Debug.DrawGlyphs)
}
