package textkit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/textkit/internal/config"
	"github.com/dshills/textkit/internal/editor"
	"github.com/dshills/textkit/internal/logger"
	"github.com/dshills/textkit/internal/plugin/lua"
	"github.com/dshills/textkit/internal/styling"
)

// Session is an Editor together with the collaborators its configuration
// names.
type Session struct {
	editor      *editor.Editor
	highlighter *styling.Highlighter
	filter      *lua.ContentFilter

	mu      sync.Mutex
	cfg     *config.Config
	watcher *config.Watcher
}

// OpenFile loads the configuration at path, opens a session for it and
// reloads it when the file changes.
func OpenFile(path string, opts ...Option) (*Session, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := Open(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Watch(path); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Open creates an Editor configured by cfg. A nil cfg is config.Default().
// opts may replace the delegates cfg implies; the settings
// Editor.ApplyConfig covers always come from cfg.
func Open(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{cfg: cfg}

	var base []Option
	if lang := cfg.Styling.Language; lang != "" {
		theme, err := loadTheme(cfg.Styling.Theme)
		if err != nil {
			return nil, err
		}
		h, err := styling.NewHighlighter(lang, styling.WithTheme(theme))
		if err != nil {
			return nil, err
		}
		s.highlighter = h
		base = append(base, editor.WithAttributesDelegate(h))
	}
	if path := cfg.Scripts.ContentFilter; path != "" {
		f, err := lua.LoadContentFilter(path)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.filter = f
		base = append(base, editor.WithContentDelegate(f))
	}
	s.editor = editor.New(append(base, opts...)...)
	s.editor.ApplyConfig(cfg)
	logger.DebugTagf("textkit", "opened editor %s", s.editor.ID())
	return s, nil
}

// Editor returns the session's editor.
func (s *Session) Editor() *Editor {
	return s.editor
}

// Config returns the configuration last applied.
func (s *Session) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Reload applies cfg on the editor's loop. The language and the content
// filter script are fixed when the session is opened.
func (s *Session) Reload(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.editor.Loop().Perform(func() {
		s.apply(cfg)
	})
}

func (s *Session) apply(cfg *config.Config) {
	s.mu.Lock()
	previous := s.cfg
	s.cfg = cfg
	s.mu.Unlock()

	s.editor.ApplyConfig(cfg)

	if cfg.Styling.Language != previous.Styling.Language {
		logger.Warnf("textkit: styling language changed to %q, reopen to apply", cfg.Styling.Language)
	}
	if cfg.Scripts.ContentFilter != previous.Scripts.ContentFilter {
		logger.Warnf("textkit: content filter changed to %q, reopen to apply", cfg.Scripts.ContentFilter)
	}

	if s.highlighter != nil && cfg.Styling.Theme != previous.Styling.Theme {
		theme, err := loadTheme(cfg.Styling.Theme)
		if err != nil {
			logger.Errorf("textkit: %v", err)
			return
		}
		s.highlighter.SetTheme(theme)
		s.editor.SetNeedsUpdateTextAttributes()
	}
}

// Watch reloads the configuration at path when it changes.
func (s *Session) Watch(path string) error {
	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	w.OnChange(s.Reload)

	s.mu.Lock()
	previous := s.watcher
	s.watcher = w
	s.mu.Unlock()

	if previous != nil {
		return previous.Close()
	}
	return nil
}

// Close stops watching and releases the highlighter and the script state.
func (s *Session) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	var errs []error
	if w != nil {
		errs = append(errs, w.Close())
	}
	if s.highlighter != nil {
		s.highlighter.Close()
	}
	if s.filter != nil {
		errs = append(errs, s.filter.Close())
	}
	return errors.Join(errs...)
}

func loadTheme(path string) (*styling.Theme, error) {
	if path == "" {
		return styling.DefaultTheme(), nil
	}
	theme, err := styling.LoadTheme(path)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	return theme, nil
}
