package styling

import (
	"cmp"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/logger"
)

//go:embed queries/go.scm
var goQuery []byte

var (
	// ErrUnsupportedLanguage is returned by NewHighlighter for a language
	// without a grammar.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrClosed is returned by Highlight after Close.
	ErrClosed = errors.New("highlighter is closed")
)

// Highlighter styles text from tree-sitter highlight captures.
type Highlighter struct {
	language string
	lang     *sitter.Language
	query    *sitter.Query

	mu     sync.RWMutex
	theme  *Theme
	closed bool
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithTheme sets the theme. The default is DefaultTheme.
func WithTheme(t *Theme) Option {
	return func(h *Highlighter) {
		if t != nil {
			h.theme = t
		}
	}
}

// NewHighlighter returns a highlighter for language. Only "go" is
// supported.
func NewHighlighter(language string, opts ...Option) (*Highlighter, error) {
	var (
		lang    *sitter.Language
		pattern []byte
	)
	switch language {
	case "go":
		lang, pattern = golang.GetLanguage(), goQuery
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	query, err := sitter.NewQuery(pattern, lang)
	if err != nil {
		return nil, fmt.Errorf("compile %s highlight query: %w", language, err)
	}

	h := &Highlighter{
		language: language,
		lang:     lang,
		query:    query,
		theme:    DefaultTheme(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Language returns the highlighted language.
func (h *Highlighter) Language() string { return h.language }

// Theme returns the current theme.
func (h *Highlighter) Theme() *Theme {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.theme
}

// SetTheme replaces the theme. The editor has to be told to restyle.
func (h *Highlighter) SetTheme(t *Theme) {
	if t == nil {
		return
	}
	h.mu.Lock()
	h.theme = t
	h.mu.Unlock()
}

// Close releases the compiled query. It waits for running highlights.
func (h *Highlighter) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.query.Close()
}

// UpdateAttributes highlights s in the background and calls done with the
// styled copy, or with nil when ctx was cancelled or parsing failed.
func (h *Highlighter) UpdateAttributes(ctx context.Context, s *attributed.String, done func(*attributed.String)) {
	go func() {
		out, err := h.Highlight(ctx, s)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, ErrClosed) {
				logger.Warnf("styling: highlight: %v", err)
			}
			done(nil)
			return
		}
		done(out)
	}()
}

type capture struct {
	pattern    uint16
	name       string
	start, end int
}

// Highlight returns a copy of s with attributed.StyleKey set over every
// character. s itself is not modified.
func (h *Highlighter) Highlight(ctx context.Context, s *attributed.String) (*attributed.String, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil, ErrClosed
	}

	theme := h.theme
	out := s.Copy()
	if out.Length() == 0 {
		return out, nil
	}

	str := out.Text()
	src := []byte(str)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(h.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.query, tree.RootNode())

	var captures []capture
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captures = append(captures, capture{
				pattern: m.PatternIndex,
				name:    h.query.CaptureNameForId(c.Index),
				start:   int(c.Node.StartByte()),
				end:     int(c.Node.EndByte()),
			})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(captures, func(a, b capture) int {
		return cmp.Compare(a.pattern, b.pattern)
	})

	if err := out.AddAttributes(text.FullRange(str), attributed.Attributes{
		attributed.StyleKey: theme.Style(DefaultScope),
	}); err != nil {
		return nil, err
	}
	bounds := make([]int, 0, 2*len(captures))
	for _, c := range captures {
		bounds = append(bounds, c.start, c.end)
	}
	offsets := text.Offsets(str, bounds)

	for _, c := range captures {
		r := text.RangeFromBounds(offsets[c.start], offsets[c.end])
		if r.IsEmpty() {
			continue
		}
		if err := out.AddAttributes(r, attributed.Attributes{
			attributed.StyleKey: theme.Style(c.name),
		}); err != nil {
			return nil, err
		}
	}

	logger.DebugTagf("styling", "highlighted %d captures", len(captures))
	return out, nil
}
