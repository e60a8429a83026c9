package styling

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textkit/internal/editor"
	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/schedule"
)

var _ editor.AttributesDelegate = (*Highlighter)(nil)

const source = "package main\n\n// meow\nfunc main() { println(\"purr\", 42) }\n"

func styleAt(t *testing.T, s *attributed.String, offset int) tcell.Style {
	t.Helper()
	v, ok := s.Attribute(offset, attributed.StyleKey)
	require.True(t, ok, "no style at %d", offset)
	style, ok := v.(tcell.Style)
	require.True(t, ok)
	return style
}

func newHighlighter(t *testing.T, opts ...Option) *Highlighter {
	t.Helper()
	h, err := NewHighlighter("go", opts...)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h
}

func TestThemeStyleFallback(t *testing.T) {
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)
	blue := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	theme := &Theme{Styles: map[string]tcell.Style{
		DefaultScope: red,
		"function":   blue,
	}}

	assert.Equal(t, blue, theme.Style("function"))
	assert.Equal(t, blue, theme.Style("function.method.call"))
	assert.Equal(t, red, theme.Style("keyword"))
	assert.Equal(t, red, theme.Style(""))
	assert.Equal(t, tcell.StyleDefault, (&Theme{}).Style("keyword"))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, tcell.NewHexColor(0xff0000), c)

	c, err = ParseColor(" Default ")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorDefault, c)

	c, err = ParseColor("navy")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorNavy, c)

	_, err = ParseColor("no-such-color")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(`
name = "Paper"
is_dark = false

[styles.default]
fg = "#202020"

[styles.keyword]
fg = "navy"
bold = true
`)
	require.NoError(t, err)

	assert.Equal(t, "Paper", theme.Name)
	assert.False(t, theme.IsDark)

	base := tcell.StyleDefault.Foreground(tcell.NewHexColor(0x202020))
	assert.Equal(t, base, theme.Style("comment"))
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.ColorNavy).Bold(true), theme.Style("keyword"))
}

func TestParseThemeInvalidColor(t *testing.T) {
	_, err := ParseTheme(`
[styles.keyword]
fg = "no-such-color"
`)
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"Ink\"\n[styles.comment]\nitalic = true\n"), 0o644))

	theme, err := LoadTheme(path)
	require.NoError(t, err)
	assert.Equal(t, "Ink", theme.Name)
	assert.Equal(t, tcell.StyleDefault.Italic(true), theme.Style("comment"))

	_, err = LoadTheme(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestNewHighlighterUnsupported(t *testing.T) {
	_, err := NewHighlighter("cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestHighlight(t *testing.T) {
	h := newHighlighter(t)
	theme := h.Theme()
	input := attributed.New(source, nil)

	out, err := h.Highlight(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, source, out.Text())
	_, ok := input.Attribute(0, attributed.StyleKey)
	assert.False(t, ok, "input is not modified")

	assert.Equal(t, theme.Style("keyword"), styleAt(t, out, 0))
	assert.Equal(t, theme.Style("namespace"), styleAt(t, out, 8))
	assert.Equal(t, theme.Style("comment"), styleAt(t, out, 14))
	assert.Equal(t, theme.Style("keyword"), styleAt(t, out, 22))
	assert.Equal(t, theme.Style("function"), styleAt(t, out, 27))
	assert.Equal(t, theme.Style("function.call"), styleAt(t, out, 36))
	assert.Equal(t, theme.Style("string"), styleAt(t, out, 44))
	assert.Equal(t, theme.Style("number"), styleAt(t, out, 52))
	assert.Equal(t, theme.Style(DefaultScope), styleAt(t, out, 13))
}

func TestHighlightUTF16Offsets(t *testing.T) {
	h := newHighlighter(t)
	s := "// 🐱\nvar x = 1\n"
	out, err := h.Highlight(context.Background(), attributed.New(s, nil))
	require.NoError(t, err)

	// The cat is two UTF-16 units, so "var" starts at 6.
	assert.Equal(t, h.Theme().Style("comment"), styleAt(t, out, 4))
	assert.Equal(t, h.Theme().Style("keyword"), styleAt(t, out, 6))
	assert.Equal(t, h.Theme().Style("number"), styleAt(t, out, text.Length(s)-2))
}

func TestHighlightManyLines(t *testing.T) {
	h := newHighlighter(t)
	const line = "// 🐱\nvar x = 1\n"
	s := strings.Repeat(line, 500)
	out, err := h.Highlight(context.Background(), attributed.New(s, nil))
	require.NoError(t, err)

	n := text.Length(line)
	for i := range 500 {
		start := i * n
		assert.Equal(t, h.Theme().Style("comment"), styleAt(t, out, start+3))
		assert.Equal(t, h.Theme().Style("keyword"), styleAt(t, out, start+6))
		assert.Equal(t, h.Theme().Style("number"), styleAt(t, out, start+n-2))
	}
}

func TestHighlightKeepsOtherAttributes(t *testing.T) {
	h := newHighlighter(t)
	input := attributed.New("var x = 1", attributed.Attributes{"link": "meow"})

	out, err := h.Highlight(context.Background(), input)
	require.NoError(t, err)

	v, ok := out.Attribute(4, "link")
	require.True(t, ok)
	assert.Equal(t, "meow", v)
}

func TestHighlightEmpty(t *testing.T) {
	h := newHighlighter(t)
	out, err := h.Highlight(context.Background(), attributed.New("", nil))
	require.NoError(t, err)
	assert.Zero(t, out.Length())
}

func TestHighlightCancelled(t *testing.T) {
	h := newHighlighter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Highlight(ctx, attributed.New(source, nil))
	assert.ErrorIs(t, err, context.Canceled)

	done := make(chan *attributed.String, 1)
	h.UpdateAttributes(ctx, attributed.New(source, nil), func(s *attributed.String) { done <- s })
	select {
	case s := <-done:
		assert.Nil(t, s)
	case <-time.After(5 * time.Second):
		t.Fatal("done was not called")
	}
}

func TestSetTheme(t *testing.T) {
	h := newHighlighter(t)
	mono := &Theme{Name: "Mono", Styles: map[string]tcell.Style{
		DefaultScope: tcell.StyleDefault.Reverse(true),
	}}
	h.SetTheme(mono)
	h.SetTheme(nil)
	assert.Same(t, mono, h.Theme())

	out, err := h.Highlight(context.Background(), attributed.New(source, nil))
	require.NoError(t, err)
	assert.Equal(t, tcell.StyleDefault.Reverse(true), styleAt(t, out, 0))
}

func TestEditorIntegration(t *testing.T) {
	h := newHighlighter(t)
	loop := schedule.NewManualLoop()
	e := editor.New(
		editor.WithLoop(loop),
		editor.WithText("package main", text.NewRange(0, 0)),
		editor.WithAttributesDelegate(h),
	)

	require.Eventually(t, func() bool {
		loop.Drain()
		_, ok := e.Storage().Attribute(0, attributed.StyleKey)
		return ok
	}, 5*time.Second, time.Millisecond)

	assert.Equal(t, h.Theme().Style("keyword"), styleAt(t, e.Storage(), 0))
	assert.Equal(t, "package main", e.Text())
}

func TestHighlighterClose(t *testing.T) {
	h, err := NewHighlighter("go")
	require.NoError(t, err)
	h.Close()
	h.Close()

	_, err = h.Highlight(context.Background(), attributed.New(source, nil))
	assert.ErrorIs(t, err, ErrClosed)
}
