package styling

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textkit/internal/logger"
)

// DefaultScope is the scope every other scope falls back to.
const DefaultScope = "default"

// ErrInvalidColor is returned for a color string that is neither a known
// name nor #RRGGBB.
var ErrInvalidColor = errors.New("invalid color")

// Theme maps capture scopes to terminal styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// Style returns the style for scope. "a.b.c" falls back to "a.b", then
// "a", then DefaultScope.
func (t *Theme) Style(scope string) tcell.Style {
	for s := scope; s != ""; {
		if style, ok := t.Styles[s]; ok {
			return style
		}
		i := strings.LastIndexByte(s, '.')
		if i < 0 {
			break
		}
		s = s[:i]
	}
	if style, ok := t.Styles[DefaultScope]; ok {
		return style
	}
	return tcell.StyleDefault
}

// DefaultTheme returns a dark theme for the scopes of the built-in queries.
func DefaultTheme() *Theme {
	base := tcell.StyleDefault.Foreground(tcell.NewRGBColor(212, 212, 212))
	fg := func(r, g, b int32) tcell.Style {
		return tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b))
	}

	return &Theme{
		Name:   "Default Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			DefaultScope:       base,
			"comment":          fg(106, 153, 85).Italic(true),
			"keyword":          fg(86, 156, 214),
			"string":           fg(206, 145, 120),
			"string.escape":    fg(215, 186, 125),
			"number":           fg(181, 206, 168),
			"constant":         fg(79, 193, 255),
			"function":         fg(220, 220, 170),
			"type":             fg(78, 201, 176),
			"namespace":        fg(78, 201, 176),
			"property":         fg(156, 220, 254),
			"variable":         base,
			"constant.builtin": fg(86, 156, 214),
		},
	}
}

type tomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type tomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]tomlStyleDef `toml:"styles"`
}

// LoadTheme reads a TOML theme file.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	t, err := ParseTheme(string(data))
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// ParseTheme decodes a TOML theme:
//
//	name = "Paper"
//	is_dark = false
//
//	[styles.default]
//	fg = "#202020"
//
//	[styles.keyword]
//	fg = "navy"
//	bold = true
//
// Every style is applied over the default style.
func ParseTheme(data string) (*Theme, error) {
	var tt tomlTheme
	md, err := toml.Decode(data, &tt)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("styling: theme %q has unknown keys: %v", tt.Name, undecoded)
	}

	t := &Theme{
		Name:   tt.Name,
		IsDark: tt.IsDark,
		Styles: make(map[string]tcell.Style, len(tt.Styles)),
	}

	base := tcell.StyleDefault
	if def, ok := tt.Styles[DefaultScope]; ok {
		if base, err = convertStyle(tcell.StyleDefault, def); err != nil {
			return nil, fmt.Errorf("style %s: %w", DefaultScope, err)
		}
	}
	t.Styles[DefaultScope] = base

	for scope, def := range tt.Styles {
		if scope == DefaultScope {
			continue
		}
		style, err := convertStyle(base, def)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", scope, err)
		}
		t.Styles[scope] = style
	}
	return t, nil
}

func convertStyle(base tcell.Style, def tomlStyleDef) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		c, err := ParseColor(*def.Fg)
		if err != nil {
			return style, err
		}
		style = style.Foreground(c)
	}
	if def.Bg != nil {
		c, err := ParseColor(*def.Bg)
		if err != nil {
			return style, err
		}
		style = style.Background(c)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// ParseColor parses "#RRGGBB", a color name, or "default"/"reset".
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "default", "reset":
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}
