package lua

import (
	"context"
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textkit/internal/engine/content"
	"github.com/dshills/textkit/internal/engine/text"
	"github.com/dshills/textkit/internal/logger"
)

// FunctionName is the global a content filter script defines.
const FunctionName = "update_editing_content"

// ContentFilter is an editing-content delegate backed by a script.
type ContentFilter struct {
	state *State
}

// NewContentFilter returns a content filter that calls FunctionName in
// state. The textkit module is registered in state.
func NewContentFilter(state *State) *ContentFilter {
	registerTextModule(state)
	return &ContentFilter{state: state}
}

// LoadContentFilter runs the script at path in a new state and returns a
// content filter for it.
func LoadContentFilter(path string, opts ...StateOption) (*ContentFilter, error) {
	return loadContentFilter(func(s *State) error { return s.DoFile(path) }, opts)
}

// ParseContentFilter is LoadContentFilter for script source.
func ParseContentFilter(code string, opts ...StateOption) (*ContentFilter, error) {
	return loadContentFilter(func(s *State) error { return s.DoString(code) }, opts)
}

func loadContentFilter(run func(*State) error, opts []StateOption) (*ContentFilter, error) {
	state := NewState(opts...)
	f := NewContentFilter(state)
	if err := run(state); err != nil {
		state.Close()
		return nil, fmt.Errorf("load content filter: %w", err)
	}
	if state.GetGlobal(FunctionName).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("load content filter: %w: %q", ErrFunctionNotFound, FunctionName)
	}
	return f, nil
}

// Close closes the underlying state.
func (f *ContentFilter) Close() error {
	return f.state.Close()
}

// UpdateEditingContent calls the script. Errors are logged and leave c
// unchanged.
func (f *ContentFilter) UpdateEditingContent(c content.EditingContent) (content.EditingContent, bool) {
	updated, ok, err := f.Filter(context.Background(), c)
	if err != nil {
		logger.Errorf("lua: %s: %v", FunctionName, err)
		return c, false
	}
	return updated, ok
}

// Filter calls the script with c. ok is false when the script returned nil.
func (f *ContentFilter) Filter(ctx context.Context, c content.EditingContent) (updated content.EditingContent, ok bool, err error) {
	sel := c.SelectedRange()
	sp := logger.Begin("lua.updateEditingContent", "length: %d", c.Length())
	results, err := f.state.Call(ctx, FunctionName,
		lua.LString(c.Text()),
		lua.LNumber(sel.Location),
		lua.LNumber(sel.Length),
	)
	sp.End()
	if err != nil {
		return c, false, err
	}

	if len(results) == 0 || results[0] == lua.LNil {
		return c, false, nil
	}
	if len(results) < 3 {
		return c, false, fmt.Errorf("%w: want text, location, length, got %d values", ErrInvalidResult, len(results))
	}

	s, isString := results[0].(lua.LString)
	location, isLocation := results[1].(lua.LNumber)
	length, isLength := results[2].(lua.LNumber)
	if !isString || !isLocation || !isLength {
		return c, false, fmt.Errorf("%w: want string, number, number, got %s, %s, %s",
			ErrInvalidResult, results[0].Type(), results[1].Type(), results[2].Type())
	}

	loc, isLocation := toInt(location)
	n, isLength := toInt(length)
	if !isLocation || !isLength {
		return c, false, fmt.Errorf("%w: location %v and length %v must be integers", ErrInvalidResult, location, length)
	}

	updated, err = content.New(string(s), text.NewRange(loc, n))
	if err != nil {
		return c, false, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	logger.DebugTagf("lua", "updated editing content: %v", updated)
	return updated, true, nil
}

// registerTextModule provides UTF-16 offset helpers to scripts.
func registerTextModule(state *State) {
	state.RegisterModule("textkit", map[string]lua.LGFunction{
		"length": func(L *lua.LState) int {
			L.Push(lua.LNumber(text.Length(L.CheckString(1))))
			return 1
		},
		"byte_offset": func(L *lua.LState) int {
			b, err := text.ByteOffset(L.CheckString(1), L.CheckInt(2))
			if err != nil {
				L.RaiseError("%v", err)
				return 0
			}
			L.Push(lua.LNumber(b))
			return 1
		},
		"offset": func(L *lua.LState) int {
			L.Push(lua.LNumber(text.Offset(L.CheckString(1), L.CheckInt(2))))
			return 1
		},
	})
}

func toInt(n lua.LNumber) (int, bool) {
	f := float64(n)
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
