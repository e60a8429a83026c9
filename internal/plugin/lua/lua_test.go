package lua

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/textkit/internal/editor"
	"github.com/dshills/textkit/internal/engine/content"
	"github.com/dshills/textkit/internal/engine/text"
)

var _ editor.ContentDelegate = (*ContentFilter)(nil)

const withoutDigits = `
local textkit = require("textkit")

function update_editing_content(text, location, length)
  if not text:find("%d") then
    return nil
  end
  local before = text:sub(1, textkit.byte_offset(text, location))
  local kept = before:gsub("%d", "")
  local out = text:gsub("%d", "")
  return out, textkit.length(kept), 0
end
`

func newState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s := NewState(opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustContent(t *testing.T, s string, r text.Range) content.EditingContent {
	t.Helper()
	c, err := content.New(s, r)
	require.NoError(t, err)
	return c
}

func TestStateDoString(t *testing.T) {
	s := newState(t)

	require.NoError(t, s.DoString(`x = 1 + 1`))
	assert.Equal(t, glua.LNumber(2), s.GetGlobal("x"))

	assert.Error(t, s.DoString(`invalid lua code !!!`))
}

func TestStateCall(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.DoString(`
function add(a, b) return a + b, "sum" end
function nothing() end
`))

	results, err := s.Call(context.Background(), "add", glua.LNumber(2), glua.LNumber(3))
	require.NoError(t, err)
	assert.Equal(t, []glua.LValue{glua.LNumber(5), glua.LString("sum")}, results)

	results, err = s.Call(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	_, err = s.Call(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}

func TestStateCallError(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.DoString(`function fail() error("meow") end`))

	_, err := s.Call(context.Background(), "fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meow")
}

func TestStateExecutionTimeout(t *testing.T) {
	s := newState(t, WithExecutionTimeout(20*time.Millisecond))
	require.NoError(t, s.DoString(`
function spin() while true do end end
function ok() return 1 end
`))

	_, err := s.Call(context.Background(), "spin")
	assert.ErrorIs(t, err, ErrExecutionTimeout)

	results, err := s.Call(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, []glua.LValue{glua.LNumber(1)}, results)
}

func TestStateCallCancelled(t *testing.T) {
	s := newState(t)
	require.NoError(t, s.DoString(`function spin() while true do end end`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Call(ctx, "spin")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStateClose(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())

	assert.ErrorIs(t, s.DoString(`x = 1`), ErrStateClosed)
	_, err := s.Call(context.Background(), "f")
	assert.ErrorIs(t, err, ErrStateClosed)
	assert.Equal(t, glua.LNil, s.GetGlobal("x"))
}

func TestSandbox(t *testing.T) {
	s := newState(t)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		assert.Equal(t, glua.LNil, s.GetGlobal(name), name)
	}

	require.NoError(t, s.DoString(`s = require("string").upper("purr")`))
	assert.Equal(t, glua.LString("PURR"), s.GetGlobal("s"))

	err := s.DoString(`require("os")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	assert.NoError(t, s.DoString(`print("meow", 1, nil)`))
}

func TestSandboxAllow(t *testing.T) {
	s := newState(t)
	assert.False(t, s.Sandbox().IsAllowed("cat"))

	s.RegisterModule("cat", map[string]glua.LGFunction{
		"sound": func(L *glua.LState) int {
			L.Push(glua.LString("meow"))
			return 1
		},
	})
	assert.True(t, s.Sandbox().IsAllowed("cat"))

	require.NoError(t, s.DoString(`sound = require("cat").sound()`))
	assert.Equal(t, glua.LString("meow"), s.GetGlobal("sound"))
}

func TestTextModule(t *testing.T) {
	f, err := ParseContentFilter(`
function update_editing_content() end
length = textkit.length("a🐱b")
byte = textkit.byte_offset("a🐱b", 3)
offset = textkit.offset("a🐱b", 5)
`)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, glua.LNumber(4), f.state.GetGlobal("length"))
	assert.Equal(t, glua.LNumber(5), f.state.GetGlobal("byte"))
	assert.Equal(t, glua.LNumber(3), f.state.GetGlobal("offset"))

	err = f.state.DoString(`textkit.byte_offset("a🐱b", 2)`)
	assert.Error(t, err)
}

func TestContentFilter(t *testing.T) {
	f, err := ParseContentFilter(withoutDigits)
	require.NoError(t, err)
	defer f.Close()

	tests := []struct {
		name string
		in   content.EditingContent
		want content.EditingContent
		ok   bool
	}{
		{"no digits", mustContent(t, "meow", text.NewRange(2, 0)), mustContent(t, "meow", text.NewRange(2, 0)), false},
		{"caret at end", mustContent(t, "a1b2", text.NewRange(4, 0)), mustContent(t, "ab", text.NewRange(2, 0)), true},
		{"caret in middle", mustContent(t, "12ab", text.NewRange(3, 0)), mustContent(t, "ab", text.NewRange(1, 0)), true},
		{"surrogates", mustContent(t, "🐱1", text.NewRange(3, 0)), mustContent(t, "🐱", text.NewRange(2, 0)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.UpdateEditingContent(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentFilterInvalidResult(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"too few values", `function update_editing_content(t) return t end`},
		{"wrong types", `function update_editing_content(t) return t, "a", 0 end`},
		{"out of range", `function update_editing_content(t) return t, 100, 0 end`},
		{"fractional location", `function update_editing_content(t) return t, 1.7, 0 end`},
		{"fractional length", `function update_editing_content(t) return t, 0, 0.5 end`},
		{"infinite length", `function update_editing_content(t) return t, 0, math.huge end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseContentFilter(tt.script)
			require.NoError(t, err)
			defer f.Close()

			c := mustContent(t, "meow", text.NewRange(0, 0))
			_, _, err = f.Filter(context.Background(), c)
			assert.ErrorIs(t, err, ErrInvalidResult)

			got, ok := f.UpdateEditingContent(c)
			assert.False(t, ok)
			assert.Equal(t, c, got)
		})
	}
}

func TestContentFilterTimeout(t *testing.T) {
	f, err := ParseContentFilter(`function update_editing_content() while true do end end`,
		WithExecutionTimeout(20*time.Millisecond))
	require.NoError(t, err)
	defer f.Close()

	c := mustContent(t, "meow", text.NewRange(0, 0))
	_, _, err = f.Filter(context.Background(), c)
	assert.ErrorIs(t, err, ErrExecutionTimeout)

	got, ok := f.UpdateEditingContent(c)
	assert.False(t, ok)
	assert.Equal(t, c, got)
}

func TestLoadContentFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filter.lua")
	require.NoError(t, os.WriteFile(path, []byte(withoutDigits), 0o644))

	f, err := LoadContentFilter(path)
	require.NoError(t, err)
	defer f.Close()

	got, ok := f.UpdateEditingContent(mustContent(t, "a1", text.NewRange(2, 0)))
	assert.True(t, ok)
	assert.Equal(t, "a", got.Text())

	_, err = LoadContentFilter(filepath.Join(dir, "missing.lua"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.lua")
	require.NoError(t, os.WriteFile(empty, []byte("x = 1\n"), 0o644))
	_, err = LoadContentFilter(empty)
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}

func TestEditorWithContentFilter(t *testing.T) {
	f, err := ParseContentFilter(withoutDigits)
	require.NoError(t, err)
	defer f.Close()

	e := editor.New(editor.WithContentDelegate(f))
	require.NoError(t, e.SetText("a1b2"))
	assert.Equal(t, "ab", e.Text())

	require.NoError(t, e.UpdateByReplacing(text.NewRange(2, 0), "c3", nil))
	assert.Equal(t, "abc", e.Text())
}
