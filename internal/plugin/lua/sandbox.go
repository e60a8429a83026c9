package lua

import (
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textkit/internal/logger"
)

// Sandbox restricts what scripts can reach.
type Sandbox struct {
	L *lua.LState

	mu      sync.RWMutex
	modules map[string]bool
}

// NewSandbox creates a sandbox for L that allows the string, table and
// math modules.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L: L,
		modules: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Install removes the loaders and replaces print and require.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
	s.installRequire()
}

// Allow lets require return the global module name.
func (s *Sandbox) Allow(name string) {
	s.mu.Lock()
	s.modules[name] = true
	s.mu.Unlock()
}

// IsAllowed returns true if require may return name.
func (s *Sandbox) IsAllowed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modules[name]
}

func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		logger.DebugTagf("lua", "%s", strings.Join(parts, "\t"))
		return 0
	}))
}

// installRequire replaces require with a lookup of allowed globals.
// Nothing is ever loaded from disk.
func (s *Sandbox) installRequire() {
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.IsAllowed(name) {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(L.GetGlobal(name))
		return 1
	}))
}
