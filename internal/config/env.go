package config

import "strings"

// Environment variables overriding file settings.
const (
	EnvLogLevel       = "TEXTKIT_LOG_LEVEL"
	EnvDebugDrawGlyph = "TEXTKIT_DEBUG_DRAW_GLYPHS"
	EnvTheme          = "TEXTKIT_THEME"
)

// LookupFunc looks an environment variable up.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg with the environment variables found by lookup.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookup(EnvDebugDrawGlyph); ok {
		cfg.Debug.DrawGlyphs = parseBool(v)
	}
	if v, ok := lookup(EnvTheme); ok {
		cfg.Styling.Theme = v
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}
