package logger

import (
	"log/slog"
	"strings"
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum level to log: "debug", "info", "warn" or "error".
	Level string

	// EnabledTags only logs tagged records with these tags (if non-empty).
	EnabledTags []string
	// DisabledTags drops records with these tags. Overrides EnabledTags.
	DisabledTags []string

	// EnabledPackages only logs records from these packages (if non-empty).
	// A package is the immediate directory name of the source file.
	EnabledPackages []string
	// DisabledPackages drops records from these packages.
	DisabledPackages []string

	enabledTags      map[string]struct{}
	disabledTags     map[string]struct{}
	enabledPackages  map[string]struct{}
	disabledPackages map[string]struct{}
}

// ParseLevel converts a level name into a slog.Level.
// Unknown names report ok == false and return slog.LevelInfo.
func ParseLevel(name string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// process converts the filter lists into sets.
func (c *Config) process() {
	c.enabledTags = toSet(c.EnabledTags)
	c.disabledTags = toSet(c.DisabledTags)
	c.enabledPackages = toSet(c.EnabledPackages)
	c.disabledPackages = toSet(c.DisabledPackages)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func inSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, ok := set[key]
	return ok
}
