package config

import (
	"errors"

	"github.com/dshills/textkit/internal/engine/attributed"
	"github.com/dshills/textkit/internal/logger"
)

// Config is the editor configuration.
type Config struct {
	Logging     LoggingConfig     `toml:"logging" yaml:"logging"`
	Debug       DebugConfig       `toml:"debug" yaml:"debug"`
	Description DescriptionConfig `toml:"description" yaml:"description"`
	Styling     StylingConfig     `toml:"styling" yaml:"styling"`
	Scripts     ScriptsConfig     `toml:"scripts" yaml:"scripts"`
	Paste       PasteConfig       `toml:"paste" yaml:"paste"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`
	// File is the log file path. Empty logs to stderr.
	File         string   `toml:"file" yaml:"file"`
	EnabledTags  []string `toml:"enabled_tags" yaml:"enabled_tags"`
	DisabledTags []string `toml:"disabled_tags" yaml:"disabled_tags"`
}

// DebugConfig holds debugging switches.
type DebugConfig struct {
	// DrawGlyphs outlines attachment rectangles when drawing.
	DrawGlyphs bool `toml:"draw_glyphs" yaml:"draw_glyphs"`
}

// DescriptionConfig controls how attributed text is described in logs.
type DescriptionConfig struct {
	// Short only lists attribute keys, not values.
	Short bool `toml:"short" yaml:"short"`
	// Attributes limits the description to these keys. Empty means all.
	Attributes []string `toml:"attributes" yaml:"attributes"`
}

// StylingConfig configures the syntax styling delegate.
type StylingConfig struct {
	// Language is the highlighted language. Empty disables highlighting.
	Language string `toml:"language" yaml:"language"`
	// Theme is the path of a TOML theme file. Empty uses the built-in theme.
	Theme string `toml:"theme" yaml:"theme"`
}

// ScriptsConfig configures Lua scripts.
type ScriptsConfig struct {
	// ContentFilter is the path of a script defining update_editing_content.
	ContentFilter string `toml:"content_filter" yaml:"content_filter"`
}

// PasteConfig configures pasting.
type PasteConfig struct {
	// UseClipboard lets the editor read the system clipboard.
	UseClipboard bool `toml:"use_clipboard" yaml:"use_clipboard"`
	// JSON formats pasted JSON.
	JSON bool `toml:"json" yaml:"json"`
	// IndentJSON indents formatted JSON instead of compacting it.
	IndentJSON bool `toml:"indent_json" yaml:"indent_json"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Description: DescriptionConfig{
			Short: true,
		},
	}
}

// Validate checks the settings that have a fixed set of values.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := logger.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
		})
	}
	if c.Styling.Language != "" && c.Styling.Language != "go" {
		errs = append(errs, &ValidationError{
			Path:    "styling.language",
			Message: "unsupported language",
			Value:   c.Styling.Language,
		})
	}
	return errors.Join(errs...)
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Logging.Level,
		EnabledTags:  c.Logging.EnabledTags,
		DisabledTags: c.Logging.DisabledTags,
	}
}

// DescribeOptions returns the options used to describe attributed text.
func (c *Config) DescribeOptions() attributed.DescribeOptions {
	opts := attributed.DescribeOptions{Short: c.Description.Short}
	for _, key := range c.Description.Attributes {
		opts.Described = append(opts.Described, attributed.Key(key))
	}
	return opts
}
