package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingStringer struct {
	calls *int
}

func (s countingStringer) String() string {
	*s.calls++
	return "described"
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"err", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		level, ok := ParseLevel(tt.name)
		assert.Equal(t, tt.want, level, tt.name)
		assert.Equal(t, tt.wantOK, ok, tt.name)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info"}, &buf)
	defer Init(Config{}, nil)

	calls := 0
	Debugf("hidden %v", countingStringer{&calls})
	Infof("shown %d", 42)

	assert.Equal(t, 0, calls, "debug arguments must not be formatted")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 42")
	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error"}, &buf)
	defer Init(Config{}, nil)

	Warnf("first")
	SetLevel(slog.LevelWarn)
	Warnf("second")

	assert.NotContains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}

func TestTagFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", DisabledTags: []string{"noisy"}}, &buf)
	defer Init(Config{}, nil)

	DebugTagf("noisy", "dropped")
	DebugTagf("layout", "kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "tag=layout")
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", EnabledTags: []string{"layout"}}, &buf)
	defer Init(Config{}, nil)

	Debugf("untagged")
	DebugTagf("layout", "tagged")

	assert.NotContains(t, buf.String(), "untagged")
	assert.Contains(t, buf.String(), "tagged")
}

func TestPackageFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", DisabledPackages: []string{"logger"}}, &buf)
	defer Init(Config{}, nil)

	Infof("from this package")

	assert.Empty(t, buf.String())
}

func TestUnknownLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "chatty"}, &buf)
	defer Init(Config{}, nil)

	assert.Contains(t, buf.String(), "unknown log level")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestSignpost(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug"}, &buf)
	defer Init(Config{}, nil)

	sp := Begin("scan", "length: %d", 3)
	sp.End()

	assert.Contains(t, buf.String(), "msg=scan")
	assert.Contains(t, buf.String(), `detail="length: 3"`)
	assert.Contains(t, buf.String(), "elapsed=")
}

func TestSignpostDisabled(t *testing.T) {
	Init(Config{Level: "info"}, nil)

	calls := 0
	sp := Begin("scan", "%v", countingStringer{&calls})
	sp.End()

	assert.Equal(t, 0, calls)
}
