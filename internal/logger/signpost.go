package logger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Signpost measures an interval of work.
type Signpost struct {
	name    string
	message string
	pc      uintptr
	start   time.Time
	enabled bool
}

// Begin starts a signpost. The message is only formatted when debug
// logging is enabled.
func Begin(name, format string, args ...any) *Signpost {
	sp := &Signpost{name: name, enabled: Enabled(slog.LevelDebug)}
	if !sp.enabled {
		return sp
	}

	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	sp.pc = pcs[0]
	sp.message = fmt.Sprintf(format, args...)
	sp.start = time.Now()
	return sp
}

// End logs the elapsed time since Begin.
func (sp *Signpost) End() {
	if sp == nil || !sp.enabled {
		return
	}

	r := slog.NewRecord(time.Now(), slog.LevelDebug, sp.name, sp.pc)
	r.AddAttrs(
		slog.String(tagKey, "signpost"),
		slog.String("detail", sp.message),
		slog.Duration("elapsed", time.Since(sp.start)),
	)
	_ = Get().Handler().Handle(context.Background(), r)
}
