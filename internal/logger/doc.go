// Package logger provides leveled, filterable structured logging on top of
// log/slog.
//
// The package keeps one process-wide logger. Until Init is called every
// record is discarded, so library code can log unconditionally:
//
//	logger.Init(logger.Config{Level: "debug"}, os.Stderr)
//	logger.Debugf("request: %v", req)
//
// Formatting is lazy: the level is checked before the message is built, so
// arguments implementing fmt.Stringer are only rendered when the record is
// actually written.
//
// Records can carry a tag (DebugTagf) and be filtered by tag or by the
// package they originate from.
//
// Signposts measure an interval and log its duration at debug level:
//
//	sp := logger.Begin("scan glyphs", "length: %d", n)
//	defer sp.End()
package logger
