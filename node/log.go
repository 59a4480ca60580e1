package node

import "log"

// Logger is the engine's logging sink (§7: "the engine logs one line per
// rejection and one line per accepted block"). The teacher's own
// non-build-tagged packages never reach for a structured logging library
// for this kind of terse, one-line-per-event output — they print
// directly with fmt/log — so this stays a thin wrapper over the standard
// log package rather than adding slog/zap here.
type Logger interface {
	Printf(format string, args ...any)
}

// StdLogger adapts the standard library's *log.Logger to the Logger
// interface.
type StdLogger struct {
	*log.Logger
}

// NewStdLogger returns a Logger writing to the standard logger with the
// "chain: " prefix the original chain engine's own log lines carried.
func NewStdLogger() StdLogger {
	return StdLogger{log.New(log.Writer(), "chain: ", log.LstdFlags)}
}

// nopLogger discards everything; used as the default for tests that
// don't care about log output.
type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
