package node

import "time"

// TimeSource is the engine's time collaborator (§6): now() -> seconds
// since the Unix epoch. Abstracted so tests can inject a fixed clock
// instead of racing the wall clock.
type TimeSource interface {
	Now() int64
}

// SystemClock is the default TimeSource, backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().Unix() }

// FixedClock is a TimeSource that always returns the same instant; used
// by tests that need deterministic "time too new" boundaries.
type FixedClock int64

func (c FixedClock) Now() int64 { return int64(c) }
