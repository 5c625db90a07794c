package app

import "time"

// Clock abstracts wall time and timers so tests can advance virtual time
// instead of sleeping. Timers fired through AfterFunc are never cancelled.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func())
}

type realClock struct{}

// NewRealClock returns a Clock backed by the time package.
func NewRealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
