package room

import "time"

// Conn is the transport-side handle of one client connection. Send must not
// block; a connection that cannot take more data drops it.
type Conn interface {
	ID() string
	Send(data []byte) error
	Open() bool
}

// Scheduler runs f once after d. Callbacks are never cancelled, so every
// callback re-checks the room before touching it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
