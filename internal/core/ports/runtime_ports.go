package ports

import "time"

// Dispatcher separates the UI goroutine from blocking work. Controller state
// is only ever touched inside functions passed to Post.
type Dispatcher interface {
	Post(fn func())
	Go(fn func())
}

type Timer interface {
	Stop() bool
}

// Scheduler fires callbacks on the UI goroutine.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}
