package runtime

import (
	"context"
	"sync"
)

// Loop owns the UI goroutine. Every controller method and every timer or
// request callback runs inside Run, one at a time.
type Loop struct {
	queue chan func()
	wg    sync.WaitGroup
}

func NewLoop() *Loop {
	return &Loop{queue: make(chan func(), 64)}
}

// Post queues fn for the UI goroutine. It blocks only while the queue is full.
func (l *Loop) Post(fn func()) {
	l.queue <- fn
}

// Go runs fn on its own goroutine for blocking work such as HTTP calls.
func (l *Loop) Go(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// Run executes queued functions until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Wait blocks until every function started with Go has returned.
func (l *Loop) Wait() {
	l.wg.Wait()
}
