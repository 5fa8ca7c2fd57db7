package runtime

import (
	"sync"
	"time"

	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

// Clock is the wall-clock scheduler. Callbacks are posted to the Dispatcher
// instead of running on the timer goroutine.
type Clock struct {
	dispatcher ports.Dispatcher
}

func NewClock(dispatcher ports.Dispatcher) *Clock {
	return &Clock{dispatcher: dispatcher}
}

func (c *Clock) Now() time.Time {
	return time.Now()
}

func (c *Clock) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return time.AfterFunc(d, func() {
		c.dispatcher.Post(fn)
	})
}

func (c *Clock) Every(d time.Duration, fn func()) ports.Timer {
	t := &ticker{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				c.dispatcher.Post(fn)
			}
		}
	}()
	return t
}

type ticker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
