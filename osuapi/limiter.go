package osuapi

import (
	"sync"
	"time"
)

// Limiter spaces requests out over a sliding window and bounds how many
// run at once. The API bans clients that burst.
type Limiter struct {
	ticker *time.Ticker
	window time.Duration
	limit  int

	mu       sync.Mutex
	attempts []time.Time

	slots chan struct{}
}

// NewLimiter allows perWindow requests per window, at most concurrent
// of them in flight.
func NewLimiter(perWindow int, window time.Duration, concurrent int) *Limiter {
	l := &Limiter{
		ticker: time.NewTicker(window / time.Duration(perWindow)),
		window: window,
		limit:  perWindow,
		slots:  make(chan struct{}, concurrent),
	}
	for i := 0; i < concurrent; i++ {
		l.slots <- struct{}{}
	}
	return l
}

// Acquire takes a concurrency slot; call the returned func to release.
func (l *Limiter) Acquire() func() {
	<-l.slots
	return func() {
		l.slots <- struct{}{}
	}
}

// Wait blocks until the sliding window admits another request.
func (l *Limiter) Wait() {
	for range l.ticker.C {
		l.mu.Lock()
		att := l.attempts
		if len(att) < l.limit || time.Since(att[0]) > l.window {
			att = append(att, time.Now())
			if len(att) > l.limit {
				att = att[1:]
			}
			l.attempts = att
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()
	}
}
