package osuapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterConcurrencySlots(t *testing.T) {
	l := NewLimiter(100, time.Second, 1)

	release := l.Acquire()

	got := make(chan struct{})
	go func() {
		l.Acquire()()
		close(got)
	}()

	select {
	case <-got:
		t.Fatal("second acquire should block while the slot is held")
	case <-time.After(20 * time.Millisecond):
	}

	release()
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("second acquire never ran after release")
	}
}

func TestLimiterWaitAdmits(t *testing.T) {
	l := NewLimiter(100, 100*time.Millisecond, 1)

	start := time.Now()
	l.Wait()
	l.Wait()
	assert.Less(t, time.Since(start), time.Second)
}
