package preload

import "sync/atomic"

// Latch runs a callback once, after CountDown has been called n times.
// CountDown may be called from any goroutine; calls past the n-th are ignored.
type Latch struct {
	remaining atomic.Int64
	fn        func()
}

// NewLatch returns a latch waiting for n count downs. With n <= 0 the
// callback runs immediately on the calling goroutine.
func NewLatch(n int, fn func()) *Latch {
	l := &Latch{fn: fn}
	if n <= 0 {
		l.remaining.Store(0)
		if fn != nil {
			fn()
		}
		return l
	}
	l.remaining.Store(int64(n))
	return l
}

func (l *Latch) CountDown() {
	// Only the call that moves the counter from 1 to 0 sees zero here.
	if l.remaining.Add(-1) == 0 && l.fn != nil {
		l.fn()
	}
}

// Done reports whether the latch has fired.
func (l *Latch) Done() bool {
	return l.remaining.Load() <= 0
}
