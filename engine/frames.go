package engine

import "sync"

// FrameQueue collects callbacks to run on the next frame. Post is safe from
// any goroutine; RunPending must only be called from the game goroutine.
type FrameQueue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *FrameQueue) Post(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// RunPending runs the callbacks queued so far and returns how many ran.
// Callbacks posted while running wait for the next call.
func (q *FrameQueue) RunPending() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (q *FrameQueue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
