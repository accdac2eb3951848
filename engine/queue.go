package engine

import "sync"

// EventQueue is the thread-safe, double-buffered handoff between the I/O
// thread and the render/main thread. Push appends under a mutex; PopAll
// swaps the internal buffer with the caller-supplied scratch slice so the
// critical section stays O(1) regardless of queue depth.
type EventQueue struct {
	mu      sync.Mutex
	pending []Event
}

// Push appends an event. Called only from the I/O thread.
func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	q.pending = append(q.pending, e)
	q.mu.Unlock()
}

// PopAll drains every pending event into the returned slice and hands back
// out (truncated to zero length) for the queue to reuse on its next fill,
// avoiding a per-frame allocation on the steady-state path. Called only
// from the render/main thread.
func (q *EventQueue) PopAll(out []Event) []Event {
	q.mu.Lock()
	q.pending, out = out[:0], q.pending
	q.mu.Unlock()
	return out
}

// Deinit drops any residual queued events, releasing their owned payloads.
func (q *EventQueue) Deinit() {
	q.mu.Lock()
	q.pending = nil
	q.mu.Unlock()
}
