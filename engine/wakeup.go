package engine

// Wakeup is the hook the I/O thread calls immediately after enqueuing
// a flush event: notify(ctx). The ctx value is opaque to the engine —
// typically a pointer to whatever the renderer uses to schedule a
// redraw (e.g. a bubbletea program handle) — and is threaded through
// unmodified so the callback doesn't need a closure over engine state.
type Wakeup struct {
	Ctx    interface{}
	Notify func(ctx interface{})
}

func (w Wakeup) fire() {
	if w.Notify != nil {
		w.Notify(w.Ctx)
	}
}
