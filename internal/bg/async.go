package bg

// Async runs each function on a new goroutine. Used by the serve command.
type Async struct{}

// Do starts fn and returns immediately.
func (Async) Do(fn func()) {
	go fn()
}
