package bg

// Sync runs each function on the calling goroutine and returns when it does.
type Sync struct{}

// Do calls fn.
func (Sync) Do(fn func()) {
	fn()
}
