// Package bg decides whether background loops run on their own goroutine.
//
// The reaper hands its sweep loop to a Runner instead of calling "go" itself,
// so the serve command runs it concurrently while tests can run the same loop
// inline on the caller's goroutine.
package bg

// Runner executes fn, either inline or on a new goroutine.
type Runner interface {
	Do(fn func())
}
