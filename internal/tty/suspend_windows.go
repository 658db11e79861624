//go:build windows

package tty

var stopProcess = func() error { return nil }

// CatchSuspend is a no-op: Windows consoles have no job-control stop.
func (s *Session) CatchSuspend() (stop func()) {
	return func() {}
}
