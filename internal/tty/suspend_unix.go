//go:build !windows

package tty

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// stopProcess stops only this process. SIGSTOP cannot be caught, so the
// SIGTSTP handler below does not see it again.
var stopProcess = func() error {
	return syscall.Kill(syscall.Getpid(), syscall.SIGSTOP)
}

// CatchSuspend makes Ctrl-Z (SIGTSTP) restore the terminal before the
// process stops and reacquire it when the shell resumes it. The returned
// func stops watching.
func (s *Session) CatchSuspend() (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTSTP)
	done := make(chan struct{})
	go s.watchSuspend(sigCh, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}

func (s *Session) watchSuspend(sigCh <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-sigCh:
			s.suspend()
		case <-done:
			return
		}
	}
}
