package tty

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
)

type modeRestorer interface {
	Restore() error
}

// Session owns the terminal for the lifetime of a viewing session: raw input
// mode plus the alternate screen. Close undoes both exactly once.
type Session struct {
	in        *os.File
	out       io.Writer
	outFile   *os.File
	ownsInput bool
	mode      modeRestorer

	// mu orders output, teardown, suspend and resume.
	mu        sync.Mutex
	closed    bool
	resumed   atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

var (
	exitFn       = os.Exit
	enterRawMode = func(fd int) (modeRestorer, error) { return EnterRawMode(fd) }
)

// OpenTTY opens the controlling terminal and starts a session on it. On
// platforms without /dev/tty the process's standard streams are used.
func OpenTTY() (*Session, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		if runtime.GOOS != "windows" {
			return nil, err
		}
		return Open(os.Stdin, os.Stdout)
	}
	s, err := Open(tty, tty)
	if err != nil {
		_ = tty.Close()
		return nil, err
	}
	s.ownsInput = true
	return s, nil
}

// Open acquires raw mode on in, then switches out to the alternate screen.
func Open(in, out *os.File) (*Session, error) {
	if in == nil || out == nil {
		return nil, errors.New("no tty available")
	}
	mode, err := enterRawMode(int(in.Fd()))
	if err != nil {
		return nil, err
	}
	s := &Session{in: in, out: out, outFile: out, mode: mode}
	if err := EnterAltScreen(out); err != nil {
		_ = mode.Restore()
		return nil, fmt.Errorf("enter alternate screen: %w", err)
	}
	return s, nil
}

// Input returns the descriptor keystrokes are read from.
func (s *Session) Input() *os.File { return s.in }

// Output returns the writer frames are drawn to. Writes are serialized with
// teardown and suspend, and are dropped once the session is closed so nothing
// reaches the primary screen.
func (s *Session) Output() io.Writer { return sessionWriter{s} }

type sessionWriter struct {
	s *Session
}

func (w sessionWriter) Write(p []byte) (int, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	if w.s.closed {
		return len(p), nil
	}
	return w.s.out.Write(p)
}

// Size probes the current window geometry.
func (s *Session) Size() (WindowSize, error) {
	return ProbeWindowSize(s.in, s.outFile)
}

// Close leaves the alternate screen and then restores the captured terminal
// mode. Only the first call has any effect; later calls return its result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true

		var errs []error
		if err := LeaveAltScreen(s.out); err != nil {
			errs = append(errs, fmt.Errorf("leave alternate screen: %w", err))
		}
		if s.mode != nil {
			if err := s.mode.Restore(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.ownsInput && s.in != nil {
			_ = s.in.Close()
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// CatchInterrupts tears the session down and exits when the process is
// interrupted or terminated. The returned func stops watching.
func (s *Session) CatchInterrupts() (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, interruptSignals()...)
	done := make(chan struct{})
	go s.watch(sigCh, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}

func (s *Session) watch(sigCh <-chan os.Signal, done <-chan struct{}) {
	select {
	case sig := <-sigCh:
		_ = s.Close()
		exitFn(exitCode(sig))
	case <-done:
	}
}

// TakeResumed reports whether the session came back from a job-control stop
// since the last call. The screen content is gone after a resume.
func (s *Session) TakeResumed() bool {
	return s.resumed.Swap(false)
}

// suspend hands the terminal back to the shell, stops the process and
// reacquires the terminal once the shell continues it.
func (s *Session) suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	_ = LeaveAltScreen(s.out)
	if s.mode != nil {
		_ = s.mode.Restore()
	}

	_ = stopProcess()

	if s.in != nil {
		if mode, err := enterRawMode(int(s.in.Fd())); err == nil {
			s.mode = mode
		}
	}
	_ = EnterAltScreen(s.out)
	s.resumed.Store(true)
}

func exitCode(sig os.Signal) int {
	if num, ok := sig.(syscall.Signal); ok {
		return 128 + int(num)
	}
	return 1
}
