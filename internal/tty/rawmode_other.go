//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package tty

import (
	"fmt"

	"golang.org/x/term"
)

// RawMode holds the console state captured by EnterRawMode.
type RawMode struct {
	fd    int
	saved *term.State
}

// EnterRawMode switches fd to raw input. Without termios the closest
// available mode is term.MakeRaw.
func EnterRawMode(fd int) (*RawMode, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("apply raw mode: %w", err)
	}
	return &RawMode{fd: fd, saved: state}, nil
}

// Restore writes back the state captured on entry.
func (m *RawMode) Restore() error {
	if m == nil || m.saved == nil {
		return nil
	}
	if err := term.Restore(m.fd, m.saved); err != nil {
		return fmt.Errorf("restore terminal settings: %w", err)
	}
	return nil
}
