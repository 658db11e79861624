//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package tty

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// RawMode holds the line-discipline settings captured by EnterRawMode.
type RawMode struct {
	fd    int
	saved unix.Termios
}

// EnterRawMode captures the current settings of fd, then turns off echo and
// canonical input so single keystrokes are delivered immediately. Signal
// generation (Ctrl-C) is left on.
func EnterRawMode(fd int) (*RawMode, error) {
	current, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("read terminal settings: %w", err)
	}
	mode := &RawMode{fd: fd, saved: *current}

	raw := *current
	raw.Lflag &^= unix.ECHO | unix.ICANON
	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, &raw); err != nil {
		return nil, fmt.Errorf("apply raw mode: %w", err)
	}
	return mode, nil
}

// Restore writes back the exact settings captured on entry.
func (m *RawMode) Restore() error {
	if m == nil {
		return nil
	}
	saved := m.saved
	if err := unix.IoctlSetTermios(m.fd, ioctlSetTermiosFlush, &saved); err != nil {
		return fmt.Errorf("restore terminal settings: %w", err)
	}
	return nil
}
