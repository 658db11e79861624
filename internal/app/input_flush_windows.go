//go:build windows

package app

import (
	"os"

	"golang.org/x/sys/windows"
)

// flushPendingInput drops keystrokes (and terminal query replies) queued
// before the session started so they are not read as page actions.
func flushPendingInput(in *os.File) error {
	handle := windows.Handle(in.Fd())
	if in == os.Stdin {
		h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
		if err != nil {
			return err
		}
		handle = h
	}
	return windows.FlushConsoleInputBuffer(handle)
}
