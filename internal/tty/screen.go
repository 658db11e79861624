package tty

import "io"

const (
	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"
	seqCursorHome   = "\x1b[H"
	seqClearScreen  = "\x1b[2J"
	seqHideCursor   = "\x1b[?25l"
	seqShowCursor   = "\x1b[?25h"
)

// EnterAltScreen switches to the secondary screen buffer, clears it and
// hides the cursor so page output does not reach the shell scrollback.
func EnterAltScreen(w io.Writer) error {
	_, err := io.WriteString(w, seqAltScreenOn+seqCursorHome+seqClearScreen+seqHideCursor)
	return err
}

// LeaveAltScreen shows the cursor and returns to the primary screen buffer.
func LeaveAltScreen(w io.Writer) error {
	_, err := io.WriteString(w, seqShowCursor+seqAltScreenOff)
	return err
}
