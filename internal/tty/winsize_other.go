//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package tty

// Pixel geometry is not queryable here; ProbeWindowSize falls back to term.GetSize.
func platformWinsize(int) (WindowSize, error) {
	return WindowSize{}, errNoSize
}
