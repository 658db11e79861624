//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package tty

import "golang.org/x/sys/unix"

func platformWinsize(fd int) (WindowSize, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return WindowSize{}, err
	}
	return WindowSize{
		Rows:        int(ws.Row),
		Cols:        int(ws.Col),
		PixelWidth:  int(ws.Xpixel),
		PixelHeight: int(ws.Ypixel),
	}, nil
}
