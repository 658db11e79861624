package tty

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// Fallback cell dimensions used when the terminal does not report pixels.
const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
)

// WindowSize is one reading of the terminal geometry. Pixel fields are zero
// when the terminal does not report them.
type WindowSize struct {
	Rows        int
	Cols        int
	PixelWidth  int
	PixelHeight int
}

// CellPixels returns the pixel size of one character cell.
func (ws WindowSize) CellPixels() (width, height int) {
	if ws.PixelWidth > 0 && ws.PixelHeight > 0 && ws.Cols > 0 && ws.Rows > 0 {
		width = ws.PixelWidth / ws.Cols
		height = ws.PixelHeight / ws.Rows
		if width > 0 && height > 0 {
			return width, height
		}
	}
	return defaultCellWidth, defaultCellHeight
}

var (
	termGetSize  = term.GetSize
	queryWinsize = platformWinsize

	errNoSize = errors.New("terminal size unavailable")
)

// ProbeWindowSize queries the terminal geometry. The input descriptor is
// tried first, then the output one. Callers probe before every frame since
// the terminal may be resized between reads.
func ProbeWindowSize(in, out *os.File) (WindowSize, error) {
	files := []*os.File{in, out}
	for _, f := range files {
		if f == nil {
			continue
		}
		if ws, err := queryWinsize(int(f.Fd())); err == nil && ws.Cols > 0 && ws.Rows > 0 {
			return ws, nil
		}
	}
	for _, f := range files {
		if f == nil {
			continue
		}
		width, height, err := termGetSize(int(f.Fd()))
		if err == nil && width > 0 && height > 0 {
			return WindowSize{Rows: height, Cols: width}, nil
		}
	}
	return WindowSize{}, errNoSize
}
