package graphics

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/BourgeoisBear/rasterm"
	"github.com/disintegration/imaging"
	"github.com/mattn/go-sixel"
	"github.com/muesli/termenv"
)

// kittyDeleteAll removes every image placement; kitty images survive a
// screen clear, so each frame starts with it.
const kittyDeleteAll = "\x1b_Ga=d\x1b\\"

// CellSize is the pixel size of one character cell.
type CellSize struct {
	Width  int
	Height int
}

// Encoder renders pixel buffers into terminal output for one mode.
type Encoder struct {
	mode    Mode
	profile termenv.Profile
	filter  imaging.ResampleFilter
}

// NewEncoder returns an encoder for mode. profile only affects ModeNone, where
// it decides how many colors the glyph output may use.
func NewEncoder(mode Mode, profile termenv.Profile) *Encoder {
	return &Encoder{mode: mode, profile: profile, filter: imaging.Lanczos}
}

// Mode reports the protocol this encoder emits.
func (e *Encoder) Mode() Mode { return e.mode }

// Preamble is written before each frame to discard images the screen clear
// does not reach.
func (e *Encoder) Preamble() string {
	if e.mode == ModeKitty {
		return kittyDeleteAll
	}
	return ""
}

// Render draws buf into a cols x rows cell area. The output holds every
// cursor movement the protocol needs, so the caller only positions the
// cursor at the top-left cell beforehand.
func (e *Encoder) Render(buf *PixelBuffer, cols, rows int, cell CellSize) ([]byte, error) {
	if cols <= 0 || rows <= 0 {
		return nil, &EncodeError{Mode: e.mode, Err: fmt.Errorf("empty target %dx%d", cols, rows)}
	}
	img, err := buf.Image()
	if err != nil {
		return nil, &EncodeError{Mode: e.mode, Err: err}
	}
	if cell.Width <= 0 || cell.Height <= 0 {
		cell = CellSize{Width: 8, Height: 16}
	}
	pixelWidth, pixelHeight := cols*cell.Width, rows*cell.Height

	var out bytes.Buffer
	switch e.mode {
	case ModeNone:
		e.writeGlyphs(&out, img, cols, rows)
	case ModeSixel:
		enc := sixel.NewEncoder(&out)
		enc.Dither = true
		err = enc.Encode(imaging.Resize(img, pixelWidth, pixelHeight, e.filter))
	case ModeKitty:
		err = rasterm.KittyWriteImage(&out, e.shrink(img, pixelWidth, pixelHeight), rasterm.KittyImgOpts{
			DstCols: uint32(cols),
			DstRows: uint32(rows),
		})
	case ModeITerm:
		err = rasterm.ItermWriteImage(&out, imaging.Resize(img, pixelWidth, pixelHeight, e.filter))
	default:
		err = errors.New("mode must be resolved before encoding")
	}
	if err != nil {
		return nil, &EncodeError{Mode: e.mode, Err: err}
	}
	return out.Bytes(), nil
}

// shrink downsamples img when it is larger than the target area; the kitty
// protocol scales on the terminal side, so upscaling would only grow the
// payload.
func (e *Encoder) shrink(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width && b.Dy() <= height {
		return img
	}
	return imaging.Fit(img, width, height, e.filter)
}
