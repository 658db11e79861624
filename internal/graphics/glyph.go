package graphics

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/muesli/termenv"
)

const upperHalfBlock = "▀"

// asciiRamp orders glyphs from dark to light for terminals without color.
const asciiRamp = " .:-=+*#%@"

// writeGlyphs draws two pixel rows per cell: the upper half block takes the
// top pixel as foreground and the bottom pixel as background.
func (e *Encoder) writeGlyphs(out *bytes.Buffer, img image.Image, cols, rows int) {
	scaled := imaging.Resize(img, cols, rows*2, e.filter)
	for y := 0; y < rows; y++ {
		if y > 0 {
			fmt.Fprintf(out, "\x1b[1B\x1b[%dD", cols)
		}
		for x := 0; x < cols; x++ {
			top := flatten(scaled.NRGBAAt(x, 2*y))
			bottom := flatten(scaled.NRGBAAt(x, 2*y+1))
			out.WriteString(e.glyph(top, bottom))
		}
	}
}

func (e *Encoder) glyph(top, bottom color.RGBA) string {
	if e.profile == termenv.Ascii {
		l := (luminance(top) + luminance(bottom)) / 2
		idx := int(math.Round(l * float64(len(asciiRamp)-1)))
		return string(asciiRamp[clamp(idx, 0, len(asciiRamp)-1)])
	}
	return e.profile.String(upperHalfBlock).
		Foreground(e.profile.FromColor(top)).
		Background(e.profile.FromColor(bottom)).
		String()
}

// flatten composites c over black.
func flatten(c color.NRGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 0xff),
		G: uint8(uint16(c.G) * a / 0xff),
		B: uint8(uint16(c.B) * a / 0xff),
		A: 0xff,
	}
}

func luminance(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 0xff
}
