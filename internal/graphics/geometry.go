package graphics

import "math"

// DefaultScale shrinks the drawable box to leave room for the window chrome.
const DefaultScale = 0.93

// DefaultFontRatio is the width/height ratio of a typical character cell.
const DefaultFontRatio = 0.5

// ComputeGeometry fits a srcWidth x srcHeight pixel image into a box of
// boxWidth x boxHeight cells.
//
// Without zoom the box is first clamped to the source size so images are
// only ever scaled down. Without stretch the aspect ratio is preserved,
// corrected by fontRatio (cell width / cell height). The result never
// exceeds the box.
func ComputeGeometry(srcWidth, srcHeight, boxWidth, boxHeight int, zoom, stretch bool, fontRatio float64) (width, height int) {
	if srcWidth <= 0 || srcHeight <= 0 || boxWidth <= 0 || boxHeight <= 0 {
		return 0, 0
	}
	if fontRatio <= 0 {
		fontRatio = DefaultFontRatio
	}

	width, height = boxWidth, boxHeight
	if !zoom {
		width = min(width, srcWidth)
		height = min(height, srcHeight)
	}
	if stretch {
		return width, height
	}

	srcAspect := float64(srcWidth) / float64(srcHeight)
	boxAspect := float64(width) / float64(height) * fontRatio
	switch {
	case srcAspect > boxAspect:
		height = int(math.Round(float64(width) * fontRatio / srcAspect))
	case srcAspect < boxAspect:
		width = int(math.Round(float64(height) * srcAspect / fontRatio))
	}

	width = clamp(width, 1, boxWidth)
	height = clamp(height, 1, boxHeight)
	return width, height
}

// RequestedBox is the cell area pages are fitted into: the terminal size
// shrunk by scale, rounded down.
func RequestedBox(cols, rows int, scale float64) (width, height int) {
	if scale <= 0 || scale > 1 {
		scale = DefaultScale
	}
	width = int(float64(cols) * scale)
	height = int(float64(rows) * scale)
	return max(width, 0), max(height, 0)
}

// Placement holds 1-based cursor coordinates for drawing a page.
type Placement struct {
	// BoxRow and BoxCol locate the top-left cell of the requested box.
	BoxRow int
	BoxCol int
	// Row and Col locate the top-left cell of the fitted image, centered
	// inside the box.
	Row int
	Col int
}

// PlaceImage centers the requested box in the terminal, keeping at least a
// one-cell margin, then centers the fitted image inside the box.
func PlaceImage(cols, rows, boxWidth, boxHeight, imgWidth, imgHeight int) Placement {
	p := Placement{
		BoxCol: (cols-boxWidth)/2 + 1,
		BoxRow: (rows-boxHeight)/2 + 1,
	}
	p.Col = p.BoxCol + max(boxWidth-imgWidth, 0)/2
	p.Row = p.BoxRow + max(boxHeight-imgHeight, 0)/2
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
