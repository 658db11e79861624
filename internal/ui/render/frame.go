// Package render draws the text parts of the viewer: the frame around a
// page, its title and page counter, and centered messages.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/rcomic/internal/textutil"
)

const (
	cornerTopLeft     = "┌"
	cornerTopRight    = "┐"
	cornerBottomLeft  = "└"
	cornerBottomRight = "┘"
	ruleHorizontal    = "─"
	ruleVertical      = "│"

	clearScreen = "\x1b[H\x1b[2J"
)

// Compositor writes frames and messages with one theme.
type Compositor struct {
	theme Theme
}

// NewCompositor returns a compositor using theme.
func NewCompositor(theme Theme) *Compositor {
	return &Compositor{theme: theme}
}

// MoveCursor positions the cursor at 1-based row and col.
func MoveCursor(w io.Writer, row, col int) error {
	_, err := fmt.Fprintf(w, "\x1b[%d;%dH", row, col)
	return err
}

func cursorTo(b *strings.Builder, row, col int) {
	b.WriteString("\x1b[")
	b.WriteString(strconv.Itoa(row))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(col))
	b.WriteByte('H')
}

// DrawFrame clears the screen and outlines the whole window. The title sits
// in the top rule and "current/total" is right aligned in the bottom rule;
// either is clipped or left out when the window is too narrow. Windows
// smaller than 2x2 are only cleared.
func (c *Compositor) DrawFrame(w io.Writer, title string, current, total, cols, rows int) error {
	var b strings.Builder
	b.WriteString(clearScreen)
	if cols < 2 || rows < 2 {
		_, err := io.WriteString(w, b.String())
		return err
	}
	inner := cols - 2

	cursorTo(&b, 1, 1)
	b.WriteString(c.topRule(title, inner))

	vertical := c.theme.Frame.Render(ruleVertical)
	for row := 2; row < rows; row++ {
		cursorTo(&b, row, 1)
		b.WriteString(vertical)
		cursorTo(&b, row, cols)
		b.WriteString(vertical)
	}

	cursorTo(&b, rows, 1)
	b.WriteString(c.bottomRule(current, total, inner))

	_, err := io.WriteString(w, b.String())
	return err
}

// topRule is ┌─title───┐ with the title clipped to leave the leading rule.
func (c *Compositor) topRule(title string, inner int) string {
	frame := c.theme.Frame
	if inner < 2 {
		return frame.Render(cornerTopLeft + strings.Repeat(ruleHorizontal, inner) + cornerTopRight)
	}
	clipped, width := textutil.ClipToWidth(textutil.SanitizeTerminalText(title), inner-1)

	var b strings.Builder
	b.WriteString(frame.Render(cornerTopLeft + ruleHorizontal))
	if width > 0 {
		b.WriteString(c.theme.Title.Render(clipped))
	}
	b.WriteString(frame.Render(strings.Repeat(ruleHorizontal, inner-1-width) + cornerTopRight))
	return b.String()
}

// bottomRule is └───i/n┘, or only rules when the counter does not fit after
// the leading rule.
func (c *Compositor) bottomRule(current, total, inner int) string {
	frame := c.theme.Frame
	counter := fmt.Sprintf("%d/%d", current, total)
	width := textutil.DisplayWidth(counter)
	if inner < 2 || width > inner-1 {
		return frame.Render(cornerBottomLeft + strings.Repeat(ruleHorizontal, inner) + cornerBottomRight)
	}
	return frame.Render(cornerBottomLeft+strings.Repeat(ruleHorizontal, inner-width)) +
		c.theme.Counter.Render(counter) +
		frame.Render(cornerBottomRight)
}
