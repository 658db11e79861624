package render

import (
	"io"
	"strings"

	"github.com/kk-code-lab/rcomic/internal/textutil"
)

// Messages shown in place of a page.
const (
	MessageNotImage  = "Not an image file"
	MessageEmptyList = "The list is empty, press 'q' to quit"
)

// DrawMessage writes msg on row rows/2, centered between the frame's
// vertical rules and clipped to fit inside them.
func (c *Compositor) DrawMessage(w io.Writer, msg string, cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	available := cols - 2
	if available < 1 {
		available = cols
	}
	clipped, width := textutil.ClipToWidth(textutil.SanitizeTerminalText(msg), available)

	row := rows / 2
	if row < 1 {
		row = 1
	}
	col := (cols-width)/2 + 1

	var b strings.Builder
	cursorTo(&b, row, col)
	b.WriteString(c.theme.Message.Render(clipped))
	_, err := io.WriteString(w, b.String())
	return err
}
