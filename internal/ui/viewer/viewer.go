// Package viewer runs the page loop: draw the current page, wait for one
// key, apply it, repeat.
package viewer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/kk-code-lab/rcomic/internal/comic"
	"github.com/kk-code-lab/rcomic/internal/graphics"
	statepkg "github.com/kk-code-lab/rcomic/internal/state"
	"github.com/kk-code-lab/rcomic/internal/tty"
	renderui "github.com/kk-code-lab/rcomic/internal/ui/render"
)

// PageDecoder turns encoded page bytes into pixels.
type PageDecoder interface {
	Decode(data []byte) (*graphics.PixelBuffer, error)
}

// PageEncoder turns pixels into terminal output.
type PageEncoder interface {
	Preamble() string
	Render(buf *graphics.PixelBuffer, cols, rows int, cell graphics.CellSize) ([]byte, error)
}

// FrameDrawer draws the text around and instead of pages.
type FrameDrawer interface {
	DrawFrame(w io.Writer, title string, current, total, cols, rows int) error
	DrawMessage(w io.Writer, msg string, cols, rows int) error
}

// ActionSource blocks until the user picks the next action. io.EOF ends the
// session like a quit key.
type ActionSource interface {
	NextAction() (statepkg.Action, error)
}

// Options are the fitting settings, fixed for the whole session.
type Options struct {
	Scale   float64
	Zoom    bool
	Stretch bool
	// FontRatio is cell width over cell height; zero derives it from the
	// reported window pixel size.
	FontRatio float64
}

// Viewer draws one comic at a time onto a terminal.
type Viewer struct {
	out     *bufio.Writer
	probe   func() (tty.WindowSize, error)
	decoder PageDecoder
	encoder PageEncoder
	drawer  FrameDrawer
	actions ActionSource
	resumed func() bool
	opts    Options
	logger  *log.Logger
}

// Config wires a Viewer.
type Config struct {
	Output  io.Writer
	Probe   func() (tty.WindowSize, error)
	Decoder PageDecoder
	Encoder PageEncoder
	Drawer  FrameDrawer
	Actions ActionSource
	// Resumed reports a job-control resume since the last call; the screen
	// is redrawn after the next key when it returns true.
	Resumed func() bool
	Options Options
	Logger  *log.Logger
}

// New returns a viewer. A nil Logger discards log output.
func New(cfg Config) *Viewer {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Viewer{
		out:     bufio.NewWriter(cfg.Output),
		probe:   cfg.Probe,
		decoder: cfg.Decoder,
		encoder: cfg.Encoder,
		drawer:  cfg.Drawer,
		actions: cfg.Actions,
		resumed: cfg.Resumed,
		opts:    cfg.Options,
		logger:  logger,
	}
}

// Run shows c until nav stops. Decode failures are shown in place of the
// page; any other rendering failure stops nav with ReasonError and is
// returned. The caller owns the terminal session and tears it down after
// Run returns.
func (v *Viewer) Run(c *comic.Comic, nav *statepkg.Navigator) error {
	for nav.Running() {
		ws, err := v.probe()
		if err != nil {
			nav.Fail(fmt.Errorf("probe window size: %w", err))
			break
		}
		if nav.Refresh() {
			if err := v.renderPage(c, nav.Index(), ws); err != nil {
				nav.Fail(err)
				break
			}
			nav.MarkDrawn()
		}

		action, err := v.actions.NextAction()
		if err != nil {
			if errors.Is(err, io.EOF) {
				nav.Apply(statepkg.QuitAction{})
				continue
			}
			nav.Fail(fmt.Errorf("read key: %w", err))
			break
		}
		nav.Apply(action)
		if v.resumed != nil && v.resumed() {
			nav.Apply(statepkg.RedrawAction{})
		}
	}
	v.logger.Printf("leaving %q at page %d/%d: %s", c.Name, nav.Index()+1, nav.Total(), nav.Reason())
	return nav.Err()
}

// renderPage draws the frame first, then the page (or a message in its
// place), and flushes once.
func (v *Viewer) renderPage(c *comic.Comic, index int, ws tty.WindowSize) error {
	if _, err := v.out.WriteString(v.encoder.Preamble()); err != nil {
		return err
	}

	current := 0
	if c.Len() > 0 {
		current = index + 1
	}
	if err := v.drawer.DrawFrame(v.out, c.Name, current, c.Len(), ws.Cols, ws.Rows); err != nil {
		return err
	}

	if err := v.drawPage(c, index, ws); err != nil {
		return err
	}
	return v.out.Flush()
}

func (v *Viewer) drawPage(c *comic.Comic, index int, ws tty.WindowSize) error {
	page, ok := c.Page(index)
	if !ok {
		return v.drawer.DrawMessage(v.out, renderui.MessageEmptyList, ws.Cols, ws.Rows)
	}

	buf, err := v.decoder.Decode(page.Bytes())
	if err != nil {
		var decodeErr *graphics.DecodeError
		if errors.As(err, &decodeErr) {
			v.logger.Printf("page %d (%s) of %q: %v", index+1, page.Name, c.Name, err)
			return v.drawer.DrawMessage(v.out, renderui.MessageNotImage, ws.Cols, ws.Rows)
		}
		return fmt.Errorf("page %d (%s): %w", index+1, page.Name, err)
	}
	defer buf.Release()

	boxW, boxH := graphics.RequestedBox(ws.Cols, ws.Rows, v.opts.Scale)
	imgW, imgH := graphics.ComputeGeometry(buf.Width, buf.Height, boxW, boxH, v.opts.Zoom, v.opts.Stretch, v.fontRatio(ws))
	if imgW == 0 || imgH == 0 {
		return nil
	}

	cellW, cellH := ws.CellPixels()
	data, err := v.encoder.Render(buf, imgW, imgH, graphics.CellSize{Width: cellW, Height: cellH})
	if err != nil {
		return fmt.Errorf("page %d (%s): %w", index+1, page.Name, err)
	}

	placement := graphics.PlaceImage(ws.Cols, ws.Rows, boxW, boxH, imgW, imgH)
	if err := renderui.MoveCursor(v.out, placement.Row, placement.Col); err != nil {
		return err
	}
	_, err = v.out.Write(data)
	return err
}

func (v *Viewer) fontRatio(ws tty.WindowSize) float64 {
	if v.opts.FontRatio > 0 {
		return v.opts.FontRatio
	}
	if ws.PixelWidth > 0 && ws.PixelHeight > 0 {
		w, h := ws.CellPixels()
		return float64(w) / float64(h)
	}
	return graphics.DefaultFontRatio
}
