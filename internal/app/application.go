// Package app wires configuration, comics and the terminal into a viewing
// session.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kk-code-lab/rcomic/internal/comic"
	"github.com/kk-code-lab/rcomic/internal/config"
	"github.com/kk-code-lab/rcomic/internal/graphics"
	statepkg "github.com/kk-code-lab/rcomic/internal/state"
	"github.com/kk-code-lab/rcomic/internal/tty"
	inputui "github.com/kk-code-lab/rcomic/internal/ui/input"
	renderui "github.com/kk-code-lab/rcomic/internal/ui/render"
	viewerui "github.com/kk-code-lab/rcomic/internal/ui/viewer"
	"github.com/muesli/termenv"
)

// terminal is the part of *tty.Session the application drives.
type terminal interface {
	Input() *os.File
	Output() io.Writer
	Size() (tty.WindowSize, error)
	TakeResumed() bool
	CatchInterrupts() (stop func())
	CatchSuspend() (stop func())
	Close() error
}

// Options configure one run.
type Options struct {
	Paths []string
	// StartPage is the 1-based page the first comic opens on; zero means the
	// first page.
	StartPage int
	Config    *config.Config
	Logger    *log.Logger
}

// Application represents the running app.
type Application struct {
	cfg       *config.Config
	logger    *log.Logger
	shelf     *Shelf
	keymap    *inputui.Keymap
	startPage int

	openTerminal func() (terminal, error)
	resolveMode  func(graphics.Mode) graphics.Mode
	colorProfile func() termenv.Profile
	theme        renderui.Theme
}

// NewApplication validates the options. Nothing touches the terminal yet.
func NewApplication(opts Options) (*Application, error) {
	if len(opts.Paths) == 0 {
		return nil, errors.New("no comic given")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	keymap, err := inputui.NewKeymap(cfg.Keys)
	if err != nil {
		return nil, err
	}
	if opts.StartPage < 0 {
		return nil, fmt.Errorf("start page must be positive, got %d", opts.StartPage)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Application{
		cfg:       cfg,
		logger:    logger,
		shelf:     NewShelf(opts.Paths, comic.Load, cfg.Navigation.WrapForward, cfg.Navigation.WrapBackward),
		keymap:    keymap,
		startPage: opts.StartPage,
		openTerminal: func() (terminal, error) {
			return tty.OpenTTY()
		},
		resolveMode:  graphics.ResolveMode,
		colorProfile: termenv.EnvColorProfile,
		theme:        renderui.DefaultTheme(),
	}, nil
}

// Run reads the shelf until the user quits or steps past its ends. The first
// comic is loaded and the pixel mode resolved before the terminal switches
// to the viewer, so those failures print on the normal screen. Any error
// from inside the session is returned after the terminal is restored.
func (app *Application) Run() (err error) {
	c, err := app.shelf.Open(0)
	if err != nil {
		return err
	}
	app.logger.Printf("loaded %q: %d pages", c.Name, c.Len())

	mode := app.resolveMode(app.cfg.PixelMode())
	app.logger.Printf("pixel mode %s (configured %s)", mode, app.cfg.Render.Mode)

	term, err := app.openTerminal()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	stopInterrupts := term.CatchInterrupts()
	stopSuspend := term.CatchSuspend()
	defer func() {
		stopSuspend()
		stopInterrupts()
		if closeErr := term.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	if err := flushPendingInput(term.Input()); err != nil {
		app.logger.Printf("flush pending input: %v", err)
	}

	viewer := viewerui.New(viewerui.Config{
		Output:  term.Output(),
		Probe:   term.Size,
		Decoder: graphics.NewDecoder(app.cfg.Render.Channels, app.cfg.Render.MaxBufferBytes),
		Encoder: graphics.NewEncoder(mode, app.colorProfile()),
		Drawer:  renderui.NewCompositor(app.theme),
		Actions: inputui.NewInputHandler(inputui.NewKeyReader(term.Input()), app.keymap),
		Resumed: term.TakeResumed,
		Options: viewerui.Options{
			Scale:     app.cfg.Render.Scale,
			Zoom:      app.cfg.Render.Zoom,
			Stretch:   app.cfg.Render.Stretch,
			FontRatio: app.cfg.Render.FontRatio,
		},
		Logger: app.logger,
	})

	start := app.startPage - 1
	for {
		nav := statepkg.NewNavigator(c.Len(), app.shelf.NavigatorOptions(start))
		if err := viewer.Run(c, nav); err != nil {
			return err
		}

		next, atEnd, ok := app.shelf.Step(nav.Reason())
		if !ok {
			return nil
		}
		if c, err = app.shelf.Open(next); err != nil {
			return err
		}
		app.logger.Printf("loaded %q: %d pages", c.Name, c.Len())
		start = 0
		if atEnd {
			start = c.Len() - 1
		}
	}
}
