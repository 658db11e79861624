package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kk-code-lab/rcomic/internal/app"
	"github.com/kk-code-lab/rcomic/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type flags struct {
	config    string
	mode      string
	scale     float64
	zoom      bool
	stretch   bool
	logFile   string
	startPage int
}

var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// run is swapped out in tests so the command can be exercised without a
// terminal.
var run = func(opts app.Options) error {
	application, err := app.NewApplication(opts)
	if err != nil {
		return err
	}
	return application.Run()
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "rcomic [flags] <comic>...",
		Short: "Read comics and images in the terminal",
		Long: `rcomic shows comic pages inside a terminal window using sixel, kitty or
iTerm2 graphics, or colored half-block glyphs when none are available.

A comic is a directory of images, a .cbz/.zip archive or a single image.
Several comics are read one after another.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdout.Fd()) {
				return errors.New("stdout is not a terminal")
			}

			logger, closer, err := app.NewLogger(cfg.Log.File)
			if err != nil {
				return err
			}
			defer closer.Close()

			return run(app.Options{
				Paths:     args,
				StartPage: f.startPage,
				Config:    cfg,
				Logger:    logger,
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "config file (default $XDG_CONFIG_HOME/rcomic/config.toml)")
	fl.StringVarP(&f.mode, "mode", "m", "", "pixel mode: auto, none, sixel, kitty, iterm")
	fl.Float64VarP(&f.scale, "scale", "s", 0, "share of the window used for the page, in (0, 1]")
	fl.BoolVarP(&f.zoom, "zoom", "z", false, "enlarge small pages to fill the box")
	fl.BoolVar(&f.stretch, "stretch", false, "fill the box ignoring the page aspect ratio")
	fl.StringVar(&f.logFile, "log-file", "", "write diagnostics to this file")
	fl.IntVarP(&f.startPage, "start-page", "p", 0, "1-based page to open the first comic on")
	return cmd
}

// loadConfig reads the config file and environment, then applies flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.config != "" {
		cfg, err = config.LoadFromPath(f.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("mode") {
		cfg.Render.Mode = f.mode
	}
	if fl.Changed("scale") {
		cfg.Render.Scale = f.scale
	}
	if fl.Changed("zoom") {
		cfg.Render.Zoom = f.zoom
	}
	if fl.Changed("stretch") {
		cfg.Render.Stretch = f.stretch
	}
	if fl.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func execute(args []string, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}
