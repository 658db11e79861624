package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/rcomic/internal/comic"
	"github.com/kk-code-lab/rcomic/internal/config"
	"github.com/kk-code-lab/rcomic/internal/graphics"
	"github.com/kk-code-lab/rcomic/internal/tty"
	renderui "github.com/kk-code-lab/rcomic/internal/ui/render"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	in           *os.File
	out          bytes.Buffer
	closed       int
	interrupts   int
	suspends     int
	stoppedWatch int
}

func (f *fakeTerminal) Input() *os.File   { return f.in }
func (f *fakeTerminal) Output() io.Writer { return &f.out }
func (f *fakeTerminal) Size() (tty.WindowSize, error) {
	return tty.WindowSize{Cols: 40, Rows: 12}, nil
}
func (f *fakeTerminal) TakeResumed() bool { return false }
func (f *fakeTerminal) CatchInterrupts() func() {
	f.interrupts++
	return func() { f.stoppedWatch++ }
}
func (f *fakeTerminal) CatchSuspend() func() {
	f.suspends++
	return func() { f.stoppedWatch++ }
}
func (f *fakeTerminal) Close() error {
	f.closed++
	return nil
}

// newFakeTerminal feeds keys through a pipe that is closed afterwards, so
// the viewer sees EOF once the keys run out.
func newFakeTerminal(t *testing.T, keys string) *fakeTerminal {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(keys)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { _ = r.Close() })
	return &fakeTerminal{in: r}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func makeComic(t *testing.T, root, name string, pages int) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(dir, 0o755))
	for i := 1; i <= pages; i++ {
		writePNG(t, filepath.Join(dir, string(rune('0'+i))+".png"))
	}
	return dir
}

func newTestApp(t *testing.T, term *fakeTerminal, opts Options) *Application {
	t.Helper()
	app, err := NewApplication(opts)
	require.NoError(t, err)
	app.openTerminal = func() (terminal, error) { return term, nil }
	app.resolveMode = func(graphics.Mode) graphics.Mode { return graphics.ModeNone }
	app.colorProfile = func() termenv.Profile { return termenv.Ascii }
	app.theme = renderui.PlainTheme()
	return app
}

func TestRunSingleComicWrapsAndQuits(t *testing.T) {
	root := t.TempDir()
	path := makeComic(t, root, "Solo", 2)
	term := newFakeTerminal(t, "l q")

	app := newTestApp(t, term, Options{Paths: []string{path}})
	require.NoError(t, app.Run())

	out := term.out.String()
	first := strings.Index(out, "1/2┘")
	second := strings.Index(out, "2/2┘")
	require.True(t, first >= 0 && second > first, "expected page 1 then page 2, got %q", out)
	require.Equal(t, 2, strings.Count(out, "1/2┘"), "space after the last page wraps to the first")
	require.Equal(t, 1, term.closed)
	require.Equal(t, 2, term.stoppedWatch)
}

func TestRunStartPage(t *testing.T) {
	root := t.TempDir()
	path := makeComic(t, root, "Solo", 3)
	term := newFakeTerminal(t, "q")

	app := newTestApp(t, term, Options{Paths: []string{path}, StartPage: 3})
	require.NoError(t, app.Run())
	require.Contains(t, term.out.String(), "3/3┘")
	require.NotContains(t, term.out.String(), "1/3┘")
}

func TestRunWalksShelf(t *testing.T) {
	root := t.TempDir()
	a := makeComic(t, root, "Alpha", 2)
	b := makeComic(t, root, "Beta", 1)
	term := newFakeTerminal(t, "llhq")

	app := newTestApp(t, term, Options{Paths: []string{a, b}})
	require.NoError(t, app.Run())

	out := term.out.String()
	alpha := strings.Index(out, "┌─Alpha")
	beta := strings.Index(out, "┌─Beta")
	back := strings.LastIndex(out, "┌─Alpha")
	require.True(t, alpha >= 0 && beta > alpha && back > beta, "expected Alpha, Beta, then Alpha again: %q", out)
	require.Contains(t, out[back:], "2/2┘", "stepping back opens the previous comic on its last page")
	require.NotContains(t, out[back:], "1/2┘")
	require.Equal(t, 0, app.shelf.Index())
}

func TestRunEndsPastLastComicWithoutWrap(t *testing.T) {
	root := t.TempDir()
	a := makeComic(t, root, "Alpha", 1)
	b := makeComic(t, root, "Beta", 1)
	term := newFakeTerminal(t, "llllll")

	cfg := config.Default()
	cfg.Navigation.WrapForward = false
	app := newTestApp(t, term, Options{Paths: []string{a, b}, Config: cfg})
	require.NoError(t, app.Run())
	require.Equal(t, 1, app.shelf.Index())
	require.Equal(t, 1, term.closed)
}

func TestRunLoadErrorBeforeTerminal(t *testing.T) {
	term := newFakeTerminal(t, "")
	app := newTestApp(t, term, Options{Paths: []string{filepath.Join(t.TempDir(), "nope.cbz")}})
	opened := false
	app.openTerminal = func() (terminal, error) {
		opened = true
		return term, nil
	}

	err := app.Run()
	var loadErr *comic.LoadError
	require.True(t, errors.As(err, &loadErr))
	require.False(t, opened, "the terminal must not be touched when the first comic fails")
}

func TestRunLoadErrorInsideSessionRestoresTerminal(t *testing.T) {
	root := t.TempDir()
	a := makeComic(t, root, "Alpha", 1)
	term := newFakeTerminal(t, "l")

	app := newTestApp(t, term, Options{Paths: []string{a, filepath.Join(root, "gone")}})
	err := app.Run()
	var loadErr *comic.LoadError
	require.True(t, errors.As(err, &loadErr))
	require.Equal(t, 1, term.closed)
}

func TestRunFatalRenderErrorRestoresTerminal(t *testing.T) {
	root := t.TempDir()
	a := makeComic(t, root, "Alpha", 1)
	term := newFakeTerminal(t, "")

	cfg := config.Default()
	cfg.Render.MaxBufferBytes = 16
	app := newTestApp(t, term, Options{Paths: []string{a}, Config: cfg})

	err := app.Run()
	require.True(t, errors.Is(err, graphics.ErrAllocation))
	require.Equal(t, 1, term.closed)
}

func TestNewApplicationValidates(t *testing.T) {
	_, err := NewApplication(Options{})
	require.Error(t, err)

	cfg := config.Default()
	cfg.Keys.Next = []string{"NoSuchKey"}
	_, err = NewApplication(Options{Paths: []string{"x"}, Config: cfg})
	require.Error(t, err)

	_, err = NewApplication(Options{Paths: []string{"x"}, StartPage: -1})
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rcomic.log")
	logger, closer, err := NewLogger(path)
	require.NoError(t, err)
	logger.Printf("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "rcomic: ")
	require.Contains(t, string(data), "hello")

	discard, closer, err := NewLogger("")
	require.NoError(t, err)
	discard.Printf("dropped")
	require.NoError(t, closer.Close())
}
