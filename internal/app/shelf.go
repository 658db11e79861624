package app

import (
	"github.com/kk-code-lab/rcomic/internal/comic"
	statepkg "github.com/kk-code-lab/rcomic/internal/state"
)

// Shelf is the ordered list of comics given on the command line. Only the
// comic being read is held in memory.
type Shelf struct {
	paths   []string
	load    func(string) (*comic.Comic, error)
	index   int
	current *comic.Comic

	wrapForward  bool
	wrapBackward bool
}

// NewShelf returns a shelf over paths. wrapForward and wrapBackward decide
// whether stepping past either end of the shelf comes back around.
func NewShelf(paths []string, load func(string) (*comic.Comic, error), wrapForward, wrapBackward bool) *Shelf {
	if load == nil {
		load = comic.Load
	}
	return &Shelf{paths: paths, load: load, wrapForward: wrapForward, wrapBackward: wrapBackward}
}

// Len returns the number of comics.
func (s *Shelf) Len() int { return len(s.paths) }

// Index returns the position of the current comic.
func (s *Shelf) Index() int { return s.index }

// Current returns the open comic, or nil before the first Open.
func (s *Shelf) Current() *comic.Comic { return s.current }

// Open loads comic i and makes it current.
func (s *Shelf) Open(i int) (*comic.Comic, error) {
	c, err := s.load(s.paths[i])
	if err != nil {
		return nil, err
	}
	s.index = i
	s.current = c
	return c, nil
}

// NavigatorOptions returns the page wrapping for the current comic. A lone
// comic wraps onto itself; on a longer shelf the ends of a comic lead to
// its neighbours instead.
func (s *Shelf) NavigatorOptions(start int) statepkg.NavigatorOptions {
	if s.Len() == 1 {
		return statepkg.NavigatorOptions{WrapForward: s.wrapForward, WrapBackward: s.wrapBackward, Start: start}
	}
	return statepkg.NavigatorOptions{Start: start}
}

// Step picks the comic to continue with after a navigator stopped for
// reason. atEnd asks to open it on its last page. ok is false when the
// session should end.
func (s *Shelf) Step(reason statepkg.ExitReason) (next int, atEnd bool, ok bool) {
	last := s.Len() - 1
	switch reason {
	case statepkg.ReasonBoundaryAfterLast:
		switch {
		case s.index < last:
			return s.index + 1, false, true
		case s.wrapForward && last > 0:
			return 0, false, true
		}
	case statepkg.ReasonBoundaryBeforeFirst:
		switch {
		case s.index > 0:
			return s.index - 1, true, true
		case s.wrapBackward && last > 0:
			return last, true, true
		}
	}
	return s.index, false, false
}
