// Package comic loads the ordered pages of a comic from a directory of images
// or a CBZ/ZIP archive.
package comic

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotComic is returned for paths that are neither a directory, an archive
// nor a single image.
var ErrNotComic = errors.New("not a comic: expected a directory, .cbz/.zip archive or image")

// LoadError reports a comic that could not be opened. It is fatal: the
// viewer never starts for a comic it cannot list.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load comic %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Page is one encoded image of a comic.
type Page struct {
	Name string
	data []byte
}

// NewPage wraps encoded image bytes.
func NewPage(name string, data []byte) Page {
	return Page{Name: name, data: data}
}

// Bytes returns the encoded image. Callers must not modify it.
func (p Page) Bytes() []byte { return p.data }

// Len is the encoded size in bytes.
func (p Page) Len() int { return len(p.data) }

// Comic is a named, fixed sequence of pages.
type Comic struct {
	Name  string
	Path  string
	pages []Page
}

// New builds a comic from pages already in reading order.
func New(name, path string, pages []Page) *Comic {
	return &Comic{Name: name, Path: path, pages: pages}
}

// Len returns the page count.
func (c *Comic) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pages)
}

// Page returns page i and whether it exists.
func (c *Comic) Page(i int) (Page, bool) {
	if i < 0 || i >= c.Len() {
		return Page{}, false
	}
	return c.pages[i], true
}

// Pages returns a copy of the pages in reading order.
func (c *Comic) Pages() []Page {
	if c == nil {
		return nil
	}
	return slices.Clone(c.pages)
}
