package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// NewLogger opens the diagnostic log. The terminal belongs to the viewer, so
// logs only ever go to a file; an empty path discards them. The returned
// closer must be called on exit.
func NewLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "rcomic: ", log.LstdFlags|log.Lmicroseconds), f, nil
}
