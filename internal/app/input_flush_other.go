//go:build !windows

package app

import "os"

// flushPendingInput is a no-op: raw mode is entered with TCSAFLUSH, which
// already discards input typed before the session started.
func flushPendingInput(*os.File) error {
	return nil
}
