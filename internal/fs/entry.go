package fs

import (
	"os"
	"path/filepath"
)

// Entry is a regular file found while listing a comic directory.
type Entry struct {
	Name     string
	FullPath string
	Size     int64
	Mode     os.FileMode
}

// ReadDir lists the visible regular files of dir. Subdirectories, hidden
// files and platform junk are left out; the order is unspecified.
func ReadDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		full := filepath.Join(dir, de.Name())
		if IsHidden(full, de.Name()) || ShouldHideFromListing(full, de.Name()) {
			continue
		}
		info, err := os.Stat(full)
		if err != nil {
			// Dangling symlinks and files removed mid-listing are not pages.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{
			Name:     de.Name(),
			FullPath: full,
			Size:     info.Size(),
			Mode:     info.Mode(),
		})
	}
	return entries, nil
}
