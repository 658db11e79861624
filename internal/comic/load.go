package comic

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	fsutil "github.com/kk-code-lab/rcomic/internal/fs"
	"github.com/klauspost/compress/zip"
	"golang.org/x/text/unicode/norm"
)

// MaxPageBytes caps the encoded size of a single page read into memory.
const MaxPageBytes int64 = 128 << 20

// Load reads every page of the comic at path into memory.
func Load(path string) (*Comic, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var pages []Page
	switch {
	case info.IsDir():
		pages, err = loadDir(path)
	case info.Mode().IsRegular():
		pages, err = loadFile(path)
	default:
		err = ErrNotComic
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	sortPages(pages)
	return New(comicName(path), path, pages), nil
}

func loadFile(path string) ([]Page, error) {
	sample, err := fsutil.ReadSniffSample(path)
	if err != nil {
		return nil, err
	}
	switch {
	case fsutil.IsArchiveName(path) || fsutil.LooksLikeZip(sample):
		return loadArchive(path)
	case fsutil.IsImageName(path) || fsutil.LooksLikeImage(sample):
		data, err := readPageFile(path)
		if err != nil {
			return nil, err
		}
		return []Page{NewPage(pageName(filepath.Base(path)), data)}, nil
	}
	return nil, ErrNotComic
}

func loadDir(dir string) ([]Page, error) {
	entries, err := fsutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(entries))
	for _, entry := range entries {
		if !fsutil.IsImageName(entry.Name) {
			sample, err := fsutil.ReadSniffSample(entry.FullPath)
			if err != nil || !fsutil.LooksLikeImage(sample) {
				continue
			}
		}
		data, err := readPageFile(entry.FullPath)
		if err != nil {
			return nil, err
		}
		pages = append(pages, NewPage(pageName(entry.Name), data))
	}
	return pages, nil
}

func readPageFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, path)
}

func loadArchive(path string) ([]Page, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	pages := make([]Page, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() || fsutil.IsHiddenArchivePath(f.Name) || !fsutil.IsImageName(f.Name) {
			continue
		}
		data, err := readArchiveMember(f)
		if err != nil {
			return nil, err
		}
		pages = append(pages, NewPage(pageName(f.Name), data))
	}
	return pages, nil
}

func readArchiveMember(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > uint64(MaxPageBytes) {
		return nil, fmt.Errorf("page %s: %d bytes exceeds the %d byte page limit", f.Name, f.UncompressedSize64, MaxPageBytes)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", f.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()
	return readLimited(rc, f.Name)
}

func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", name, err)
	}
	if int64(len(data)) > MaxPageBytes {
		return nil, fmt.Errorf("page %s exceeds the %d byte page limit", name, MaxPageBytes)
	}
	return data, nil
}

func sortPages(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return naturalLess(pages[i].Name, pages[j].Name)
	})
}

// comicName is the title shown in the frame: the base name without a known
// archive extension.
func comicName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	if fsutil.IsArchiveName(base) {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return norm.NFC.String(base)
}

// pageName normalizes names so decomposed archive entries (as written by
// macOS) sort next to their composed equivalents.
func pageName(name string) string {
	return norm.NFC.String(name)
}
