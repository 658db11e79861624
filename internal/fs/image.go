package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const imageSniffSize = 16

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

var imageMagic = [][]byte{
	{0xFF, 0xD8, 0xFF},                 // JPEG
	{0x89, 'P', 'N', 'G', '\r', '\n'}, // PNG
	[]byte("GIF87a"),
	[]byte("GIF89a"),
	[]byte("BM"),
	{'I', 'I', 0x2A, 0x00}, // TIFF little endian
	{'M', 'M', 0x00, 0x2A}, // TIFF big endian
}

var archiveExtensions = map[string]struct{}{
	".cbz": {},
	".zip": {},
}

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// IsImageName reports whether the file extension belongs to a page format.
func IsImageName(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// IsArchiveName reports whether the extension marks a comic archive.
func IsArchiveName(name string) bool {
	_, ok := archiveExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// LooksLikeImage sniffs the leading bytes of a file for a known image header.
func LooksLikeImage(sample []byte) bool {
	for _, magic := range imageMagic {
		if bytes.HasPrefix(sample, magic) {
			return true
		}
	}
	// RIFF....WEBP
	return len(sample) >= 12 && bytes.Equal(sample[:4], []byte("RIFF")) && bytes.Equal(sample[8:12], []byte("WEBP"))
}

// LooksLikeZip sniffs for a local file header.
func LooksLikeZip(sample []byte) bool {
	return bytes.HasPrefix(sample, zipMagic)
}

// ReadFileHead returns up to limit bytes from the beginning of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(io.LimitReader(f, limit))
}

// ReadSniffSample returns enough of path to run LooksLikeImage or LooksLikeZip.
func ReadSniffSample(path string) ([]byte, error) {
	return ReadFileHead(path, imageSniffSize)
}
