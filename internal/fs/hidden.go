package fs

import "strings"

// junkNames are files operating systems drop next to images.
var junkNames = map[string]struct{}{
	".ds_store":   {},
	"thumbs.db":   {},
	"desktop.ini": {},
	"__macosx":    {},
}

// IsJunkName reports names that never hold pages on any platform.
func IsJunkName(name string) bool {
	_, ok := junkNames[strings.ToLower(name)]
	return ok
}

// IsHiddenArchivePath reports whether a slash separated archive member lives
// in a hidden or junk location, such as the __MACOSX resource fork tree.
func IsHiddenArchivePath(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if part == "" {
			continue
		}
		if part[0] == '.' || IsJunkName(part) {
			return true
		}
	}
	return false
}
