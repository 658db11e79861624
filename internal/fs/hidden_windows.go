//go:build windows

package fs

// IsHidden checks the hidden attribute, falling back to the dot prefix when
// the attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	if IsJunkName(name) {
		return true
	}
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// ShouldHideFromListing reports entries that never hold pages even when they
// are not marked hidden (system reparse points such as compatibility junctions).
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
