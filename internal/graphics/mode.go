package graphics

import (
	"fmt"
	"strings"

	"github.com/BourgeoisBear/rasterm"
)

// Mode selects the terminal graphics protocol pages are drawn with.
type Mode int

const (
	// ModeAuto is resolved to a concrete mode once, before the session starts.
	ModeAuto Mode = iota
	// ModeNone draws half-block glyphs with colors instead of pixels.
	ModeNone
	ModeSixel
	ModeKitty
	ModeITerm
)

var modeNames = map[Mode]string{
	ModeAuto:  "auto",
	ModeNone:  "none",
	ModeSixel: "sixel",
	ModeKitty: "kitty",
	ModeITerm: "iterm",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String plus a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "none", "glyph", "glyphs", "text":
		return ModeNone, nil
	case "sixel", "sixels":
		return ModeSixel, nil
	case "kitty":
		return ModeKitty, nil
	case "iterm", "iterm2":
		return ModeITerm, nil
	}
	return ModeAuto, fmt.Errorf("unknown pixel mode %q (want auto, none, sixel, kitty or iterm)", s)
}

// capabilities is swapped out in tests.
var capabilities = struct {
	kitty func() bool
	iterm func() bool
	sixel func() (bool, error)
}{
	kitty: rasterm.IsKittyCapable,
	iterm: rasterm.IsItermCapable,
	sixel: rasterm.IsSixelCapable,
}

// ResolveMode turns ModeAuto into the best protocol the terminal supports.
// Sixel detection queries the terminal, so it must run before the viewing
// session takes over the input.
func ResolveMode(m Mode) Mode {
	if m != ModeAuto {
		return m
	}
	switch {
	case capabilities.kitty():
		return ModeKitty
	case capabilities.iterm():
		return ModeITerm
	}
	if ok, err := capabilities.sixel(); err == nil && ok {
		return ModeSixel
	}
	return ModeNone
}
