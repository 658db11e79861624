package textutil

import "strings"

// SanitizeTerminalText replaces control characters so names taken from
// archives cannot inject terminal escape sequences when rendered. Bidi and
// zero-width formatting runes are dropped because they shift the columns
// that follow them.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

func requiresSanitization(r rune) bool {
	return isControl(r) || isFormattingRune(r)
}

func sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case isFormattingRune(r):
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case isControl(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	return (r >= 0 && r < 0x20) || (r >= 0x7f && r < 0xa0)
}

func isFormattingRune(r rune) bool {
	switch {
	case r == 0x061C, r == 0x00AD, r == 0x180E, r == 0xFEFF:
		return true
	case r >= 0x200B && r <= 0x200F:
		return true
	case r >= 0x2028 && r <= 0x202E:
		return true
	case r >= 0x2060 && r <= 0x206F:
		return true
	}
	return false
}
