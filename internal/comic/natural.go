package comic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// naturalLess orders names the way a reader expects page numbers to run:
// digit runs compare by value, so "page2" sorts before "page10". Other runes
// compare case-insensitively, with the raw string as tie breaker.
func naturalLess(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ra, wa := utf8.DecodeRuneInString(a[ai:])
		rb, wb := utf8.DecodeRuneInString(b[bi:])

		if isDigit(ra) && isDigit(rb) {
			aEnd := digitRunEnd(a, ai)
			bEnd := digitRunEnd(b, bi)
			if c := compareNumeric(a[ai:aEnd], b[bi:bEnd]); c != 0 {
				return c < 0
			}
			ai, bi = aEnd, bEnd
			continue
		}

		la, lb := unicode.ToLower(ra), unicode.ToLower(rb)
		if la != lb {
			return la < lb
		}
		ai += wa
		bi += wb
	}
	if rest := (len(a) - ai) - (len(b) - bi); rest != 0 {
		return rest < 0
	}
	return a < b
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func digitRunEnd(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// compareNumeric compares two digit runs by value without parsing, so runs
// longer than an int still order correctly.
func compareNumeric(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	return strings.Compare(ta, tb)
}
