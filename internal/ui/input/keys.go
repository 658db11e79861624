package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// keyID identifies a binding independently of modifiers.
type keyID struct {
	key tcell.Key
	ch  rune
}

func idOf(ev *tcell.EventKey) keyID {
	if ev.Key() == tcell.KeyRune {
		return keyID{key: tcell.KeyRune, ch: ev.Rune()}
	}
	return keyID{key: ev.Key()}
}

var keyAliases = map[string]tcell.Key{
	"escape":   tcell.KeyEscape,
	"return":   tcell.KeyEnter,
	"pageup":   tcell.KeyPgUp,
	"pagedown": tcell.KeyPgDn,
	"del":      tcell.KeyDelete,
}

var namedKeys = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames)+len(keyAliases))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	for name, k := range keyAliases {
		m[name] = k
	}
	return m
}()

// parseKeyName turns a config key name into binding ids. Single characters
// bind that rune; "Space" binds ' '; anything else goes through tcell's key
// names ("Esc", "PgDn", "Ctrl-L") case-insensitively. Backspace binds both
// byte values terminals send for it.
func parseKeyName(name string) ([]keyID, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("empty key name")
	}
	if utf8.RuneCountInString(trimmed) == 1 {
		r, _ := utf8.DecodeRuneInString(trimmed)
		return []keyID{{key: tcell.KeyRune, ch: r}}, nil
	}
	lower := strings.ToLower(trimmed)
	if lower == "space" {
		return []keyID{{key: tcell.KeyRune, ch: ' '}}, nil
	}
	k, ok := namedKeys[lower]
	if !ok {
		return nil, fmt.Errorf("unknown key name %q", name)
	}
	if k == tcell.KeyBackspace || k == tcell.KeyBackspace2 {
		return []keyID{{key: tcell.KeyBackspace}, {key: tcell.KeyBackspace2}}, nil
	}
	return []keyID{{key: k}}, nil
}
