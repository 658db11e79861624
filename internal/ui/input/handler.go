package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rcomic/internal/config"
	statepkg "github.com/kk-code-lab/rcomic/internal/state"
)

// Keymap binds keys to navigator actions.
type Keymap struct {
	bindings map[keyID]statepkg.Action
}

// NewKeymap builds a keymap from configured key names. A key listed under
// two actions keeps the later one in quit, next, previous, first, last,
// redraw order.
func NewKeymap(keys config.KeysConfig) (*Keymap, error) {
	km := &Keymap{bindings: make(map[keyID]statepkg.Action)}
	groups := []struct {
		field  string
		names  []string
		action statepkg.Action
	}{
		{"quit", keys.Quit, statepkg.QuitAction{}},
		{"next", keys.Next, statepkg.NextPageAction{}},
		{"previous", keys.Previous, statepkg.PreviousPageAction{}},
		{"first", keys.First, statepkg.FirstPageAction{}},
		{"last", keys.Last, statepkg.LastPageAction{}},
		{"redraw", keys.Redraw, statepkg.RedrawAction{}},
	}
	for _, g := range groups {
		for _, name := range g.names {
			ids, err := parseKeyName(name)
			if err != nil {
				return nil, fmt.Errorf("keys.%s: %w", g.field, err)
			}
			for _, id := range ids {
				km.bindings[id] = g.action
			}
		}
	}
	return km, nil
}

// Action returns the action bound to ev, or nil.
func (km *Keymap) Action(ev *tcell.EventKey) statepkg.Action {
	if km == nil || ev == nil {
		return nil
	}
	return km.bindings[idOf(ev)]
}

// InputHandler converts terminal key events to Actions
type InputHandler struct {
	reader *KeyReader
	keymap *Keymap
}

// NewInputHandler creates a new input handler
func NewInputHandler(reader *KeyReader, keymap *Keymap) *InputHandler {
	return &InputHandler{reader: reader, keymap: keymap}
}

// ProcessEvent converts a tcell event into an Action. Unbound keys and
// non-key events yield nil, which the navigator treats as a no-op.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) statepkg.Action {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return nil
	}
	return ih.keymap.Action(key)
}

// NextAction blocks for one key and returns its action.
func (ih *InputHandler) NextAction() (statepkg.Action, error) {
	ev, err := ih.reader.ReadKey()
	if err != nil {
		return nil, err
	}
	return ih.ProcessEvent(ev), nil
}
