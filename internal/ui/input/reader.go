package input

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyReader decodes raw terminal input into key events, one key per call.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader wraps the terminal input. The terminal must be in raw mode
// (no canonical line buffering) for keys to arrive one at a time.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{reader: bufio.NewReader(r)}
}

// ReadKey blocks until one key arrives. io.EOF means the input was closed.
func (kr *KeyReader) ReadKey() (*tcell.EventKey, error) {
	if kr.reader == nil {
		return nil, errors.New("no reader available")
	}
	b, err := kr.reader.ReadByte()
	if err != nil {
		return nil, err
	}

	switch {
	case b == 0x1b:
		return kr.parseEscapeSequence(), nil
	case b == '\r' || b == '\n':
		return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), nil
	case b == '\t':
		return tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), nil
	case b == 0x7f:
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), nil
	case b == 0x08:
		return tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), nil
	case b < 0x20:
		return tcell.NewEventKey(tcell.Key(b), 0, tcell.ModCtrl), nil
	case b < utf8.RuneSelf:
		return tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone), nil
	}
	return kr.readRune(b), nil
}

func (kr *KeyReader) readRune(first byte) *tcell.EventKey {
	buf := []byte{first}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		next, err := kr.reader.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, next)
	}
	r, _ := utf8.DecodeRune(buf)
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// parseEscapeSequence treats a lone ESC (nothing else buffered) as the Esc
// key; otherwise the following bytes are a CSI or SS3 sequence.
func (kr *KeyReader) parseEscapeSequence() *tcell.EventKey {
	esc := tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	if kr.reader.Buffered() == 0 {
		return esc
	}
	next, err := kr.reader.ReadByte()
	if err != nil {
		return esc
	}

	switch next {
	case '[':
		return kr.parseCSI()
	case 'O':
		final, err := kr.reader.ReadByte()
		if err != nil {
			return esc
		}
		if k, ok := finalKeys[final]; ok {
			return tcell.NewEventKey(k, 0, tcell.ModNone)
		}
		return unknownKey()
	default:
		return esc
	}
}

var finalKeys = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'H': tcell.KeyHome,
	'F': tcell.KeyEnd,
}

var tildeKeys = map[string]tcell.Key{
	"1": tcell.KeyHome,
	"2": tcell.KeyInsert,
	"3": tcell.KeyDelete,
	"4": tcell.KeyEnd,
	"5": tcell.KeyPgUp,
	"6": tcell.KeyPgDn,
	"7": tcell.KeyHome,
	"8": tcell.KeyEnd,
}

func (kr *KeyReader) parseCSI() *tcell.EventKey {
	seq := []byte{}
	for {
		b, err := kr.reader.ReadByte()
		if err != nil {
			return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
		}
		seq = append(seq, b)
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if len(seq) > 16 {
			return unknownKey()
		}
	}

	final := seq[len(seq)-1]
	if k, ok := finalKeys[final]; ok {
		return tcell.NewEventKey(k, 0, tcell.ModNone)
	}
	if final == '~' {
		params := seq[:len(seq)-1]
		// Drop modifier parameters such as "5;2".
		for i, b := range params {
			if b == ';' {
				params = params[:i]
				break
			}
		}
		if k, ok := tildeKeys[string(params)]; ok {
			return tcell.NewEventKey(k, 0, tcell.ModNone)
		}
	}
	return unknownKey()
}

// unknownKey stands for sequences that decode to no bindable key.
func unknownKey() *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyNUL, 0, tcell.ModNone)
}
