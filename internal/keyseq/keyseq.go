// Package keyseq classifies CSI keyboard sequences: cursor keys, home
// and end, back-tab, and the tilde-terminated editing keys, with the
// optional xterm "1;mod" modifier parameter.
package keyseq

import (
	"strings"

	"termev/internal/ansiesc"
	"termev/internal/mouseseq"
	"termev/internal/seqclass"
	"termev/internal/termin"
)

// Classify decodes one keyboard escape sequence from the start of in.
// Mouse-prefixed input is declined so it never matters whether this
// classifier runs before or after the mouse one.
func Classify(in string) (termin.Event, string, error) {
	if !strings.HasPrefix(in, ansiesc.CSI) || mouseseq.IsPrefix(in) {
		return nil, in, seqclass.ErrNoMatch
	}

	params, rest, final, ok := readParams(in[2:])
	if !ok {
		return nil, in, seqclass.ErrMalformed
	}

	key, ok := keyFor(params, final)
	if !ok {
		// A complete CSI sequence this classifier has no mapping
		// for is left for someone else to claim.
		return nil, in, seqclass.ErrNoMatch
	}

	return key, rest, nil
}

// readParams walks "p1 ; p2 ; ..." up to the final byte. A sequence
// with no final byte yet, or with a byte that fits neither a parameter
// nor a final, fails.
func readParams(in string) ([]int, string, byte, bool) {
	var params []int

	n := 0
	hasParam := false

	for i := 0; i < len(in); i++ {
		b := in[i]

		switch {
		case b >= '0' && b <= '9':
			n = n*10 + int(b-'0')
			hasParam = true
		case b == ';':
			params = append(params, n)
			n = 0
			hasParam = false
		case b >= 0x40 && b <= 0x7e:
			if hasParam {
				params = append(params, n)
			}

			return params, in[i+1:], b, true
		default:
			return nil, "", 0, false
		}
	}

	return nil, "", 0, false
}

func keyFor(params []int, final byte) (termin.Key, bool) {
	key := termin.Key{}

	// xterm-style modifier parameter: CSI 1 ; mod X
	if len(params) >= 2 {
		key.Shift, key.Alt, key.Control = decodeModifier(params[1])
	}

	switch final {
	case 'A':
		key.Type = termin.KeyUp
	case 'B':
		key.Type = termin.KeyDown
	case 'C':
		key.Type = termin.KeyRight
	case 'D':
		key.Type = termin.KeyLeft
	case 'H':
		key.Type = termin.KeyHome
	case 'F':
		key.Type = termin.KeyEnd
	case 'Z':
		key.Type = termin.KeyTab
		key.Shift = true
	case '~':
		if len(params) == 0 {
			return termin.Key{}, false
		}

		switch params[0] {
		case 1:
			key.Type = termin.KeyHome
		case 2:
			key.Type = termin.KeyInsert
		case 3:
			key.Type = termin.KeyDelete
		case 4:
			key.Type = termin.KeyEnd
		case 5:
			key.Type = termin.KeyPageUp
		case 6:
			key.Type = termin.KeyPageDown
		default:
			return termin.Key{}, false
		}
	default:
		return termin.Key{}, false
	}

	return key, true
}

// decodeModifier decodes the xterm modifier parameter, which is one
// more than the bit set shift=1, alt=2, ctrl=4.
func decodeModifier(param int) (shift, alt, control bool) {
	if param <= 1 {
		return false, false, false
	}

	flags := param - 1

	return flags&1 != 0, flags&2 != 0, flags&4 != 0
}
