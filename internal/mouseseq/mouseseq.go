// Package mouseseq classifies xterm mouse reports. It understands the
// legacy encoding (CSI M followed by three characters biased by 32) and
// the SGR extended encoding (CSI < mods ; x ; y then M or m).
package mouseseq

import (
	"strings"
	"unicode/utf8"

	"termev/internal/ansiesc"
	"termev/internal/seqclass"
	"termev/internal/termin"
)

const (
	legacyPrefix   = ansiesc.CSI + "M"
	extendedPrefix = ansiesc.CSI + "<"
)

// Enable returns the control string that asks the terminal to start
// reporting mouse events: X10 reporting (1000), button-motion reporting
// (1002), SGR coordinates (1006) and UTF-8 coordinates (1005).
func Enable() string {
	return ansiesc.CSI + "?1000h" + ansiesc.CSI + "?1002h" + ansiesc.CSI + "?1006h" + ansiesc.CSI + "?1005h"
}

// Disable reverses Enable, same modes in the same order.
func Disable() string {
	return ansiesc.CSI + "?1000l" + ansiesc.CSI + "?1002l" + ansiesc.CSI + "?1006l" + ansiesc.CSI + "?1005l"
}

// IsPrefix reports whether in starts like a mouse report. It is a plain
// prefix check so callers can use it to route input cheaply before
// paying for Classify.
func IsPrefix(in string) bool {
	return strings.HasPrefix(in, legacyPrefix) || strings.HasPrefix(in, extendedPrefix)
}

// Classify decodes one mouse event from the start of in. It returns the
// event and the unconsumed remainder, seqclass.ErrNoMatch if in does
// not begin with a mouse prefix, or seqclass.ErrMalformed if it does
// but the rest of the sequence is bad or cut short. Truncated input is
// indistinguishable from bad input here; the caller decides whether to
// retry with more bytes.
func Classify(in string) (termin.Event, string, error) {
	if !IsPrefix(in) {
		return nil, in, seqclass.ErrNoMatch
	}

	var event termin.Event
	var rest string
	var ok bool

	switch in[2] {
	case '<':
		event, rest, ok = classifyExtended(in[3:])
	case 'M':
		event, rest, ok = classifyLegacy(in[3:])
	}

	if !ok {
		return nil, in, seqclass.ErrMalformed
	}

	return event, rest, nil
}

// classifyExtended reads "mods ; x ; y" as literal decimals followed by
// the terminator, M for press and m for release. SGR releases always
// name the released button.
func classifyExtended(in string) (termin.Event, string, bool) {
	mods, in, ok := readInt(in)
	if !ok {
		return nil, "", false
	}

	in, ok = expect(in, ';')
	if !ok {
		return nil, "", false
	}

	x, in, ok := readInt(in)
	if !ok {
		return nil, "", false
	}

	in, ok = expect(in, ';')
	if !ok {
		return nil, "", false
	}

	y, in, ok := readInt(in)
	if !ok {
		return nil, "", false
	}

	if in == "" {
		return nil, "", false
	}

	terminator := in[0]
	in = in[1:]

	// Button code 3 never maps to a button, not even on release.
	button, ok := buttonFrom(mods)
	if !ok {
		return nil, "", false
	}

	point := termin.Point{X: x, Y: y}
	modifiers := modifiersFrom(mods)

	switch terminator {
	case 'M':
		return termin.MousePress{Point: point, Key: button, Modifiers: modifiers}, in, true
	case 'm':
		return termin.MouseRelease{Point: point, Key: button, Known: true, Modifiers: modifiers}, in, true
	}

	return nil, "", false
}

// classifyLegacy reads exactly three characters: status, x and y, with
// the coordinates biased by 32. Characters are read as runes so that
// UTF-8 extended coordinates (mode 1005) above 127 decode correctly.
func classifyLegacy(in string) (termin.Event, string, bool) {
	status, in, ok := readRune(in)
	if !ok {
		return nil, "", false
	}

	xc, in, ok := readRune(in)
	if !ok {
		return nil, "", false
	}

	yc, in, ok := readRune(in)
	if !ok {
		return nil, "", false
	}

	point := termin.Point{X: int(xc) - 32, Y: int(yc) - 32}
	modifiers := modifiersFrom(int(status))

	if int(status)&0b11 == 3 {
		// Releases in this encoding never say which button was
		// let go, whatever the upper status bits hold.
		return termin.MouseRelease{Point: point, Modifiers: modifiers}, in, true
	}

	button, ok := buttonFrom(int(status))
	if !ok {
		return nil, "", false
	}

	return termin.MousePress{Point: point, Key: button, Modifiers: modifiers}, in, true
}

func buttonFrom(status int) (termin.MouseKeyType, bool) {
	switch status & 0b11 {
	case 0:
		return termin.MouseLeft, true
	case 1:
		return termin.MouseMiddle, true
	case 2:
		return termin.MouseRight, true
	}

	return 0, false
}

func modifiersFrom(status int) termin.Modifiers {
	return termin.Modifiers{
		Shift:   status&(1<<2) != 0,
		Alt:     status&(1<<3) != 0,
		Control: status&(1<<4) != 0,
	}
}

func readInt(in string) (int, string, bool) {
	i := 0
	n := 0

	for i < len(in) && in[i] >= '0' && in[i] <= '9' {
		n = n*10 + int(in[i]-'0')
		i++
	}

	if i == 0 {
		return 0, in, false
	}

	return n, in[i:], true
}

func expect(in string, c byte) (string, bool) {
	if len(in) == 0 || in[0] != c {
		return in, false
	}

	return in[1:], true
}

func readRune(in string) (rune, string, bool) {
	if in == "" {
		return 0, in, false
	}

	r, size := utf8.DecodeRuneInString(in)
	if r == utf8.RuneError && size == 1 {
		return 0, in, false
	}

	return r, in[size:], true
}
