package termread

import (
	"errors"
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"termev/internal/keyseq"
	"termev/internal/mouseseq"
	"termev/internal/seqclass"
	"termev/internal/termin"
)

// maxPending bounds how long a malformed escape prefix is retained
// while waiting for more bytes; past it the leading byte is discarded.
const maxPending = 64

type Consumer struct {
	in      io.Reader
	buf     []byte
	pending []byte
	logger  *log.Logger
}

func New(r io.Reader, logger *log.Logger) *Consumer {
	return &Consumer{
		in:     r,
		buf:    make([]byte, 128),
		logger: logger,
	}
}

// Poll reads once from the input and decodes as many events as the
// buffered bytes allow. Bytes that may be a truncated escape sequence
// or a partial UTF-8 character are carried over to the next call, so a
// report split across reads still decodes whole.
func (r *Consumer) Poll() ([]termin.Event, error) {
	n, err := r.in.Read(r.buf)
	if err != nil {
		return nil, fmt.Errorf("reader: %w", err)
	}

	r.pending = append(r.pending, r.buf[:n]...)

	events := make([]termin.Event, 0)

	for len(r.pending) > 0 {
		event, consumed, wait := r.next()
		if wait {
			if len(r.pending) > maxPending {
				r.logger.Println("discarding unparseable escape prefix byte")
				r.pending = r.pending[1:]
				continue
			}

			break
		}

		r.pending = r.pending[consumed:]

		if event != nil {
			events = append(events, event)
		}
	}

	return events, nil
}

// next decodes one event from the front of the pending buffer. It
// returns the bytes consumed, or wait=true when the buffer holds what
// may be a truncated sequence.
func (r *Consumer) next() (event termin.Event, consumed int, wait bool) {
	b := r.pending[0]

	if b == 0x1b {
		return r.nextEscape()
	}

	switch b {
	case 3, 4:
		return termin.Key{Type: termin.KeyQuit}, 1, false
	case 9:
		return termin.Key{Type: termin.KeyTab}, 1, false
	case 13:
		return termin.Key{Type: termin.KeyEnter}, 1, false
	case 127:
		return termin.Key{Type: termin.KeyBackspace}, 1, false
	}

	if !utf8.FullRune(r.pending) {
		return nil, 0, true
	}

	c, size := utf8.DecodeRune(r.pending)
	if c == utf8.RuneError && size == 1 {
		return nil, 1, false
	}

	return termin.Key{Type: termin.KeyCharacter, Rune: c}, size, false
}

func (r *Consumer) nextEscape() (termin.Event, int, bool) {
	in := string(r.pending)

	event, rest, err := seqclass.Dispatch(in, mouseseq.Classify, keyseq.Classify)
	if err == nil {
		return event, len(in) - len(rest), false
	}

	if errors.Is(err, seqclass.ErrMalformed) {
		// A classifier claimed the prefix but could not finish;
		// the sequence may still be arriving, so retry the
		// identical input once more bytes are in.
		return nil, 0, true
	}

	if len(r.pending) == 1 {
		return termin.Key{Type: termin.KeyEscape}, 1, false
	}

	if next := r.pending[1]; next >= 0x20 && next < 0x7f && next != '[' {
		// ESC followed by a printable is Alt+key.
		return termin.Key{Type: termin.KeyCharacter, Rune: rune(next), Alt: true}, 2, false
	}

	return termin.Key{Type: termin.KeyEscape}, 1, false
}
