package termread

import (
	"errors"
	"io"
	"log"
	"testing"

	"termev/internal/termin"
)

// chunkReader hands out one scripted chunk per Read call, the way a
// terminal can split a report across reads.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}

	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]

	return n, nil
}

func newTestConsumer(chunks ...string) *Consumer {
	return New(&chunkReader{chunks: chunks}, log.New(io.Discard, "", 0))
}

func TestPollCharacters(t *testing.T) {
	c := newTestConsumer("ab")

	events, err := c.Poll()
	if err != nil {
		t.Fatalf("Poll error = %v", err)
	}

	want := []termin.Event{
		termin.Key{Type: termin.KeyCharacter, Rune: 'a'},
		termin.Key{Type: termin.KeyCharacter, Rune: 'b'},
	}

	assertEvents(t, events, want)
}

func TestPollControlKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want termin.Key
	}{
		{"ctrl-c", "\x03", termin.Key{Type: termin.KeyQuit}},
		{"ctrl-d", "\x04", termin.Key{Type: termin.KeyQuit}},
		{"tab", "\t", termin.Key{Type: termin.KeyTab}},
		{"enter", "\r", termin.Key{Type: termin.KeyEnter}},
		{"backspace", "\x7f", termin.Key{Type: termin.KeyBackspace}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := newTestConsumer(tt.in).Poll()
			if err != nil {
				t.Fatalf("Poll error = %v", err)
			}

			assertEvents(t, events, []termin.Event{tt.want})
		})
	}
}

func TestPollMouseThenCharacter(t *testing.T) {
	c := newTestConsumer("\x1b[<0;5;10Mx")

	events, err := c.Poll()
	if err != nil {
		t.Fatalf("Poll error = %v", err)
	}

	want := []termin.Event{
		termin.MousePress{Point: termin.Point{X: 5, Y: 10}, Key: termin.MouseLeft},
		termin.Key{Type: termin.KeyCharacter, Rune: 'x'},
	}

	assertEvents(t, events, want)
}

func TestPollMouseSplitAcrossReads(t *testing.T) {
	c := newTestConsumer("\x1b[<0;5;", "10M")

	events, err := c.Poll()
	if err != nil {
		t.Fatalf("first Poll error = %v", err)
	}

	if len(events) != 0 {
		t.Fatalf("first Poll produced %d events from a truncated report, want 0", len(events))
	}

	events, err = c.Poll()
	if err != nil {
		t.Fatalf("second Poll error = %v", err)
	}

	want := []termin.Event{
		termin.MousePress{Point: termin.Point{X: 5, Y: 10}, Key: termin.MouseLeft},
	}

	assertEvents(t, events, want)
}

func TestPollLegacyMouseSplitAcrossReads(t *testing.T) {
	c := newTestConsumer("\x1b[M", string(rune(32+3))+string(rune(32+5))+string(rune(32+10)))

	events, err := c.Poll()
	if err != nil {
		t.Fatalf("first Poll error = %v", err)
	}

	if len(events) != 0 {
		t.Fatalf("first Poll produced %d events from a truncated report, want 0", len(events))
	}

	events, err = c.Poll()
	if err != nil {
		t.Fatalf("second Poll error = %v", err)
	}

	want := []termin.Event{
		termin.MouseRelease{Point: termin.Point{X: 5, Y: 10}},
	}

	assertEvents(t, events, want)
}

func TestPollCursorKey(t *testing.T) {
	events, err := newTestConsumer("\x1b[A").Poll()
	if err != nil {
		t.Fatalf("Poll error = %v", err)
	}

	assertEvents(t, events, []termin.Event{termin.Key{Type: termin.KeyUp}})
}

func TestPollAltKey(t *testing.T) {
	events, err := newTestConsumer("\x1bf").Poll()
	if err != nil {
		t.Fatalf("Poll error = %v", err)
	}

	assertEvents(t, events, []termin.Event{
		termin.Key{Type: termin.KeyCharacter, Rune: 'f', Alt: true},
	})
}

func TestPollLoneEscape(t *testing.T) {
	events, err := newTestConsumer("\x1b").Poll()
	if err != nil {
		t.Fatalf("Poll error = %v", err)
	}

	assertEvents(t, events, []termin.Event{termin.Key{Type: termin.KeyEscape}})
}

func TestPollUTF8SplitAcrossReads(t *testing.T) {
	c := newTestConsumer("caf\xc3", "\xa9")

	events, err := c.Poll()
	if err != nil {
		t.Fatalf("first Poll error = %v", err)
	}

	want := []termin.Event{
		termin.Key{Type: termin.KeyCharacter, Rune: 'c'},
		termin.Key{Type: termin.KeyCharacter, Rune: 'a'},
		termin.Key{Type: termin.KeyCharacter, Rune: 'f'},
	}

	assertEvents(t, events, want)

	events, err = c.Poll()
	if err != nil {
		t.Fatalf("second Poll error = %v", err)
	}

	assertEvents(t, events, []termin.Event{
		termin.Key{Type: termin.KeyCharacter, Rune: 'é'},
	})
}

func TestPollDropsOverlongMalformedPrefix(t *testing.T) {
	// a complete but invalid report (button code 3 with press
	// terminator) parks the buffer; once the cap is passed the
	// leading escape is dropped and the rest decodes as characters
	c := newTestConsumer("\x1b[<3;1;1M", string(make70()))

	events, err := c.Poll()
	if err != nil {
		t.Fatalf("first Poll error = %v", err)
	}

	if len(events) != 0 {
		t.Fatalf("first Poll produced %d events, want 0", len(events))
	}

	events, err = c.Poll()
	if err != nil {
		t.Fatalf("second Poll error = %v", err)
	}

	// 8 bytes of the broken report (minus the dropped escape) plus
	// the 70 fill characters
	if len(events) != 78 {
		t.Fatalf("second Poll produced %d events, want 78", len(events))
	}

	first, ok := events[0].(termin.Key)
	if !ok || first.Rune != '[' {
		t.Errorf("first recovered event = %+v, want '[' character", events[0])
	}
}

func make70() []byte {
	b := make([]byte, 70)
	for i := range b {
		b[i] = 'a'
	}

	return b
}

func TestPollReadError(t *testing.T) {
	wantErr := errors.New("boom")
	c := New(&errReader{err: wantErr}, log.New(io.Discard, "", 0))

	_, err := c.Poll()
	if !errors.Is(err, wantErr) {
		t.Fatalf("Poll error = %v, want wrapped %v", err, wantErr)
	}
}

type errReader struct {
	err error
}

func (r *errReader) Read(p []byte) (int, error) {
	return 0, r.err
}

func assertEvents(t *testing.T, got, want []termin.Event) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d events %v", len(got), got, len(want), want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
