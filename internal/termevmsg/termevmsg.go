package termevmsg

import (
	"fmt"

	"termev/internal/termin"
)

type MousePressMessage struct {
	Event termin.MousePress
}

func (m MousePressMessage) String() string {
	return fmt.Sprintf("mouse press   %s%s (%d, %d)",
		modifierPrefix(m.Event.Modifiers), buttonName(m.Event.Key), m.Event.Point.X, m.Event.Point.Y)
}

type MouseReleaseMessage struct {
	Event termin.MouseRelease
}

func (m MouseReleaseMessage) String() string {
	button := "unknown button"
	if m.Event.Known {
		button = buttonName(m.Event.Key)
	}

	return fmt.Sprintf("mouse release %s%s (%d, %d)",
		modifierPrefix(m.Event.Modifiers), button, m.Event.Point.X, m.Event.Point.Y)
}

type KeyMessage struct {
	Event termin.Key
}

func (m KeyMessage) String() string {
	mods := termin.Modifiers{Shift: m.Event.Shift, Alt: m.Event.Alt, Control: m.Event.Control}

	if m.Event.Type == termin.KeyCharacter {
		return fmt.Sprintf("key           %s%q", modifierPrefix(mods), m.Event.Rune)
	}

	return fmt.Sprintf("key           %s%s", modifierPrefix(mods), keyName(m.Event.Type))
}

type ResizeMessage struct {
	Width  int
	Height int
}

func (m ResizeMessage) String() string {
	return fmt.Sprintf("resize        %dx%d", m.Width, m.Height)
}

// Describe renders any input event as a display line.
func Describe(e termin.Event) string {
	switch v := e.(type) {
	case termin.MousePress:
		return MousePressMessage{Event: v}.String()
	case termin.MouseRelease:
		return MouseReleaseMessage{Event: v}.String()
	case termin.Key:
		return KeyMessage{Event: v}.String()
	}

	return fmt.Sprintf("unknown event %v", e)
}

func buttonName(b termin.MouseKeyType) string {
	switch b {
	case termin.MouseLeft:
		return "left"
	case termin.MouseMiddle:
		return "middle"
	case termin.MouseRight:
		return "right"
	}

	return "unknown"
}

func keyName(t termin.KeyType) string {
	switch t {
	case termin.KeyUp:
		return "up"
	case termin.KeyDown:
		return "down"
	case termin.KeyRight:
		return "right"
	case termin.KeyLeft:
		return "left"
	case termin.KeyEscape:
		return "escape"
	case termin.KeyBackspace:
		return "backspace"
	case termin.KeyEnter:
		return "enter"
	case termin.KeyQuit:
		return "quit"
	case termin.KeyTab:
		return "tab"
	case termin.KeyHome:
		return "home"
	case termin.KeyEnd:
		return "end"
	case termin.KeyPageUp:
		return "page-up"
	case termin.KeyPageDown:
		return "page-down"
	case termin.KeyInsert:
		return "insert"
	case termin.KeyDelete:
		return "delete"
	}

	return "unknown"
}

func modifierPrefix(m termin.Modifiers) string {
	s := ""

	if m.Control {
		s += "ctrl+"
	}

	if m.Alt {
		s += "alt+"
	}

	if m.Shift {
		s += "shift+"
	}

	return s
}
