package termin

type KeyType int

type Key struct {
	Type    KeyType
	Shift   bool
	Alt     bool
	Control bool
	Rune    rune
}

const (
	KeyCharacter KeyType = iota - 1
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyEscape
	KeyBackspace
	KeyEnter
	KeyQuit
	KeyTab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
)

type MouseKeyType int

const (
	MouseLeft MouseKeyType = iota
	MouseMiddle
	MouseRight
)

// Point holds coordinates exactly as decoded off the wire: the SGR
// encoding sends literal 1-based decimals, the legacy encoding sends
// characters biased by 32. Neither is normalized here.
type Point struct {
	X int
	Y int
}

type Modifiers struct {
	Shift   bool
	Alt     bool
	Control bool
}

// MousePress is a button press, or a drag with the button still held.
type MousePress struct {
	Point     Point
	Key       MouseKeyType
	Modifiers Modifiers
}

// MouseRelease is a button release. The legacy wire encoding never says
// which button was let go, so Key is only meaningful when Known is
// true; SGR releases always set it.
type MouseRelease struct {
	Point     Point
	Key       MouseKeyType
	Known     bool
	Modifiers Modifiers
}

type Event interface {
}
