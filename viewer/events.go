// Package viewer holds the interactive state of a marker playback session
// and derives the views the front-ends render.
package viewer

// MouseButton follows the DOM MouseEvent.button numbering.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
)

// Modifier is a set of modifier keys held during an event.
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

type SpecialKey int

const (
	KeyUp SpecialKey = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
)

// EventHandler receives the events of a window, one at a time.
type EventHandler interface {
	Keyboard(r rune)
	SpecialKey(k SpecialKey)
	MouseButton(b MouseButton, down bool, mods Modifier, x, y int)
	MouseMotion(x, y int)
	Wheel(dy float64)
	Reshape(w, h int)
	// Idle is called once per tick. It returns playback.ErrStreamExhausted
	// or ErrQuit when the session is over.
	Idle() error
	Draw() *Snapshot
}
