package app

// Key binding constants used in the key handlers.
const (
	KeyCtrlC    = "ctrl+c"
	KeyEsc      = "esc"
	KeyTab      = "tab"
	KeyShiftTab = "shift+tab"
	KeyUp       = "up"
	KeyDown     = "down"
	KeyLeft     = "left"
	KeyRight    = "right"
	KeyEnter    = "enter"
	KeySpace    = " "
	KeyApprove  = "a"
	KeyRetry    = "r"
	KeyPublish  = "p"
	KeyDiscard  = "x"
	KeyBack     = "h"
	KeyForward  = "l"
)

// seekStep is the jump in seconds for the left/right keys.
const seekStep = 10.0
