package lcd

import "fmt"

// Button identifies one of the five buttons of the plate.
type Button int

// Button enums.
const (
	Select Button = iota
	Up
	Down
	Left
	Right
)

// Buttons lists all buttons in scan order.
var Buttons = []Button{Select, Up, Down, Left, Right}

var buttonNames = [...]string{"SELECT", "UP", "DOWN", "LEFT", "RIGHT"}

// String returns the name written to the output stream.
func (b Button) String() string {
	if b < 0 || int(b) >= len(buttonNames) {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return buttonNames[b]
}

// IsValid indicates b is one of the defined buttons.
func (b Button) IsValid() bool {
	return b >= 0 && int(b) < len(buttonNames)
}

// ParseButton converts a button name back to Button.
func ParseButton(name string) (Button, error) {
	for n, s := range buttonNames {
		if s == name {
			return Button(n), nil
		}
	}
	return -1, fmt.Errorf("unknown button %q", name)
}
