package lcd

import "sync"

// Display is the driver of the physical display.
type Display interface {
	// Clear clears all characters and homes the cursor.
	Clear() error
	// SetColor sets the backlight colour.
	SetColor(red, green, blue float64) error
	// Message renders text from the home position, '\n' starts the next row.
	Message(text string) error
	// IsPressed samples the state of a button.
	IsPressed(Button) (bool, error)
}

type lockedDisplay struct {
	lock    sync.Mutex
	display Display
}

// Locked wraps d so that at most one call reaches the driver at a time.
// Wrapping an already locked Display returns it unchanged.
func Locked(d Display) Display {
	if l, ok := d.(*lockedDisplay); ok {
		return l
	}
	return &lockedDisplay{display: d}
}

func (d *lockedDisplay) Clear() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.display.Clear()
}

func (d *lockedDisplay) SetColor(red, green, blue float64) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.display.SetColor(red, green, blue)
}

func (d *lockedDisplay) Message(text string) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.display.Message(text)
}

func (d *lockedDisplay) IsPressed(b Button) (bool, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.display.IsPressed(b)
}

// Show applies a command: clear, backlight colour, then the two rows.
func Show(d Display, cmd *Command) error {
	if err := hwErr("clear", d.Clear()); err != nil {
		return err
	}
	if err := hwErr("set color", d.SetColor(cmd.Red, cmd.Green, cmd.Blue)); err != nil {
		return err
	}
	return hwErr("message", d.Message(cmd.Text()))
}
