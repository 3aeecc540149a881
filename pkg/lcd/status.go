package lcd

// Status is a named display state with a fixed backlight colour.
type Status string

// Known statuses.
const (
	StatusIdle   Status = "IDLE"
	StatusActive Status = "ACTIVE"
	StatusFailed Status = "FAILED"
)

// Color returns the backlight colour. Unknown statuses are shown as failures.
func (s Status) Color() (red, green, blue float64) {
	switch s {
	case StatusIdle:
		return 0, 1, 0
	case StatusActive:
		return 0, 0, 1
	}
	return 1, 0, 0
}

// StatusCommand builds the command showing a status message.
func StatusCommand(s Status, line1, line2 string) *Command {
	cmd := &Command{Line1: line1, Line2: line2}
	cmd.Red, cmd.Green, cmd.Blue = s.Color()
	return cmd
}
