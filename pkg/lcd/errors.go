package lcd

import "fmt"

// MalformedInputError indicates a control line can't be parsed.
type MalformedInputError struct {
	Line   string
	Reason string
}

// Error implements error.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed control line %q: %s", e.Line, e.Reason)
}

// LineError implements comm.LineError, the input can still be read.
func (e *MalformedInputError) LineError() bool {
	return true
}

// HardwareError wraps a failure reported by the display driver.
type HardwareError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *HardwareError) Error() string {
	return fmt.Sprintf("display %s: %v", e.Op, e.Err)
}

// Unwrap returns the driver error.
func (e *HardwareError) Unwrap() error {
	return e.Err
}

// IsMalformedInput tells if err is caused by a bad control line.
func IsMalformedInput(err error) bool {
	_, ok := err.(*MalformedInputError)
	return ok
}

func hwErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &HardwareError{Op: op, Err: err}
}
