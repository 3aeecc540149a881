package lcd

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/lcdplate/pkg/comm"
)

// StartupMessage is shown until the first control line arrives.
const StartupMessage = "Starting up..."

// State is the state of a Controller.
type State int32

// Controller states.
const (
	StateStarting State = iota
	StateReady
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "STARTING"
	case StateReady:
		return "READY"
	case StateStopped:
		return "STOPPED"
	}
	return "UNKNOWN"
}

// Controller applies control lines to the display.
type Controller struct {
	Display Display
	Input   comm.LineReader
	// Strict makes a malformed control line fatal instead of skipping it.
	Strict bool

	state int32
}

// NewController creates a Controller.
func NewController(d Display, in comm.LineReader) *Controller {
	return &Controller{Display: d, Input: in}
}

// State returns the current state.
func (c *Controller) State() State {
	return State(atomic.LoadInt32(&c.state))
}

func (c *Controller) setState(s State) {
	atomic.StoreInt32(&c.state, int32(s))
}

// Startup clears the display and shows StartupMessage on blue.
func (c *Controller) Startup() error {
	if err := hwErr("clear", c.Display.Clear()); err != nil {
		return err
	}
	if err := hwErr("set color", c.Display.SetColor(0, 0, 1)); err != nil {
		return err
	}
	return hwErr("message", c.Display.Message(StartupMessage))
}

// Apply parses a control line and shows it.
func (c *Controller) Apply(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	return Show(c.Display, cmd)
}

// Run implements Runnable.
// It returns nil when the input is closed.
func (c *Controller) Run(ctx context.Context) error {
	defer c.setState(StateStopped)
	c.setState(StateStarting)
	if err := c.Startup(); err != nil {
		return err
	}
	c.setState(StateReady)
	glog.Info("Display ready")

	lineCh, errCh := make(chan string), make(chan error)
	go c.readLoop(ctx, lineCh, errCh)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			if err == io.EOF {
				glog.Info("Input closed")
				return nil
			}
			if IsMalformedInput(err) && !c.Strict {
				glog.Warningf("Skipped: %v", err)
				continue
			}
			return err
		case line := <-lineCh:
			err := c.Apply(line)
			if err == nil {
				continue
			}
			if IsMalformedInput(err) && !c.Strict {
				glog.Warningf("Skipped: %v", err)
				continue
			}
			return err
		}
	}
}

func (c *Controller) readLoop(ctx context.Context, lineCh chan string, errCh chan error) {
	for {
		line, err := c.Input.ReadLine()
		if err != nil {
			select {
			case errCh <- err:
			case <-ctx.Done():
				return
			}
			if comm.IsLineError(err) {
				continue
			}
			return
		}
		select {
		case lineCh <- line:
		case <-ctx.Done():
			return
		}
	}
}
