package lcd

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/lcdplate/pkg/comm"
)

// DefaultPollInterval is the pause between two scans.
const DefaultPollInterval = 100 * time.Millisecond

// Poller reports pressed buttons.
type Poller struct {
	Display  Display
	Output   comm.LineWriter
	Interval time.Duration
	Verbose  bool
}

// NewPoller creates a Poller.
func NewPoller(d Display, out comm.LineWriter) *Poller {
	return &Poller{
		Display:  d,
		Output:   out,
		Interval: DefaultPollInterval,
	}
}

// Scan checks all buttons once, in the order of Buttons, and writes the
// name of each pressed one. There's no debouncing or edge detection.
func (p *Poller) Scan() error {
	for _, b := range Buttons {
		pressed, err := p.Display.IsPressed(b)
		if err != nil {
			return hwErr("read "+b.String(), err)
		}
		if !pressed {
			continue
		}
		if p.Verbose {
			glog.Infof("Button %s pressed", b)
		} else {
			glog.V(1).Infof("Button %s pressed", b)
		}
		if err = p.Output.WriteLine(b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Run implements Runnable. It scans until the context is canceled
// or a scan fails.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	for {
		if err := p.Scan(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
