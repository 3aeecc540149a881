package lcd

import (
	"context"

	"github.com/robotalks/lcdplate/pkg/comm"
	fx "github.com/robotalks/lcdplate/pkg/framework"
)

// Service runs the Poller and the Controller on one shared display handle.
type Service struct {
	Display    Display
	Poller     *Poller
	Controller *Controller
	// Runnables are extra tasks (e.g. transports) living as long as the
	// service.
	Runnables []fx.Runnable
}

// NewService wraps d with Locked and creates both tasks on it.
func NewService(d Display, in comm.LineReader, out comm.LineWriter) *Service {
	handle := Locked(d)
	return &Service{
		Display:    handle,
		Poller:     NewPoller(handle, out),
		Controller: NewController(handle, in),
	}
}

// AddRunnable adds tasks started along with the service.
func (s *Service) AddRunnable(runnables ...fx.Runnable) *Service {
	s.Runnables = append(s.Runnables, runnables...)
	return s
}

// Run implements Runnable.
// The first task to stop stops all others: closing the input ends
// the service with nil, a hardware fault ends it with that fault.
func (s *Service) Run(ctx context.Context) error {
	runner := fx.NewRunnerWith(ctx)
	runner.Go(s.Runnables...)
	runner.Go(fx.NamedRun("buttons", s.Poller))
	runner.Go(fx.NamedRun("display", s.Controller))
	return runner.Wait()
}
