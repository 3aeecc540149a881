package lcd

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/lcdplate/pkg/framework"
)

func runService(ctx context.Context, t *testing.T, s *Service) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("service didn't stop")
	}
	return nil
}

func TestServiceEndToEnd(t *testing.T) {
	d := newRecorder()
	io := newLines("1|0|0|Error:|Something wrong!")
	d.press(Select, true)

	s := NewConfig().NewService(d, io, io)
	s.Poller.Interval = 5 * time.Millisecond

	var extraStopped sync.WaitGroup
	extraStopped.Add(1)
	s.AddRunnable(fx.RunFunc(func(ctx context.Context) error {
		defer extraStopped.Done()
		<-ctx.Done()
		return ctx.Err()
	}))

	go func() {
		// the poller must keep running while input is open.
		for i := 0; i < 2; i++ {
			<-io.outCh
		}
		close(io.in)
	}()
	require.NoError(t, runService(context.Background(), t, s))
	extraStopped.Wait()

	ops := d.Ops()
	require.Equal(t, append(append([]string{}, startupOps...),
		"clear", "color(1,0,0)", `message("Error:\nSomething wrong!")`), ops)
	for _, line := range io.Out() {
		require.Equal(t, "SELECT", line)
	}
	require.Equal(t, StateStopped, s.Controller.State())
}

func TestServiceMalformedKeepsPolling(t *testing.T) {
	d := newRecorder()
	io := newLines("abc")
	s := NewService(d, io, io)
	s.Poller.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	d.press(Left, true)
	select {
	case line := <-io.outCh:
		require.Equal(t, "LEFT", line)
	case <-time.After(time.Second):
		t.Fatal("poller stopped after malformed input")
	}
	waitFor(t, func() bool { return s.Controller.State() == StateReady })
	require.Equal(t, startupOps, d.Ops())
	cancel()
	require.NoError(t, <-errCh)
}

func TestServicePollerFault(t *testing.T) {
	d := newRecorder()
	d.failOn = "read"
	s := NewService(d, newLines(), newLines())
	err := runService(context.Background(), t, s)
	require.Error(t, err)
	_, ok := err.(*HardwareError)
	require.True(t, ok)
}

func TestLocked(t *testing.T) {
	d := newRecorder()
	locked := Locked(d)
	require.True(t, locked == Locked(locked))

	var wg sync.WaitGroup
	errCh := make(chan error, 8*50*2)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				errCh <- Show(locked, &Command{Line1: "x"})
				_, err := locked.IsPressed(Up)
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
	require.Len(t, d.Ops(), 8*50*3)
}
