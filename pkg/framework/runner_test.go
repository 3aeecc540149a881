package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForCancel(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunnerFirstExitStopsOthers(t *testing.T) {
	r := NewRunner()
	r.Go(
		NamedRun("blocked", RunFunc(waitForCancel)),
		NamedRun("done", RunFunc(func(context.Context) error { return nil })),
	)
	errCh := make(chan error, 1)
	go func() { errCh <- r.Wait() }()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewRunner()
	r.Go(
		RunFunc(waitForCancel),
		RunFunc(func(context.Context) error { return boom }),
	)
	require.Equal(t, boom, r.Wait())
}

func TestRunnerStop(t *testing.T) {
	r := NewRunnerWith(context.Background())
	r.Go(RunFunc(waitForCancel), RunFunc(waitForCancel))
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())
	e1, e2 := errors.New("e1"), errors.New("e2")
	require.Equal(t, e1, errs.Add(e1).Aggregate())
	err := errs.Add(e2).Aggregate()
	require.Error(t, err)
	require.Equal(t, "Multiple errors:\ne1\ne2", err.Error())
}

func TestRunWithContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	var canceled bool
	go cancel()
	err := RunWithContextCancel(ctx, func() {
		canceled = true
		close(release)
	}, func() error {
		<-release
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.True(t, canceled)
}
