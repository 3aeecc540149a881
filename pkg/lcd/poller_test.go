package lcd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollerScanOrder(t *testing.T) {
	d := newRecorder()
	out := newLines()
	p := NewPoller(d, out)

	require.NoError(t, p.Scan())
	require.Empty(t, out.Out())
	require.Equal(t, Buttons, d.scans)

	d.press(Right, true)
	d.press(Select, true)
	d.press(Left, true)
	require.NoError(t, p.Scan())
	require.Equal(t, []string{"SELECT", "LEFT", "RIGHT"}, out.Out())
	require.Equal(t, append(append([]Button{}, Buttons...), Buttons...), d.scans)
}

func TestPollerHeldButton(t *testing.T) {
	for _, b := range Buttons {
		t.Run(b.String(), func(t *testing.T) {
			d := newRecorder()
			out := newLines()
			p := NewPoller(d, out)
			d.press(b, true)
			const ticks = 4
			for i := 0; i < ticks; i++ {
				require.NoError(t, p.Scan())
			}
			d.press(b, false)
			require.NoError(t, p.Scan())
			expect := make([]string, ticks)
			for i := range expect {
				expect[i] = b.String()
			}
			require.Equal(t, expect, out.Out())
		})
	}
}

func TestPollerRun(t *testing.T) {
	d := newRecorder()
	out := newLines()
	p := NewPoller(d, out)
	p.Interval = 10 * time.Millisecond
	d.press(Up, true)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()
	for i := 0; i < 3; i++ {
		select {
		case line := <-out.outCh:
			require.Equal(t, "UP", line)
		case <-time.After(time.Second):
			t.Fatal("no button reported")
		}
	}
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("poller didn't stop")
	}
}

func TestPollerFaults(t *testing.T) {
	d := newRecorder()
	d.failOn = "read"
	err := NewPoller(d, newLines()).Run(context.Background())
	require.Error(t, err)
	_, ok := err.(*HardwareError)
	require.True(t, ok)

	d = newRecorder()
	d.press(Down, true)
	out := newLines()
	out.err = errors.New("closed")
	require.Equal(t, out.err, NewPoller(d, out).Scan())
}
