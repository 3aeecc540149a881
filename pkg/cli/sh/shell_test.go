package sh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShowLine(t *testing.T) {
	tests := []struct {
		args []string
		line string
		err  bool
	}{
		{[]string{"1", "0", "0", "Error:", "Something wrong!"}, "1|0|0|Error:|Something wrong!", false},
		{[]string{"0", "1", "0", "Ready"}, "0|1|0|Ready|", false},
		{[]string{"0.50", "1", "0", "a", "b"}, "0.5|1|0|a|b", false},
		{[]string{"0", "1", "0"}, "", true},
		{[]string{"x", "1", "0", "a"}, "", true},
		{[]string{"0", "1", "0", "a|b"}, "", true},
	}
	for _, test := range tests {
		line, err := ShowLine(test.args)
		if test.err {
			require.Error(t, err, test.args)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, test.line, line)
	}
}

func TestStatusLine(t *testing.T) {
	line, err := StatusLine([]string{"idle", "All good"})
	require.NoError(t, err)
	require.Equal(t, "0|1|0|All good|", line)

	line, err = StatusLine([]string{"ACTIVE", "Working", "50%"})
	require.NoError(t, err)
	require.Equal(t, "0|0|1|Working|50%", line)

	line, err = StatusLine([]string{"unknown", "?"})
	require.NoError(t, err)
	require.Equal(t, "1|0|0|?|", line)

	_, err = StatusLine([]string{"IDLE"})
	require.Error(t, err)
}

func TestWatchDuration(t *testing.T) {
	d, err := watchDuration(nil)
	require.NoError(t, err)
	require.Equal(t, defaultWatchSeconds*time.Second, d)
	d, err = watchDuration([]string{"3"})
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, d)
	_, err = watchDuration([]string{"0"})
	require.Error(t, err)
}

func TestDiscovery(t *testing.T) {
	var d discovery
	d.handle("lcdplate/b/meta", []byte(`{"id":"b","format":"proto"}`))
	d.handle("lcdplate/a/meta", []byte(`{"id":"a","format":"text"}`))
	d.handle("lcdplate/c/meta", nil)
	displays, err := d.result()
	require.NoError(t, err)
	require.Len(t, displays, 2)
	require.Equal(t, "a", displays[0].Meta.ID)
	require.Equal(t, "lcdplate/a/cmd", displays[0].Topics.Command)
	require.Equal(t, "proto", displays[1].Meta.Format)

	d.handle("lcdplate/x/meta", []byte(`{"id":"y"}`))
	d.handle("lcdplate/z/meta", []byte(`not json`))
	displays, err = d.result()
	require.Error(t, err)
	require.Len(t, displays, 2)
}

func TestCommandsHelp(t *testing.T) {
	for _, cmd := range commands {
		require.NotEmpty(t, cmd.Help, cmd.Name)
	}
}
