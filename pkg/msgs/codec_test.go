package msgs

import (
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"
)

func TestCodecFor(t *testing.T) {
	c, err := CodecFor("")
	require.NoError(t, err)
	require.Equal(t, TextCodec{}, c)
	c, err = CodecFor(FormatProto)
	require.NoError(t, err)
	require.IsType(t, ProtoCodec{}, c)
	_, err = CodecFor("json")
	require.Error(t, err)
}

func TestTextCodec(t *testing.T) {
	var c TextCodec
	payload, err := c.EncodeCommand("abc")
	require.NoError(t, err)
	line, err := c.DecodeCommand(payload)
	require.NoError(t, err)
	require.Equal(t, "abc", line)

	payload, err = c.EncodeButton("UP")
	require.NoError(t, err)
	require.Equal(t, []byte("UP"), payload)
}

func TestProtoCodecCommand(t *testing.T) {
	var c ProtoCodec
	payload, err := c.EncodeCommand("1|0|0|Error:|Something wrong!")
	require.NoError(t, err)

	var m DisplayUpdate
	require.NoError(t, proto.Unmarshal(payload, &m))
	require.Equal(t, DisplayUpdate{Red: 1, Line1: "Error:", Line2: "Something wrong!"}, m)

	line, err := c.DecodeCommand(payload)
	require.NoError(t, err)
	require.Equal(t, "1|0|0|Error:|Something wrong!", line)

	_, err = c.EncodeCommand("abc")
	require.Error(t, err)

	payload, err = proto.Marshal(&DisplayUpdate{Line1: "a|b"})
	require.NoError(t, err)
	_, err = c.DecodeCommand(payload)
	require.Error(t, err)
}

func TestProtoCodecButton(t *testing.T) {
	now := time.Unix(100, 5)
	c := ProtoCodec{Now: func() time.Time { return now }}
	payload, err := c.EncodeButton("SELECT")
	require.NoError(t, err)

	var m ButtonPress
	require.NoError(t, proto.Unmarshal(payload, &m))
	require.Equal(t, ButtonPress{Button: "SELECT", Timestamp: now.UnixNano()}, m)

	name, err := c.DecodeButton(payload)
	require.NoError(t, err)
	require.Equal(t, "SELECT", name)

	_, err = c.EncodeButton("select")
	require.Error(t, err)
	_, err = c.DecodeButton([]byte{0xff})
	require.Error(t, err)
}
