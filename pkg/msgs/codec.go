package msgs

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/lcdplate/pkg/lcd"
)

// Codec converts lines to payloads and back.
type Codec interface {
	EncodeCommand(line string) ([]byte, error)
	DecodeCommand(payload []byte) (string, error)
	EncodeButton(name string) ([]byte, error)
	DecodeButton(payload []byte) (string, error)
}

// Format names.
const (
	FormatText  = "text"
	FormatProto = "proto"
)

// CodecFor returns the Codec of a format.
func CodecFor(format string) (Codec, error) {
	switch format {
	case "", FormatText:
		return TextCodec{}, nil
	case FormatProto:
		return ProtoCodec{Now: time.Now}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// TextCodec uses lines as payloads, without validation.
type TextCodec struct{}

// EncodeCommand implements Codec.
func (TextCodec) EncodeCommand(line string) ([]byte, error) { return []byte(line), nil }

// DecodeCommand implements Codec.
func (TextCodec) DecodeCommand(payload []byte) (string, error) { return string(payload), nil }

// EncodeButton implements Codec.
func (TextCodec) EncodeButton(name string) ([]byte, error) { return []byte(name), nil }

// DecodeButton implements Codec.
func (TextCodec) DecodeButton(payload []byte) (string, error) { return string(payload), nil }

// ProtoCodec uses DisplayUpdate and ButtonPress payloads.
type ProtoCodec struct {
	Now func() time.Time
}

// EncodeCommand implements Codec. The line must be a valid control line.
func (ProtoCodec) EncodeCommand(line string) ([]byte, error) {
	cmd, err := lcd.ParseCommand(line)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(NewDisplayUpdate(cmd))
}

// DecodeCommand implements Codec.
// Rows containing the delimiter can't be expressed as a control line
// and are rejected.
func (ProtoCodec) DecodeCommand(payload []byte) (string, error) {
	var m DisplayUpdate
	if err := proto.Unmarshal(payload, &m); err != nil {
		return "", err
	}
	if strings.Contains(m.Line1, lcd.Delimiter) || strings.Contains(m.Line2, lcd.Delimiter) {
		return "", fmt.Errorf("display update contains %q: %s", lcd.Delimiter, m.String())
	}
	return m.Command().String(), nil
}

// EncodeButton implements Codec.
func (c ProtoCodec) EncodeButton(name string) ([]byte, error) {
	if _, err := lcd.ParseButton(name); err != nil {
		return nil, err
	}
	m := &ButtonPress{Button: name}
	if c.Now != nil {
		m.Timestamp = c.Now().UnixNano()
	}
	return proto.Marshal(m)
}

// DecodeButton implements Codec.
func (ProtoCodec) DecodeButton(payload []byte) (string, error) {
	var m ButtonPress
	if err := proto.Unmarshal(payload, &m); err != nil {
		return "", err
	}
	if _, err := lcd.ParseButton(m.Button); err != nil {
		return "", err
	}
	return m.Button, nil
}
