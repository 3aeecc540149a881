package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/lcdplate/pkg/lcd"
)

// DisplayUpdate is the protobuf form of a control line.
type DisplayUpdate struct {
	Red   float64 `protobuf:"fixed64,1,opt,name=red,proto3" json:"red,omitempty"`
	Green float64 `protobuf:"fixed64,2,opt,name=green,proto3" json:"green,omitempty"`
	Blue  float64 `protobuf:"fixed64,3,opt,name=blue,proto3" json:"blue,omitempty"`
	Line1 string  `protobuf:"bytes,4,opt,name=line1,proto3" json:"line1,omitempty"`
	Line2 string  `protobuf:"bytes,5,opt,name=line2,proto3" json:"line2,omitempty"`
}

// NewDisplayUpdate creates a DisplayUpdate from a command.
func NewDisplayUpdate(cmd *lcd.Command) *DisplayUpdate {
	return &DisplayUpdate{
		Red:   cmd.Red,
		Green: cmd.Green,
		Blue:  cmd.Blue,
		Line1: cmd.Line1,
		Line2: cmd.Line2,
	}
}

// Command converts back to lcd.Command.
func (m *DisplayUpdate) Command() *lcd.Command {
	return &lcd.Command{
		Red:   m.Red,
		Green: m.Green,
		Blue:  m.Blue,
		Line1: m.Line1,
		Line2: m.Line2,
	}
}

// ProtoMessage implements proto.Message.
func (m *DisplayUpdate) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DisplayUpdate) Reset() { *m = DisplayUpdate{} }

// String implements proto.Message.
func (m *DisplayUpdate) String() string { return proto.CompactTextString(m) }

// ButtonPress reports a pressed button.
type ButtonPress struct {
	Button string `protobuf:"bytes,1,opt,name=button,proto3" json:"button,omitempty"`
	// Timestamp is the time of the scan in Unix nanoseconds.
	Timestamp int64 `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *ButtonPress) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ButtonPress) Reset() { *m = ButtonPress{} }

// String implements proto.Message.
func (m *ButtonPress) String() string { return proto.CompactTextString(m) }
