// Package msgs provides the payload formats of the MQTT transport.
package msgs

// Two formats are supported:
//
// text:  the payload is the line itself, a control line on the command
//        topic and a button name on the button topic.
// proto: the payload is a protobuf encoded DisplayUpdate on the command
//        topic and a ButtonPress on the button topic.
//
// Producer: lcdplated (ButtonPress), clients (DisplayUpdate)
// Consumer: lcdplated (DisplayUpdate), clients (ButtonPress)
