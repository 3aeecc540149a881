// Package lcd drives a two-line character LCD with five buttons.
//
// Two tasks share one display handle. Poller scans SELECT, UP, DOWN,
// LEFT, RIGHT every interval and writes the name of each pressed button
// as one output line. A held button is reported once per scan.
//
// Controller shows "Starting up..." on a blue backlight, then applies
// every control line read from its input by clearing the display,
// setting the backlight colour and rendering LINE1 and LINE2 on the two
// rows. Nothing is sent back. A control line is:
//
//	R|G|B|LINE1|LINE2
//
// The handle is always wrapped with Locked before it is shared, the bus
// behind a display driver is not safe for concurrent callers.
package lcd
