// Package comm carries control lines and button events between the
// display daemon and its peers.
//
// Every transport speaks the same line protocol: inbound records are
// control lines (R|G|B|LINE1|LINE2) and outbound records are button names.
// A LineReader returns io.EOF once its source is closed.
package comm

// LineError is an error affecting a single line, the reader returning it
// can still be read from.
type LineError interface {
	error
	LineError() bool
}

// IsLineError tells if err only affects the line just read.
func IsLineError(err error) bool {
	le, ok := err.(LineError)
	return ok && le.LineError()
}

// LineReader reads one line without the trailing newline.
type LineReader interface {
	ReadLine() (string, error)
}

// LineWriter writes one line, the newline is added by the writer.
type LineWriter interface {
	WriteLine(string) error
}

// LineReadWriter reads/writes lines.
type LineReadWriter interface {
	LineReader
	LineWriter
}

// LineWriterFunc is func form of LineWriter.
type LineWriterFunc func(string) error

// WriteLine implements LineWriter.
func (f LineWriterFunc) WriteLine(line string) error {
	return f(line)
}
