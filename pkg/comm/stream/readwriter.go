package stream

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"sync"

	"github.com/robotalks/lcdplate/pkg/lcd"
)

// MaxLineLength is the longest line ReadLine accepts, in bytes.
const MaxLineLength = 64 * 1024

// ReadWriter implements LineReadWriter over byte streams.
// Each line is terminated by '\n'; a trailing '\r' is dropped on read.
type ReadWriter struct {
	r    *bufio.Reader
	w    io.Writer
	lock sync.Mutex
}

// New creates a ReadWriter. Either r or w may be nil when only one
// direction is used.
func New(r io.Reader, w io.Writer) *ReadWriter {
	p := &ReadWriter{w: w}
	if r != nil {
		p.r = bufio.NewReader(r)
	}
	return p
}

// ReadLine implements LineReader.
// A line longer than MaxLineLength is consumed and reported as
// *lcd.MalformedInputError, reading continues with the next line.
func (p *ReadWriter) ReadLine() (string, error) {
	if p.r == nil {
		return "", io.EOF
	}
	var line []byte
	tooLong := false
	for {
		frag, err := p.r.ReadSlice('\n')
		if !tooLong {
			line = append(line, frag...)
			// room for "\r\n"
			if len(line) > MaxLineLength+2 {
				tooLong, line = true, line[:32]
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && (len(line) > 0 || tooLong) {
			break
		}
		if err != nil {
			return "", err
		}
		break
	}
	if !tooLong {
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > MaxLineLength {
			tooLong, line = true, line[:32]
		}
	}
	if tooLong {
		return "", &lcd.MalformedInputError{
			Line:   string(line) + "...",
			Reason: "longer than " + strconv.Itoa(MaxLineLength) + " bytes",
		}
	}
	return string(line), nil
}

// WriteLine implements LineWriter.
// Lines from concurrent writers are never interleaved.
func (p *ReadWriter) WriteLine(line string) error {
	if p.w == nil {
		return io.ErrClosedPipe
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	_, err := io.WriteString(p.w, line+"\n")
	return err
}
