package lcd

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// recorder is a Display recording every content operation.
type recorder struct {
	lock    sync.Mutex
	ops     []string
	pressed map[Button]bool
	scans   []Button
	failOn  string
}

var errBus = errors.New("bus error")

func newRecorder() *recorder {
	return &recorder{pressed: make(map[Button]bool)}
}

func (r *recorder) record(op string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.failOn == op {
		return errBus
	}
	r.ops = append(r.ops, op)
	return nil
}

func (r *recorder) Clear() error {
	return r.record("clear")
}

func (r *recorder) SetColor(red, green, blue float64) error {
	return r.record(fmt.Sprintf("color(%v,%v,%v)", red, green, blue))
}

func (r *recorder) Message(text string) error {
	return r.record(fmt.Sprintf("message(%q)", text))
}

func (r *recorder) IsPressed(b Button) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.failOn == "read" {
		return false, errBus
	}
	r.scans = append(r.scans, b)
	return r.pressed[b], nil
}

func (r *recorder) press(b Button, pressed bool) {
	r.lock.Lock()
	r.pressed[b] = pressed
	r.lock.Unlock()
}

func (r *recorder) Ops() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.ops...)
}

// lines is an in-memory LineReadWriter.
type lines struct {
	lock  sync.Mutex
	in    chan string
	out   []string
	err   error
	outCh chan string
}

func newLines(in ...string) *lines {
	l := &lines{in: make(chan string, len(in)+16), outCh: make(chan string, 64)}
	for _, line := range in {
		l.in <- line
	}
	return l
}

func (l *lines) ReadLine() (string, error) {
	line, ok := <-l.in
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (l *lines) WriteLine(line string) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.err != nil {
		return l.err
	}
	l.out = append(l.out, line)
	select {
	case l.outCh <- line:
	default:
	}
	return nil
}

func (l *lines) Out() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]string(nil), l.out...)
}
