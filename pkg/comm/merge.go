package comm

import (
	"io"
	"sync"
)

type readResult struct {
	line string
	err  error
}

// Merged reads lines from several LineReaders in arrival order.
type Merged struct {
	readers []LineReader
	ch      chan readResult
	once    sync.Once
}

// Merge creates a LineReader over all readers.
// ReadLine returns io.EOF once every reader reached io.EOF;
// any other error is returned as soon as it is read and, unless it is a
// LineError, that reader is no longer consulted.
func Merge(readers ...LineReader) *Merged {
	return &Merged{readers: readers, ch: make(chan readResult)}
}

func (m *Merged) start() {
	var wg sync.WaitGroup
	for _, r := range m.readers {
		wg.Add(1)
		go func(r LineReader) {
			defer wg.Done()
			for {
				line, err := r.ReadLine()
				if err == io.EOF {
					return
				}
				m.ch <- readResult{line: line, err: err}
				if err != nil && !IsLineError(err) {
					return
				}
			}
		}(r)
	}
	go func() {
		wg.Wait()
		close(m.ch)
	}()
}

// ReadLine implements LineReader.
func (m *Merged) ReadLine() (string, error) {
	m.once.Do(m.start)
	res, ok := <-m.ch
	if !ok {
		return "", io.EOF
	}
	return res.line, res.err
}
