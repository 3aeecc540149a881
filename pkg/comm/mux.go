package comm

import (
	fx "github.com/robotalks/lcdplate/pkg/framework"
)

// WriterMux writes every line to all Writers.
type WriterMux struct {
	Writers []LineWriter
}

// WriteLine implements LineWriter.
// All writers are attempted even if some of them fail.
func (m *WriterMux) WriteLine(line string) error {
	var errs fx.AggregatedError
	for _, w := range m.Writers {
		errs.Add(w.WriteLine(line))
	}
	return errs.Aggregate()
}

// Add adds more writers.
func (m *WriterMux) Add(writers ...LineWriter) {
	m.Writers = append(m.Writers, writers...)
}
