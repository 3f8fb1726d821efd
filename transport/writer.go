package transport

import (
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Writer writes each payload to an io.Writer followed by a newline, so
// consecutive payloads stay readable on a terminal or in a file.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter returns a Writer transport on out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Transmit writes payload and a trailing newline in a single Write.
func (w *Writer) Transmit(payload string) error {
	buf := make([]byte, 0, len(payload)+1)
	buf = append(buf, payload...)
	buf = append(buf, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(buf); err != nil {
		return errors.Wrap(err, "failed writing payload")
	}
	return nil
}
