package refflat

import (
	"bufio"
	"io"
)

// Writer writes RefFlat rows in tab-delimited format, newline-separated with
// no trailing newline after the final row.
type Writer struct {
	w     *bufio.Writer
	wrote bool
}

// NewWriter creates a new RefFlat writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes a single row.
func (w *Writer) Write(row Row) error {
	if w.wrote {
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(row.String()); err != nil {
		return err
	}
	w.wrote = true
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// multiWriter fans rows out to several writers.
type multiWriter struct {
	writers []RowWriter
}

// MultiWriter returns a RowWriter that duplicates each row to all of ws.
func MultiWriter(ws ...RowWriter) RowWriter {
	return &multiWriter{writers: ws}
}

func (m *multiWriter) Write(row Row) error {
	for _, w := range m.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiWriter) Flush() error {
	for _, w := range m.writers {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
