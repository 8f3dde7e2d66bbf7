// Package teeio duplicates a single write stream to multiple sinks,
// isolating failures per sink. It exists so that a broken log
// destination can never block or corrupt the output a user sees on
// their terminal.
package teeio

import "io"

// flusher is implemented by sinks that buffer internally, e.g.
// *bufio.Writer.
type flusher interface {
	Flush() error
}

// Writer fans every write out to all sinks in construction order.
// A sink that fails to write or flush is skipped for that call; the
// remaining sinks still receive the data, and no error ever escapes.
// The first sink is conventionally the original terminal stream, so
// user-visible output is attempted before any log destination.
type Writer struct {
	sinks []io.Writer
}

// New returns a Writer fanning out to the given sinks. Nil sinks are
// tolerated and skipped.
func New(sinks ...io.Writer) *Writer {
	return &Writer{sinks: sinks}
}

// Write sends p to every sink, flushing buffered sinks after each
// write. Per-sink failures are discarded. The returned count is always
// len(p) and the returned error is always nil.
func (w *Writer) Write(p []byte) (int, error) {
	for _, s := range w.sinks {
		if s == nil {
			continue
		}
		if _, err := s.Write(p); err != nil {
			continue
		}
		if f, ok := s.(flusher); ok {
			_ = f.Flush()
		}
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush flushes every buffered sink, ignoring per-sink failures.
// It never returns a non-nil error; the signature matches the
// conventional Flush contract so Writer can itself be a teeio sink.
func (w *Writer) Flush() error {
	for _, s := range w.sinks {
		if f, ok := s.(flusher); ok {
			_ = f.Flush()
		}
	}
	return nil
}
