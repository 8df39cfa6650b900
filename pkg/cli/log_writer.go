package cli

import (
	"io"
	"strings"

	"github.com/haivivi/pcbuf/pkg/buffer"
)

// LogWriter implements io.Writer and keeps the most recent log lines in a
// bounded window, optionally passing every write through to another writer.
type LogWriter struct {
	buf  *buffer.Ring[string]
	next io.Writer
}

// NewLogWriter creates a log writer that keeps the last maxLines lines. If
// next is not nil, every write is also forwarded to it.
func NewLogWriter(maxLines int, next io.Writer) *LogWriter {
	return &LogWriter{
		buf:  buffer.NewRing[string](maxLines),
		next: next,
	}
}

// Write implements io.Writer.
// Handles multi-line input by splitting on newlines.
func (w *LogWriter) Write(p []byte) (n int, err error) {
	text := strings.TrimRight(string(p), "\n")
	if text != "" {
		for _, line := range strings.Split(text, "\n") {
			w.buf.Add(line)
		}
	}
	if w.next != nil {
		return w.next.Write(p)
	}
	return len(p), nil
}

// Lines returns the retained lines, oldest first.
func (w *LogWriter) Lines() []string {
	return w.buf.Items()
}
