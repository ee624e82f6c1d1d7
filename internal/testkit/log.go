package testkit

import (
	"bytes"
	"sync"
	"testing"
)

// teeWriter captures build output and forwards it to the test log.
type teeWriter struct {
	mu  sync.Mutex
	buf *bytes.Buffer
	log *logWriter
}

func (w *teeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	return w.log.Write(p)
}

// logWriter writes complete lines to the test log.
type logWriter struct {
	t       testing.TB
	pending []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.t.Log(string(w.pending[:i]))
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Flush logs any trailing partial line.
func (w *logWriter) Flush() {
	if len(w.pending) > 0 {
		w.t.Log(string(w.pending))
		w.pending = nil
	}
}
