package logging

import (
	"io"
	"os"
	"sync"
)

// globalWriter lets the output destination be swapped at runtime (the
// TUI redirects it to a scrollback pane instead of stderr) without
// every logger holding its own reference.
type globalWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (gw *globalWriter) Write(p []byte) (n int, err error) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	return gw.w.Write(p)
}

func (gw *globalWriter) Set(w io.Writer) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	gw.w = w
}

var defaultGlobalWriter = &globalWriter{w: os.Stderr}

// SetGlobalOutput redirects every component logger's output.
func SetGlobalOutput(w io.Writer) {
	defaultGlobalWriter.Set(w)
}

// GetGlobalOutput returns the shared writer every component logger
// should be built with.
func GetGlobalOutput() io.Writer {
	return defaultGlobalWriter
}
