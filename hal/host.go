package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// GLConfig controls the GLFW/OpenGL backend.
type GLConfig struct {
	// SwapInterval is applied once a context is current. 1 waits for vblank.
	SwapInterval int
}

// EbitenConfig controls the ebiten window backend.
type EbitenConfig struct {
	TPS   int
	VSync bool
}

// NewLogger returns a Logger that writes lines to w, or to stdout if w is nil.
func NewLogger(w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	return &hostLogger{w: w}
}

// Discard is a Logger that drops everything.
var Discard Logger = discardLogger{}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type discardLogger struct{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}
