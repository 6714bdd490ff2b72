package console

import (
	"io"
	"strings"
	"sync"
)

/*
group all status console related functions here

The emulator, the script driver and the logger all write messages to a
console. Two implementations exist:
	- Simple writes to a plain io.Writer (stdout, a file, a test buffer)
	- Gui appends to a gocui view of the register monitor
*/

// Console is where emulator status messages go.
type Console interface {
	WriteConsole(msg string) error
}

// Simple console writing lines to w
type Simple struct {
	mu          sync.Mutex
	w           io.Writer
	currentLine int // number of lines written so far
}

// NewSimple returns a console writing to w
func NewSimple(w io.Writer) *Simple {
	return &Simple{w: w}
}

// WriteConsole writes msg, one line at a time. Empty lines are dropped.
func (c *Simple) WriteConsole(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(msg, "\n") {
		if line == "" {
			continue
		}
		if _, err := io.WriteString(c.w, line+"\n"); err != nil {
			return err
		}
		c.currentLine++
	}
	return nil
}

// Lines returns the number of lines written
func (c *Simple) Lines() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLine
}

// Writer adapts a Console to io.Writer, so a log.Logger can write to it.
type Writer struct {
	Console Console
}

func (w Writer) Write(p []byte) (int, error) {
	if err := w.Console.WriteConsole(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
