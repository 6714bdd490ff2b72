package console

import (
	"sync"

	"github.com/jroimartin/gocui"
)

// Gui console appending to a gocui view.
type Gui struct {
	g    *gocui.Gui // main gocui GUI object
	view string     // name of the view to write to

	mu      sync.Mutex
	pending []byte
}

// NewGui returns a console writing to the named view of g
func NewGui(g *gocui.Gui, view string) *Gui {
	return &Gui{g: g, view: view}
}

// WriteConsole queues msg for the view. gocui views may only be touched
// from the main loop, so the text is flushed from an update function.
func (c *Gui) WriteConsole(msg string) error {
	c.mu.Lock()
	c.pending = append(c.pending, msg...)
	if len(msg) > 0 && msg[len(msg)-1] != '\n' {
		c.pending = append(c.pending, '\n')
	}
	c.mu.Unlock()

	c.g.Update(c.flush)
	return nil
}

func (c *Gui) flush(g *gocui.Gui) error {
	c.mu.Lock()
	data := c.pending
	c.pending = nil
	c.mu.Unlock()

	if len(data) == 0 {
		return nil
	}
	v, err := g.View(c.view)
	if err != nil {
		return err
	}
	_, err = v.Write(data)
	return err
}
