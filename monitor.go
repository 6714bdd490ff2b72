package main

import (
	"fmt"
	"log"
	"time"

	"github.com/jroimartin/gocui"

	"ns32082/console"
	"ns32082/logger"
	"ns32082/script"
	"ns32082/system"
)

// monitor shows the MMU registers while a script runs. Everything that
// touches the system runs on the gocui main loop.
type monitor struct {
	g      *gocui.Gui
	sys    *system.System
	script string

	status *console.Gui
	output *console.Gui
	ticks  int
}

func runMonitor(scriptPath, logPath string, verbose int) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln("Couldn't create gui!")
	}
	defer g.Close()

	g.SetManagerFunc(layout)

	m := &monitor{
		g:      g,
		script: scriptPath,
		status: console.NewGui(g, "status"),
		output: console.NewGui(g, "console"),
	}

	// logging to stdout would garble the screen
	var l *log.Logger
	if logPath == "" {
		l = logger.NewWriter(console.Writer{Console: m.status})
	} else {
		l = logger.New(logPath)
	}
	m.sys = system.New(m.status, l)
	m.sys.MMU.SetVerbose(verbose)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		log.Panicln(err)
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlR, gocui.ModNone, m.rerun); err != nil {
		log.Panicln(err)
	}

	g.Update(m.start)
	stop := m.updateRegisters()
	defer stop()

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

// start runs the script once the views exist
func (m *monitor) start(g *gocui.Gui) error {
	if err := layout(g); err != nil {
		return err
	}
	_ = m.status.WriteConsole("Starting NS32082 MMU monitor. Ctrl-R reruns, Ctrl-C quits.")
	return m.run(g)
}

func (m *monitor) run(g *gocui.Gui) error {
	if m.script != "" {
		if err := script.Run(m.sys, m.script, console.Writer{Console: m.output}); err != nil {
			_ = m.status.WriteConsole(err.Error())
		}
	}
	return m.refresh(g)
}

func (m *monitor) rerun(g *gocui.Gui, v *gocui.View) error {
	out, err := g.View("console")
	if err != nil {
		return err
	}
	out.Clear()
	m.sys.Reset()
	return m.run(g)
}

// refresh redraws the register view
func (m *monitor) refresh(g *gocui.Gui) error {
	v, err := g.View("registers")
	if err != nil {
		return err
	}
	v.Clear()
	m.sys.MMU.DumpRegisters(v)
	fmt.Fprintf(v, " cycles %d traps %d <t : 0x%x>", m.sys.Cycles, len(m.sys.Traps()), m.ticks)
	m.ticks++
	return nil
}

// update registers display
// gocui allows updating the view only through the Update function.
// The returned function stops the refresh.
func (m *monitor) updateRegisters() func() {
	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				m.g.Update(m.refresh)
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// up -> script output
	if v, err := g.SetView("console", 0, 0, maxX-1, maxY-18); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Console"
		v.Autoscroll = true
	}

	// middle -> register values
	if v, err := g.SetView("registers", 0, maxY-17, maxX-1, maxY-12); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
		v.Wrap = true
	}
	// down -> status
	if v, err := g.SetView("status", 0, maxY-11, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		v.Autoscroll = true
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
