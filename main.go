package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"ns32082/console"
	"ns32082/logger"
	"ns32082/script"
	"ns32082/system"
)

var (
	scriptPath = flag.String("script", "", "Lua script to run against the MMU")
	logPath    = flag.String("log", "", "log file, stdout when empty")
	verbose    = flag.Int("verbose", 0, "MMU trace mask: 1 protocol, 2 translation")
	gui        = flag.Bool("gui", true, "show the register monitor when running on a terminal")
)

func main() {
	flag.Parse()

	if *gui && term.IsTerminal(int(os.Stdout.Fd())) {
		runMonitor(*scriptPath, *logPath, *verbose)
		return
	}

	c := console.NewSimple(os.Stdout)
	sys := system.New(c, logger.New(*logPath))
	sys.MMU.SetVerbose(*verbose)

	if *scriptPath != "" {
		if err := script.Run(sys, *scriptPath, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
	sys.MMU.DumpRegisters(os.Stdout)
	sys.DumpTraps(os.Stdout)
}
