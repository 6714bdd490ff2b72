package logger

import (
	"io"
	"log"
	"os"
)

// New returns the emulator logger. An empty path logs to stdout,
// otherwise the file is opened for appending.
func New(path string) *log.Logger {
	if len(path) == 0 {
		return log.New(os.Stdout, "NS32082 ", log.Ldate|log.Ltime|log.Lshortfile)
	}
	l, err := Open(path)
	if err != nil {
		log.Fatal(err)
	}
	return l
}

// Open is New without the fatal exit.
func Open(path string) (*log.Logger, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}
	l := NewWriter(f)
	l.Printf("Initializing ns32082.log")
	return l, nil
}

// NewWriter returns a logger with the emulator prefix writing to w
func NewWriter(w io.Writer) *log.Logger {
	return log.New(w, "NS32082 ", log.Ldate|log.Ltime|log.Lshortfile)
}
