package main

import (
	"strings"
	"syscall/js"

	"github.com/rs/zerolog"
)

// jsConsole writes each log line to the browser console.
type jsConsole struct{}

func (jsConsole) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: jsConsole{}, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}
