package main

import (
	"errors"
	"syscall/js"
)

var (
	errContextLostEvent = errors.New("received context lost event")
	errNoRecording      = errors.New("no recording loaded")
)

func errorToJS(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}
