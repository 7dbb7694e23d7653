package main

import (
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/c3dview/viewer"
)

type cursor string

const (
	cursorGrab     cursor = "grab"
	cursorGrabbing cursor = "grabbing"
	cursorNSResize cursor = "ns-resize"
)

func setCursor(canvas js.Value, c cursor) {
	canvas.Get("style").Set("cursor", string(c))
}

// dragCursor is the cursor shown while b is held: rotating or zooming.
func dragCursor(b viewer.MouseButton, mods viewer.Modifier) cursor {
	if b == viewer.ButtonLeft && mods&(viewer.ModCtrl|viewer.ModAlt) == 0 {
		return cursorGrabbing
	}
	return cursorNSResize
}

func modifiers(e webgl.MouseEvent) viewer.Modifier {
	var m viewer.Modifier
	if e.ShiftKey {
		m |= viewer.ModShift
	}
	if e.CtrlKey {
		m |= viewer.ModCtrl
	}
	if e.AltKey {
		m |= viewer.ModAlt
	}
	return m
}
