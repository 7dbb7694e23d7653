package main

import (
	"math"

	"github.com/seqsense/c3dview/viewer"
)

type gestureMode int

const (
	gestureNone gestureMode = iota
	gestureRotate
	gesturePinch
	gestureZoom
)

type touchKind int

const (
	touchDown touchKind = iota
	touchMove
	touchUp
)

type touch struct {
	kind    touchKind
	id      int
	x, y    int
	primary bool
}

// gesture turns touches into viewer events: one finger rotates, two
// fingers pinch to zoom and three fingers drag the zoom.
type gesture struct {
	pointers map[int]touch
	pointer0 touch

	handler func() viewer.EventHandler

	mode      gestureMode
	distance0 float64
}

func newGesture(h func() viewer.EventHandler) *gesture {
	return &gesture{
		pointers: make(map[int]touch),
		handler:  h,
	}
}

func (g *gesture) handle(t touch) {
	switch t.kind {
	case touchDown:
		g.pointerDown(t)
	case touchMove:
		g.pointerMove(t)
	case touchUp:
		g.pointerUp(t)
	}
}

func (g *gesture) button(b viewer.MouseButton, down bool, t touch) {
	if h := g.handler(); h != nil {
		h.MouseButton(b, down, 0, t.x, t.y)
	}
}

func (g *gesture) distance() float64 {
	var pp []touch
	for id := range g.pointers {
		pp = append(pp, g.pointers[id])
	}
	return math.Hypot(float64(pp[0].x-pp[1].x), float64(pp[0].y-pp[1].y))
}

func (g *gesture) pointerUp(t touch) {
	delete(g.pointers, t.id)
	if len(g.pointers) == 0 {
		if t.primary {
			g.pointer0 = t
		}
		switch g.mode {
		case gestureRotate:
			g.button(viewer.ButtonLeft, false, g.pointer0)
		case gestureZoom:
			g.button(viewer.ButtonMiddle, false, g.pointer0)
		}
		g.mode = gestureNone
	}
}

func (g *gesture) pointerMove(t touch) {
	if _, ok := g.pointers[t.id]; !ok {
		return
	}
	g.pointers[t.id] = t

	if g.mode == gestureNone {
		switch len(g.pointers) {
		case 1:
			g.button(viewer.ButtonLeft, true, g.pointer0)
			g.mode = gestureRotate
		case 2:
			g.mode = gesturePinch
		case 3:
			g.button(viewer.ButtonMiddle, true, g.pointer0)
			g.mode = gestureZoom
		}
	}
	switch g.mode {
	case gestureRotate, gestureZoom:
		if h := g.handler(); h != nil && t.primary {
			h.MouseMotion(t.x, t.y)
		}
	case gesturePinch:
		if len(g.pointers) != 2 {
			break
		}
		d := g.distance()
		if h := g.handler(); h != nil {
			h.Wheel((g.distance0 - d) / 10)
		}
		g.distance0 = d
	}
	if t.primary {
		g.pointer0 = t
	}
}

func (g *gesture) pointerDown(t touch) {
	g.pointers[t.id] = t

	switch len(g.pointers) {
	case 1:
		g.pointer0 = t
	case 2:
		g.distance0 = g.distance()
	}
}
