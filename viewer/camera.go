package viewer

import (
	"math"
)

const (
	DefaultTheta = 350.0
	DefaultPhi   = 300.0
	DefaultRho   = 1.0

	keyAngleStep = 5.0
	keyZoomStep  = 1.5
)

// Orientation is the shared camera orientation. Angles are in degrees.
type Orientation struct {
	Theta, Phi, Rho float64
}

// Camera is an orbit camera driven by drag velocities.
// A left drag rotates with a speed proportional to the cursor distance from
// the surface center, a right drag zooms.
type Camera struct {
	Orientation
	DTheta, DPhi, DRho float64

	init          Orientation
	width, height int

	pressed bool
	button  MouseButton
}

func NewCamera(o Orientation) *Camera {
	c := &Camera{
		Orientation: o,
		init:        o,
		DRho:        1,
	}
	return c
}

// Reset restores the initial orientation and stops dragging.
func (c *Camera) Reset() {
	c.Orientation = c.init
	c.pressed = false
	c.stop()
}

func (c *Camera) stop() {
	c.DTheta, c.DPhi, c.DRho = 0, 0, 1
}

func (c *Camera) Resize(w, h int) {
	c.width, c.height = w, h
}

// MouseDown starts a drag. Ctrl turns the left button into the middle one,
// Alt into the right one. Alt takes precedence when both are held.
func (c *Camera) MouseDown(b MouseButton, mods Modifier, x, y int) {
	if b == ButtonLeft {
		switch {
		case mods&ModAlt != 0:
			b = ButtonRight
		case mods&ModCtrl != 0:
			b = ButtonMiddle
		}
	}
	c.pressed = true
	c.button = b
	c.MouseMotion(x, y)
}

func (c *Camera) MouseUp() {
	c.pressed = false
	c.stop()
}

func (c *Camera) MouseMotion(x, y int) {
	if !c.pressed || c.width <= 0 || c.height <= 0 {
		return
	}
	w, h := float64(c.width), float64(c.height)
	dx, dy := float64(x)-w/2, float64(y)-h/2
	switch c.button {
	case ButtonLeft:
		c.DPhi = 5 * dy / h
		c.DTheta = 5 * dx / w
	case ButtonRight:
		c.DRho = math.Exp(dy / h / 1.3)
	}
}

// Integrate applies the drag velocities once.
func (c *Camera) Integrate() {
	c.Theta += c.DTheta
	c.Phi += c.DPhi
	c.Rho /= c.DRho
}

func (c *Camera) Key(k SpecialKey) {
	switch k {
	case KeyPageUp:
		c.Rho /= keyZoomStep
	case KeyPageDown:
		c.Rho *= keyZoomStep
	case KeyUp:
		c.Phi += keyAngleStep
	case KeyDown:
		c.Phi -= keyAngleStep
	case KeyLeft:
		c.Theta -= keyAngleStep
	case KeyRight:
		c.Theta += keyAngleStep
	}
}

// Zoom applies n normalized wheel steps. Scrolling down (positive n) zooms
// out.
func (c *Camera) Zoom(n float64) {
	c.Rho *= math.Pow(keyZoomStep, -n/4)
}
