package viewer

import (
	"image/color"

	"github.com/seqsense/pcgol/mat"
)

const (
	perspectiveFOV  = 45.0
	perspectiveNear = 0.01
	perspectiveFar  = 10.0

	axisLength = 100
)

// Palette is indexed by marker index modulo its length.
var Palette = []color.NRGBA{
	{R: 255, G: 255, B: 255, A: 178}, // white
	{R: 255, G: 51, B: 51, A: 178},   // red
	{R: 255, G: 255, B: 51, A: 178},  // yellow
	{R: 51, G: 230, B: 51, A: 178},   // green
	{R: 51, G: 77, B: 230, A: 178},   // blue
	{R: 255, G: 178, B: 51, A: 178},  // orange
}

// Background is the clear color of the drawing surface.
var Background = color.NRGBA{R: 230, G: 230, B: 230, A: 255}

// Viewport is a rectangle of the drawing surface in pixels, with the
// origin at the top-left corner.
type Viewport struct {
	X, Y, Width, Height int
}

// View is a projection and model transform rendered into a viewport.
type View struct {
	Projection Projection
	Model      Transform
	Viewport   Viewport

	mvp, mv, proj mat.Mat4
}

func newView(p Projection, model Transform, vp Viewport) View {
	v := View{
		Projection: p,
		Model:      model,
		Viewport:   vp,
		mv:         model.Matrix(),
		proj:       p.Matrix(),
	}
	v.mvp = v.proj.Mul(v.mv)
	return v
}

func (v *View) ModelViewMatrix() mat.Mat4 {
	return v.mv
}

func (v *View) ProjectionMatrix() mat.Mat4 {
	return v.proj
}

// ToScreen projects a model point to surface pixels. depth grows with the
// distance from the viewer. ok is false if the point is behind the camera
// or outside the view volume, near and far planes included.
func (v *View) ToScreen(p mat.Vec3) (x, y, depth float32, ok bool) {
	c := transform4(v.mvp, p)
	if c[3] <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz := c[0]/c[3], c[1]/c[3], c[2]/c[3]
	x, y = v.pixel(c)
	return x, y, nz, inUnit(nx) && inUnit(ny) && inUnit(nz)
}

func inUnit(a float32) bool {
	return -1 <= a && a <= 1
}

// ClipLine projects the segment a-b to surface pixels, cutting the part
// behind the camera. ok is false if nothing of it is in front.
func (v *View) ClipLine(a, b mat.Vec3) (x0, y0, x1, y1 float32, ok bool) {
	const minW = 1e-5
	ca, cb := transform4(v.mvp, a), transform4(v.mvp, b)
	if ca[3] < minW && cb[3] < minW {
		return 0, 0, 0, 0, false
	}
	cut := func(in, out [4]float32) [4]float32 {
		t := (minW - in[3]) / (out[3] - in[3])
		var c [4]float32
		for i := range c {
			c[i] = in[i] + t*(out[i]-in[i])
		}
		return c
	}
	switch {
	case ca[3] < minW:
		ca = cut(cb, ca)
	case cb[3] < minW:
		cb = cut(ca, cb)
	}
	x0, y0 = v.pixel(ca)
	x1, y1 = v.pixel(cb)
	return x0, y0, x1, y1, true
}

func (v *View) pixel(c [4]float32) (x, y float32) {
	nx, ny := c[0]/c[3], c[1]/c[3]
	x = float32(v.Viewport.X) + (nx+1)/2*float32(v.Viewport.Width)
	y = float32(v.Viewport.Y) + (1-ny)/2*float32(v.Viewport.Height)
	return x, y
}

// GlyphPixels returns the on-screen radius of a sphere of radius r (in model
// units) centered at p.
func (v *View) GlyphPixels(p mat.Vec3, r float32) float32 {
	e := v.mv.TransformAffine(p)
	r *= mat.Vec3{v.mv[0], v.mv[1], v.mv[2]}.Norm()
	c0 := transform4(v.proj, e)
	c1 := transform4(v.proj, mat.Vec3{e[0], e[1] + r, e[2]})
	if c0[3] <= 0 || c1[3] <= 0 {
		return 0
	}
	d := c1[1]/c1[3] - c0[1]/c0[3]
	if d < 0 {
		d = -d
	}
	return d / 2 * float32(v.Viewport.Height)
}

// Compose lays out one perspective view on the left two thirds of a w×h
// surface and three orthographic plan views (XY, YZ, XZ from top to
// bottom) on the right.
func Compose(w, h int, o Orientation) []View {
	leftWidth := 2 * w / 3
	aspect := 1.0
	if h > 0 {
		aspect = float64(leftWidth) / float64(h)
	}
	rho := o.Rho
	views := make([]View, 0, 4)
	views = append(views, newView(
		Projection{
			Kind:   Perspective,
			FOV:    perspectiveFOV,
			Aspect: aspect,
			Near:   perspectiveNear,
			Far:    perspectiveFar,
		},
		Transform{
			Translate(0, 0, -1),
			Rotate(o.Phi, 1, 0, 0),
			Rotate(o.Theta, 0, 0, 1),
			Scale(rho, rho, rho),
		},
		Viewport{0, 0, leftWidth, h},
	))

	z := 1 / (2 * rho)
	ortho := Projection{
		Kind: Orthographic,
		Left: -z, Right: z,
		Bottom: -z, Top: z,
		Near: -z, Far: z,
	}
	planes := []Transform{
		{Translate(0, 0, -1), Scale(2, 2, 2)},
		{Rotate(-90, 1, 0, 0), Translate(0, 0, -1), Scale(2, 2, 2)},
		{Rotate(-90, 1, 0, 0), Rotate(-90, 0, 0, 1), Translate(0, 0, -1), Scale(2, 2, 2)},
	}
	third := h / 3
	for i, t := range planes {
		views = append(views, newView(ortho, t, Viewport{leftWidth, i * third, w - leftWidth, third}))
	}
	return views
}

// Line is a colored segment of the scene.
type Line struct {
	From, To mat.Vec3
	Color    color.NRGBA
}

// MarkerTrail is the retained history of one visible marker, oldest first.
type MarkerTrail struct {
	Index  int
	Label  string
	Color  color.NRGBA
	Points []mat.Vec3
}

// Scene is the geometry shared by every view of one tick.
type Scene struct {
	Axes    []Line
	Markers []MarkerTrail
	// Radius of the marker glyphs in model units.
	Radius float32
	// Connect draws each trail as a polyline instead of separate glyphs.
	Connect bool
}

var axes = []Line{
	{To: mat.Vec3{axisLength, 0, 0}, Color: color.NRGBA{R: 255, A: 255}},
	{To: mat.Vec3{0, axisLength, 0}, Color: color.NRGBA{G: 255, A: 255}},
	{To: mat.Vec3{0, 0, axisLength}, Color: color.NRGBA{B: 255, A: 255}},
}

func glyphRadius(rho float64) float32 {
	return float32(1 / (200 * rho))
}

// Snapshot is everything a renderer needs for one tick. It must not be
// modified.
type Snapshot struct {
	Width, Height int
	Views         []View
	Scene         *Scene
	Frame         int
	Paused        bool
}

func colorOf(i int) color.NRGBA {
	return Palette[i%len(Palette)]
}
