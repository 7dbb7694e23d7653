package viewer

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

var identity = mat.Scale(1, 1, 1)

type OpKind int

const (
	OpTranslate OpKind = iota
	OpRotate
	OpScale
)

// Op is one step of a model transform. Angle is in degrees around the
// axis (X, Y, Z) for OpRotate.
type Op struct {
	Kind    OpKind
	X, Y, Z float64
	Angle   float64
}

func Translate(x, y, z float64) Op {
	return Op{Kind: OpTranslate, X: x, Y: y, Z: z}
}

func Rotate(angle, x, y, z float64) Op {
	return Op{Kind: OpRotate, Angle: angle, X: x, Y: y, Z: z}
}

func Scale(x, y, z float64) Op {
	return Op{Kind: OpScale, X: x, Y: y, Z: z}
}

func (o Op) Matrix() mat.Mat4 {
	switch o.Kind {
	case OpTranslate:
		return mat.Translate(float32(o.X), float32(o.Y), float32(o.Z))
	case OpRotate:
		return mat.Rotate(float32(o.X), float32(o.Y), float32(o.Z), float32(o.Angle*math.Pi/180))
	case OpScale:
		return mat.Scale(float32(o.X), float32(o.Y), float32(o.Z))
	}
	return identity
}

// Transform is applied like a sequence of OpenGL matrix calls: the last
// operation acts on the model first.
type Transform []Op

func (t Transform) Matrix() mat.Mat4 {
	m := identity
	for _, o := range t {
		m = m.MulAffine(o.Matrix())
	}
	return m
}

type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

func (k ProjectionKind) String() string {
	switch k {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	}
	return "unknown"
}

type Projection struct {
	Kind ProjectionKind
	// Perspective
	FOV    float64 // vertical, degrees
	Aspect float64
	// Orthographic
	Left, Right, Bottom, Top float64

	Near, Far float64
}

func (p Projection) Matrix() mat.Mat4 {
	if p.Kind == Orthographic {
		return orthographic(
			float32(p.Left), float32(p.Right),
			float32(p.Bottom), float32(p.Top),
			float32(p.Near), float32(p.Far),
		)
	}
	// mat.Perspective takes the horizontal angle.
	fovy := p.FOV * math.Pi / 180
	fovx := 2 * math.Atan(p.Aspect*math.Tan(fovy/2))
	return mat.Perspective(
		float32(fovx), float32(p.Aspect),
		float32(p.Near), float32(p.Far),
	)
}

// orthographic follows glOrtho: near and far are distances along -z.
func orthographic(left, right, bottom, top, near, far float32) mat.Mat4 {
	return mat.Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// transform4 returns m·(a, 1) without the perspective division.
func transform4(m mat.Mat4, a mat.Vec3) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = m[4*0+i]*a[0] + m[4*1+i]*a[1] + m[4*2+i]*a[2] + m[4*3+i]
	}
	return out
}
