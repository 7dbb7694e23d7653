package main

import (
	"image/color"

	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/c3dview/viewer"
)

const (
	aVertexPosition = 0
	aVertexColor    = 1

	vertexSize = 7 // x, y, z, r, g, b, a
)

type renderer struct {
	gl      *webgl.WebGL
	program webgl.Program
	buf     webgl.Buffer

	uModelViewMatrix  webgl.Location
	uProjectionMatrix webgl.Location
	uRadius           webgl.Location
	uViewportHeight   webgl.Location
	uRound            webgl.Location

	data []float32
}

func newRenderer(gl *webgl.WebGL) (*renderer, error) {
	vs, err := initVertexShader(gl, vsSource)
	if err != nil {
		return nil, err
	}
	fs, err := initFragmentShader(gl, fsSource)
	if err != nil {
		return nil, err
	}
	program, err := linkShaders(gl, vs, fs)
	if err != nil {
		return nil, err
	}

	r := &renderer{
		gl:      gl,
		program: program,
		buf:     gl.CreateBuffer(),

		uModelViewMatrix:  gl.GetUniformLocation(program, "uModelViewMatrix"),
		uProjectionMatrix: gl.GetUniformLocation(program, "uProjectionMatrix"),
		uRadius:           gl.GetUniformLocation(program, "uRadius"),
		uViewportHeight:   gl.GetUniformLocation(program, "uViewportHeight"),
		uRound:            gl.GetUniformLocation(program, "uRound"),
	}

	bg := viewer.Background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.ClearDepth(1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(program)
	gl.EnableVertexAttribArray(aVertexPosition)
	gl.EnableVertexAttribArray(aVertexColor)
	return r, nil
}

func (r *renderer) vertex(p mat.Vec3, c color.NRGBA) {
	r.data = append(r.data,
		p[0], p[1], p[2],
		float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255,
	)
}

// draw renders every view of s. Vertices are laid out as the axes
// followed by the trails, as points or as line segments.
func (r *renderer) draw(s *viewer.Snapshot) {
	gl := r.gl
	gl.Viewport(0, 0, s.Width, s.Height)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.data = r.data[:0]
	for _, l := range s.Scene.Axes {
		r.vertex(l.From, l.Color)
		r.vertex(l.To, l.Color)
	}
	nAxes := len(r.data) / vertexSize
	for _, m := range s.Scene.Markers {
		if s.Scene.Connect {
			for i := 1; i < len(m.Points); i++ {
				r.vertex(m.Points[i-1], m.Color)
				r.vertex(m.Points[i], m.Color)
			}
			continue
		}
		for _, p := range m.Points {
			r.vertex(p, m.Color)
		}
	}
	nTrails := len(r.data)/vertexSize - nAxes

	gl.UseProgram(r.program)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.buf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(r.data), gl.STATIC_DRAW)
	gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, vertexSize*4, 0)
	gl.VertexAttribPointer(aVertexColor, 4, gl.FLOAT, false, vertexSize*4, 3*4)
	gl.Uniform1f(r.uRadius, s.Scene.Radius)

	for i := range s.Views {
		v := &s.Views[i]
		vp := v.Viewport
		if vp.Width <= 0 || vp.Height <= 0 {
			continue
		}
		// GL viewports count from the bottom-left corner.
		gl.Viewport(vp.X, s.Height-vp.Y-vp.Height, vp.Width, vp.Height)
		gl.UniformMatrix4fv(r.uModelViewMatrix, false, v.ModelViewMatrix())
		gl.UniformMatrix4fv(r.uProjectionMatrix, false, v.ProjectionMatrix())
		gl.Uniform1f(r.uViewportHeight, float32(vp.Height))

		gl.Uniform1f(r.uRound, 0)
		gl.DrawArrays(gl.LINES, 0, nAxes)
		if nTrails == 0 {
			continue
		}
		if s.Scene.Connect {
			gl.DrawArrays(gl.LINES, nAxes, nTrails)
			continue
		}
		gl.Uniform1f(r.uRound, 1)
		gl.DrawArrays(gl.POINTS, nAxes, nTrails)
	}
}
