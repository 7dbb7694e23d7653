//go:build !js

package main

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/c3dview/viewer"
)

const (
	axisWidth  = 1
	trailWidth = 1.5
)

type glyph struct {
	x, y, depth, r float32
	color          color.NRGBA
}

// render rasterizes a snapshot: axes, then trails far to near.
func render(screen *ebiten.Image, s *viewer.Snapshot) {
	screen.Fill(viewer.Background)
	var glyphs []glyph
	for i := range s.Views {
		v := &s.Views[i]
		vp := v.Viewport
		if vp.Width <= 0 || vp.Height <= 0 {
			continue
		}
		rect := image.Rect(vp.X, vp.Y, vp.X+vp.Width, vp.Y+vp.Height)
		dst := screen.SubImage(rect).(*ebiten.Image)

		for _, l := range s.Scene.Axes {
			strokeLine(dst, v, rect, l.From, l.To, axisWidth, l.Color)
		}

		if s.Scene.Connect {
			for _, m := range s.Scene.Markers {
				for j := 1; j < len(m.Points); j++ {
					strokeLine(dst, v, rect, m.Points[j-1], m.Points[j], trailWidth, m.Color)
				}
			}
			continue
		}

		glyphs = glyphs[:0]
		for _, m := range s.Scene.Markers {
			for _, p := range m.Points {
				x, y, depth, ok := v.ToScreen(p)
				if !ok {
					continue
				}
				r := v.GlyphPixels(p, s.Scene.Radius)
				if r < 1 {
					r = 1
				}
				glyphs = append(glyphs, glyph{x: x, y: y, depth: depth, r: r, color: m.Color})
			}
		}
		sort.SliceStable(glyphs, func(i, j int) bool {
			return glyphs[i].depth > glyphs[j].depth
		})
		for _, g := range glyphs {
			vector.DrawFilledCircle(dst, g.x, g.y, g.r, g.color, true)
		}
	}
}

func strokeLine(dst *ebiten.Image, v *viewer.View, rect image.Rectangle, a, b mat.Vec3, width float32, c color.NRGBA) {
	x0, y0, x1, y1, ok := v.ClipLine(a, b)
	if !ok {
		return
	}
	x0, y0, x1, y1, ok = clipRect(x0, y0, x1, y1, rect)
	if !ok {
		return
	}
	vector.StrokeLine(dst, x0, y0, x1, y1, width, c, true)
}

// clipRect clips a segment to r (Liang-Barsky).
func clipRect(x0, y0, x1, y1 float32, r image.Rectangle) (float32, float32, float32, float32, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-dx, x0 - float32(r.Min.X)},
		{dx, float32(r.Max.X) - x0},
		{-dy, y0 - float32(r.Min.Y)},
		{dy, float32(r.Max.Y) - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func drawOverlay(screen *ebiten.Image, s *viewer.Snapshot, v *viewer.Viewer) {
	state := "playing"
	if s.Paused {
		state = "paused"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"frame %d (%s)\ntrail %d, markers %d/%d",
		s.Frame, state, v.Trail(), v.Visibility().Count(), v.MarkerCount(),
	), 4, 4)
}
