package viewer

import (
	"errors"
	"testing"
	"time"

	"github.com/seqsense/c3dview/playback"
	"github.com/seqsense/pcgol/mat"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time {
	return f.t
}

func (f *fakeTime) sleep(d time.Duration) {
	f.t = f.t.Add(d)
}

// countingSource records every pull.
type countingSource struct {
	playback.SliceSource
	pulls int
}

func (s *countingSource) Next() (*playback.Frame, error) {
	s.pulls++
	return s.SliceSource.Next()
}

func newSource(frames, markers int, rate float64) *countingSource {
	s := &countingSource{}
	s.Rate = rate
	s.Markers = markers
	for i := 0; i < frames; i++ {
		f := &playback.Frame{Index: i}
		for j := 0; j < markers; j++ {
			f.Points = append(f.Points, mat.Vec3{float32(i), float32(j), 0})
		}
		s.Frames = append(s.Frames, f)
	}
	return s
}

func newTestViewer(t *testing.T, src playback.FrameSource) (*Viewer, *fakeTime) {
	t.Helper()
	ft := &fakeTime{t: time.Unix(1000, 0)}
	opts := DefaultOptions()
	opts.ClockOptions = []playback.ClockOption{playback.WithTimeSource(ft.now, ft.sleep)}
	v, err := New(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	return v, ft
}

func TestViewer_EndToEnd(t *testing.T) {
	src := newSource(3, 2, 30)
	v, ft := newTestViewer(t, src)
	v.SetTrail(10)

	for i := 0; i < 3; i++ {
		if err := v.Idle(); err != nil {
			t.Fatal(err)
		}
		ft.t = ft.t.Add(time.Second)
	}
	for i, tr := range v.Trails() {
		if tr.Len() != 3 {
			t.Errorf("Marker %d: expected 3 points, got %d", i, tr.Len())
		}
		for j, p := range tr.Points() {
			if expected := (mat.Vec3{float32(j), float32(i), 0}); !p.Equal(expected) {
				t.Errorf("Marker %d point %d: expected %v, got %v", i, j, expected, p)
			}
		}
	}
	if src.pulls != 3 {
		t.Fatalf("Expected 3 pulls, got %d", src.pulls)
	}
	if err := v.Idle(); !errors.Is(err, playback.ErrStreamExhausted) {
		t.Errorf("Expected ErrStreamExhausted on the 4th pull, got %v", err)
	}
	if src.pulls != 4 {
		t.Errorf("Expected 4 pulls, got %d", src.pulls)
	}
}

func TestViewer_InvalidFrameRate(t *testing.T) {
	_, err := New(newSource(1, 1, 0), DefaultOptions())
	if !errors.Is(err, playback.ErrInvalidFrameRate) {
		t.Errorf("Expected ErrInvalidFrameRate, got %v", err)
	}
}

func TestViewer_HiddenMarkersAccumulate(t *testing.T) {
	v, ft := newTestViewer(t, newSource(4, 3, 10))
	v.Keyboard('+')
	v.Keyboard('+')
	v.Keyboard('1')
	v.Keyboard('7') // out of range

	for i := 0; i < 4; i++ {
		if err := v.Idle(); err != nil {
			t.Fatal(err)
		}
		ft.t = ft.t.Add(time.Second)
	}
	if n := v.Trails()[1].Len(); n != 4 {
		t.Errorf("Hidden marker must keep its history, expected 4 points, got %d", n)
	}

	s := v.Draw()
	if len(s.Scene.Markers) != 2 {
		t.Fatalf("Expected 2 visible markers, got %d", len(s.Scene.Markers))
	}
	for i, m := range s.Scene.Markers {
		if expected := []int{0, 2}[i]; m.Index != expected {
			t.Errorf("Expected marker %d, got %d", expected, m.Index)
		}
		if m.Color != Palette[m.Index] {
			t.Errorf("Unexpected color %v for marker %d", m.Color, m.Index)
		}
		if len(m.Points) != 4 {
			t.Errorf("Expected 4 points, got %d", len(m.Points))
		}
	}

	v.Keyboard('1')
	if s := v.Draw(); len(s.Scene.Markers) != 3 || len(s.Scene.Markers[1].Points) != 4 {
		t.Error("Shown marker must render its whole history")
	}
}

func TestViewer_Keyboard(t *testing.T) {
	v, ft := newTestViewer(t, newSource(10, 1, 10))

	t.Run("TrailCapacityRoundTrip", func(t *testing.T) {
		for _, c := range []int{1, 3, 8} {
			v.SetTrail(c)
			v.Keyboard('=')
			if v.Trail() != 2*c {
				t.Errorf("Expected capacity %d, got %d", 2*c, v.Trail())
			}
			v.Keyboard('_')
			if v.Trail() != c {
				t.Errorf("Doubling then halving must restore %d, got %d", c, v.Trail())
			}
		}
		v.SetTrail(1)
		v.Keyboard('-')
		if v.Trail() != 1 || v.Trails()[0].Cap() != 1 {
			t.Errorf("Capacity must not go below 1, got %d", v.Trail())
		}
	})

	t.Run("Pause", func(t *testing.T) {
		v.Keyboard('p')
		phi := v.Camera().Phi
		v.Camera().DPhi = 1
		for i := 0; i < 3; i++ {
			ft.t = ft.t.Add(time.Second)
			if err := v.Idle(); err != nil {
				t.Fatal(err)
			}
		}
		if v.Frame() != -1 {
			t.Errorf("Paused session must not pull frames, got frame %d", v.Frame())
		}
		if v.Camera().Phi != phi+3 {
			t.Errorf("Camera must integrate while paused, expected %f, got %f", phi+3, v.Camera().Phi)
		}
		if !v.Draw().Paused {
			t.Error("Snapshot must report pause")
		}
		v.Keyboard('p')
		if err := v.Idle(); err != nil {
			t.Fatal(err)
		}
		if v.Frame() != 0 {
			t.Errorf("Expected frame 0, got %d", v.Frame())
		}
	})

	t.Run("TrailGrowthSaturates", func(t *testing.T) {
		v.SetTrail(1)
		held := v.Trails()[0].Len()
		for i := 0; i < 80; i++ {
			v.Keyboard('+')
		}
		if v.Trail() != 1<<62 {
			t.Errorf("Expected capacity to stop at %d, got %d", 1<<62, v.Trail())
		}
		if n := v.Trails()[0].Len(); n != held {
			t.Errorf("Growing must keep the %d held points, got %d", held, n)
		}
	})

	t.Run("Quit", func(t *testing.T) {
		v.Keyboard('q')
		if err := v.Idle(); !errors.Is(err, ErrQuit) {
			t.Errorf("Expected ErrQuit, got %v", err)
		}
	})
}

func TestViewer_Events(t *testing.T) {
	v, _ := newTestViewer(t, newSource(1, 1, 10))
	v.Reshape(900, 600)

	v.MouseButton(ButtonLeft, true, 0, 450, 240)
	v.MouseMotion(450, 240)
	if v.Camera().DPhi != -0.5 {
		t.Errorf("Expected d_phi=-0.5, got %f", v.Camera().DPhi)
	}
	v.MouseButton(ButtonLeft, false, 0, 450, 240)
	if v.Camera().DPhi != 0 {
		t.Errorf("Expected d_phi=0 after release, got %f", v.Camera().DPhi)
	}

	v.SpecialKey(KeyPageDown)
	s := v.Draw()
	if s.Width != 900 || s.Height != 600 || len(s.Views) != 4 {
		t.Fatalf("Unexpected snapshot %+v", s)
	}
	if s.Views[0].Viewport != (Viewport{0, 0, 600, 600}) {
		t.Errorf("Unexpected perspective viewport %v", s.Views[0].Viewport)
	}
	if s.Scene.Radius != glyphRadius(1.5) {
		t.Errorf("Expected glyph radius %f, got %f", glyphRadius(1.5), s.Scene.Radius)
	}
	if len(s.Scene.Axes) != 3 {
		t.Errorf("Expected 3 axes, got %d", len(s.Scene.Axes))
	}
}
