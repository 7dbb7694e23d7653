package viewer

import (
	"errors"
	"testing"
	"time"

	"github.com/seqsense/c3dview/playback"
)

func TestNewPlayer_NoInput(t *testing.T) {
	_, err := NewPlayer(nil, nil, DefaultOptions())
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got %v", err)
	}
}

func TestPlayer(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	opts := DefaultOptions()
	opts.ClockOptions = []playback.ClockOption{playback.WithTimeSource(ft.now, ft.sleep)}

	errOpen := errors.New("open failed")
	sources := map[string]playback.FrameSource{
		"a.c3d":    newSource(2, 1, 10),
		"b.c3d":    newSource(5, 3, 10),
		"c.c3d":    newSource(1, 2, 10),
		"zero.c3d": newSource(1, 1, 0),
	}
	var opened []string
	open := func(path string) (playback.FrameSource, error) {
		opened = append(opened, path)
		s, ok := sources[path]
		if !ok {
			return nil, errOpen
		}
		return s, nil
	}
	tick := func(t *testing.T, p *Player) bool {
		t.Helper()
		ft.t = ft.t.Add(time.Second)
		done, err := p.Tick()
		if err != nil {
			t.Fatal(err)
		}
		return done
	}

	t.Run("Sequential", func(t *testing.T) {
		opened = nil
		p, err := NewPlayer([]string{"a.c3d", "b.c3d", "c.c3d"}, open, opts)
		if err != nil {
			t.Fatal(err)
		}
		p.Reshape(1024, 768)

		// a: 2 frames, then exhausted.
		for i := 0; i < 2; i++ {
			if tick(t, p) {
				t.Fatal("Must not be done")
			}
		}
		if p.Path() != "a.c3d" {
			t.Fatalf("Expected a.c3d, got %s", p.Path())
		}
		tick(t, p)
		if p.Path() != "b.c3d" || p.Session().MarkerCount() != 3 {
			t.Fatalf("Expected b.c3d with 3 markers, got %s", p.Path())
		}
		if s := p.Draw(); s.Width != 1024 || s.Height != 768 {
			t.Errorf("Surface size must be kept across sessions, got %dx%d", s.Width, s.Height)
		}

		// b: quit by the user.
		tick(t, p)
		p.Keyboard('q')
		tick(t, p)
		if p.Path() != "c.c3d" {
			t.Fatalf("Expected c.c3d, got %s", p.Path())
		}

		tick(t, p)
		if !tick(t, p) {
			t.Error("Player must be done after the last session")
		}
		if err := p.Idle(); !errors.Is(err, ErrDone) {
			t.Errorf("Expected ErrDone, got %v", err)
		}
		if len(opened) != 3 {
			t.Errorf("Expected 3 recordings opened, got %v", opened)
		}
	})

	t.Run("OpenError", func(t *testing.T) {
		if _, err := NewPlayer([]string{"missing.c3d"}, open, opts); !errors.Is(err, errOpen) {
			t.Errorf("Expected open error, got %v", err)
		}
		if _, err := NewPlayer([]string{"zero.c3d"}, open, opts); !errors.Is(err, playback.ErrInvalidFrameRate) {
			t.Errorf("Expected ErrInvalidFrameRate, got %v", err)
		}

		sources["a.c3d"] = newSource(1, 1, 10)
		p, err := NewPlayer([]string{"a.c3d", "missing.c3d"}, open, opts)
		if err != nil {
			t.Fatal(err)
		}
		tick(t, p)
		ft.t = ft.t.Add(time.Second)
		if _, err := p.Tick(); !errors.Is(err, errOpen) {
			t.Errorf("Open error of a later recording must be fatal, got %v", err)
		}
	})
}
