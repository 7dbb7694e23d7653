package viewer

import (
	"errors"
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/seqsense/c3dview/playback"
	"github.com/seqsense/c3dview/trail"
)

// ErrQuit is returned by Idle after the user asked to end the session.
var ErrQuit = errors.New("session ended by user")

type Options struct {
	Orientation Orientation
	// Trail is the initial trail capacity per marker.
	Trail         int
	Width, Height int

	Logger       zerolog.Logger
	ClockOptions []playback.ClockOption
}

// DefaultOptions returns the options of a fresh 800x600 window.
func DefaultOptions() Options {
	return Options{
		Orientation: Orientation{Theta: DefaultTheta, Phi: DefaultPhi, Rho: DefaultRho},
		Trail:       1,
		Width:       800,
		Height:      600,
		Logger:      zerolog.Nop(),
	}
}

type labeler interface {
	Labels() []string
}

// Viewer is the state of one playback session: the markers' trails and
// visibility, the camera and the playback clock.
type Viewer struct {
	src     playback.FrameSource
	clock   *playback.Clock
	camera  *Camera
	trails  []*trail.Buffer
	visible *Visibility
	labels  []string
	maxlen  int
	connect bool

	width, height int
	frame         int
	quit          bool

	wheel *wheelZoom
	log   zerolog.Logger
}

// New creates a session playing src. It fails with
// playback.ErrInvalidFrameRate if src reports an unusable rate.
func New(src playback.FrameSource, opts Options) (*Viewer, error) {
	if opts.Orientation.Rho <= 0 {
		opts.Orientation.Rho = DefaultRho
	}
	if opts.Trail < 1 {
		opts.Trail = 1
	}
	n := src.MarkerCount()
	if n < 0 {
		n = 0
	}
	v := &Viewer{
		src:     src,
		camera:  NewCamera(opts.Orientation),
		trails:  make([]*trail.Buffer, n),
		visible: NewVisibility(n),
		maxlen:  opts.Trail,
		frame:   -1,
		wheel:   newWheelZoom(),
		log:     opts.Logger,
	}
	for i := range v.trails {
		v.trails[i] = trail.New(v.maxlen)
	}
	if l, ok := src.(labeler); ok {
		v.labels = l.Labels()
	}
	clock, err := playback.NewClock(src, v.push, opts.ClockOptions...)
	if err != nil {
		return nil, err
	}
	v.clock = clock
	v.Reshape(opts.Width, opts.Height)
	return v, nil
}

// push appends a frame to the trails. Hidden markers keep their history.
func (v *Viewer) push(f *playback.Frame) {
	for i, p := range f.Points {
		if i >= len(v.trails) {
			break
		}
		v.trails[i].Append(p)
	}
	v.frame = f.Index
}

func (v *Viewer) Keyboard(r rune) {
	switch {
	case '0' <= r && r <= '9':
		v.visible.Toggle(int(r - '0'))
	case r == 'p':
		v.log.Debug().Bool("paused", v.clock.TogglePause()).Msg("pause toggled")
	case r == '+' || r == '=':
		if v.maxlen <= math.MaxInt/2 {
			v.SetTrail(v.maxlen * 2)
		}
	case r == '-' || r == '_':
		v.SetTrail(v.maxlen / 2)
	case r == 'q':
		v.quit = true
	}
}

func (v *Viewer) SpecialKey(k SpecialKey) {
	v.camera.Key(k)
}

func (v *Viewer) MouseButton(b MouseButton, down bool, mods Modifier, x, y int) {
	if down {
		v.camera.MouseDown(b, mods, x, y)
		return
	}
	v.camera.MouseUp()
}

func (v *Viewer) MouseMotion(x, y int) {
	v.camera.MouseMotion(x, y)
}

func (v *Viewer) Wheel(dy float64) {
	if n, ok := v.wheel.Steps(dy); ok {
		v.camera.Zoom(n)
	}
}

func (v *Viewer) Reshape(w, h int) {
	v.width, v.height = w, h
	v.camera.Resize(w, h)
}

// Idle integrates the camera and then advances the playback clock.
func (v *Viewer) Idle() error {
	if v.quit {
		return ErrQuit
	}
	v.camera.Integrate()
	return v.clock.Advance()
}

// Draw builds the snapshot of the current tick.
func (v *Viewer) Draw() *Snapshot {
	scene := &Scene{
		Axes:    axes,
		Radius:  glyphRadius(v.camera.Rho),
		Connect: v.connect,
	}
	for i, t := range v.trails {
		if !v.visible.Visible(i) {
			continue
		}
		scene.Markers = append(scene.Markers, MarkerTrail{
			Index:  i,
			Label:  v.Label(i),
			Color:  colorOf(i),
			Points: t.Points(),
		})
	}
	return &Snapshot{
		Width:  v.width,
		Height: v.height,
		Views:  Compose(v.width, v.height, v.camera.Orientation),
		Scene:  scene,
		Frame:  v.frame,
		Paused: v.clock.Paused(),
	}
}

// Session returns v itself, so that a Console can drive a single session.
func (v *Viewer) Session() *Viewer {
	return v
}

// SetTrail rebuilds every trail with capacity n, at least 1.
func (v *Viewer) SetTrail(n int) {
	if n < 1 {
		n = 1
	}
	v.maxlen = n
	for _, t := range v.trails {
		t.Resize(n)
	}
	v.log.Debug().Int("trail", n).Msg("trail resized")
}

func (v *Viewer) Trail() int {
	return v.maxlen
}

func (v *Viewer) Trails() []*trail.Buffer {
	return v.trails
}

func (v *Viewer) Visibility() *Visibility {
	return v.visible
}

func (v *Viewer) Camera() *Camera {
	return v.camera
}

func (v *Viewer) Clock() *playback.Clock {
	return v.clock
}

func (v *Viewer) MarkerCount() int {
	return len(v.trails)
}

// Label returns the recorded name of marker i, or its index.
func (v *Viewer) Label(i int) string {
	if i < len(v.labels) && v.labels[i] != "" {
		return v.labels[i]
	}
	return strconv.Itoa(i)
}

// Frame returns the index of the last frame pulled, -1 before the first one.
func (v *Viewer) Frame() int {
	return v.frame
}

// ToggleConnect switches between glyphs and polylines for the trails.
func (v *Viewer) ToggleConnect() bool {
	v.connect = !v.connect
	return v.connect
}
