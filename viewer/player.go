package viewer

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/seqsense/c3dview/playback"
)

var (
	// ErrNoInput is returned by NewPlayer without any recording.
	ErrNoInput = errors.New("no input file")
	// ErrDone is returned by Player.Idle once the last session is over.
	ErrDone = errors.New("all recordings played")
)

// Opener opens the recording at path.
type Opener func(path string) (playback.FrameSource, error)

type frameCounter interface {
	FrameCount() int
}

// Player plays recordings one after another, one session per file.
type Player struct {
	paths []string
	next  int
	open  Opener
	opts  Options
	log   zerolog.Logger

	cur  *Viewer
	path string
	done bool
}

// NewPlayer opens the first recording. Open errors are returned as is.
func NewPlayer(paths []string, open Opener, opts Options) (*Player, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}
	p := &Player{
		paths: paths,
		open:  open,
		opts:  opts,
		log:   opts.Logger,
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) start() error {
	path := p.paths[p.next]
	p.next++
	src, err := p.open(path)
	if err != nil {
		return err
	}
	opts := p.opts
	opts.Logger = p.log.With().Str("path", path).Logger()
	if p.cur != nil {
		opts.Width, opts.Height = p.cur.width, p.cur.height
	}
	v, err := New(src, opts)
	if err != nil {
		return err
	}
	frames := -1
	if fc, ok := src.(frameCounter); ok {
		frames = fc.FrameCount()
	}
	opts.Logger.Info().
		Int("markers", src.MarkerCount()).
		Float64("rate", src.FrameRate()).
		Int("frames", frames).
		Msg("session started")
	p.cur = v
	p.path = path
	return nil
}

// Tick runs one tick of the current session and moves on to the next
// recording when it ends. done is true after the last session.
func (p *Player) Tick() (done bool, err error) {
	if p.done {
		return true, nil
	}
	err = p.cur.Idle()
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, playback.ErrStreamExhausted), errors.Is(err, ErrQuit):
		p.log.Info().
			Str("path", p.path).
			Str("reason", err.Error()).
			Int("frames", p.cur.clock.Frames()).
			Msg("session ended")
	default:
		return false, err
	}
	if p.next >= len(p.paths) {
		p.done = true
		return true, nil
	}
	if err := p.start(); err != nil {
		return false, err
	}
	return false, nil
}

// Session returns the current session.
func (p *Player) Session() *Viewer {
	return p.cur
}

// Path returns the recording played by the current session.
func (p *Player) Path() string {
	return p.path
}

func (p *Player) Keyboard(r rune) {
	p.cur.Keyboard(r)
}

func (p *Player) SpecialKey(k SpecialKey) {
	p.cur.SpecialKey(k)
}

func (p *Player) MouseButton(b MouseButton, down bool, mods Modifier, x, y int) {
	p.cur.MouseButton(b, down, mods, x, y)
}

func (p *Player) MouseMotion(x, y int) {
	p.cur.MouseMotion(x, y)
}

func (p *Player) Wheel(dy float64) {
	p.cur.Wheel(dy)
}

func (p *Player) Reshape(w, h int) {
	p.cur.Reshape(w, h)
}

// Idle is Tick reporting the end of the last session as ErrDone.
func (p *Player) Idle() error {
	done, err := p.Tick()
	if err != nil {
		return err
	}
	if done {
		return ErrDone
	}
	return nil
}

func (p *Player) Draw() *Snapshot {
	return p.cur.Draw()
}
