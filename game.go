//go:build !js

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/seqsense/c3dview/viewer"
)

const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

type handler interface {
	viewer.EventHandler
	viewer.Sessioner
}

var specialKeys = map[ebiten.Key]viewer.SpecialKey{
	ebiten.KeyArrowUp:    viewer.KeyUp,
	ebiten.KeyArrowDown:  viewer.KeyDown,
	ebiten.KeyArrowLeft:  viewer.KeyLeft,
	ebiten.KeyArrowRight: viewer.KeyRight,
	ebiten.KeyPageUp:     viewer.KeyPageUp,
	ebiten.KeyPageDown:   viewer.KeyPageDown,
}

var mouseButtons = map[ebiten.MouseButton]viewer.MouseButton{
	ebiten.MouseButtonLeft:   viewer.ButtonLeft,
	ebiten.MouseButtonMiddle: viewer.ButtonMiddle,
	ebiten.MouseButtonRight:  viewer.ButtonRight,
}

type command struct {
	line string
	out  io.Writer
}

// game adapts ebiten's loop to a viewer.EventHandler.
type game struct {
	h       handler
	console *viewer.Console
	log     zerolog.Logger

	chCommand chan command
	runes     []rune

	width, height    int
	cursorX, cursorY int
	snap             *viewer.Snapshot
	overlay          bool
}

func newGame(h handler, log zerolog.Logger) *game {
	return &game{
		h:         h,
		console:   viewer.NewConsole(h),
		log:       log,
		chCommand: make(chan command, 16),
		overlay:   true,
	}
}

// readCommands reads console commands from r until EOF. Results are
// written to out from the game loop.
func (g *game) readCommands(r io.Reader, out io.Writer) {
	go func() {
		s := bufio.NewScanner(r)
		for s.Scan() {
			g.chCommand <- command{line: s.Text(), out: out}
		}
	}()
}

func (g *game) runCommands() {
	for {
		select {
		case c := <-g.chCommand:
			res, err := g.console.Run(c.line)
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
				continue
			}
			if res != "" {
				fmt.Fprintln(c.out, res)
			}
		default:
			return
		}
	}
}

func repeated(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0)
}

func modifiers() viewer.Modifier {
	var m viewer.Modifier
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= viewer.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= viewer.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= viewer.ModAlt
	}
	return m
}

func (g *game) input() {
	g.runes = ebiten.AppendInputChars(g.runes[:0])
	for _, r := range g.runes {
		if r == 'h' {
			g.overlay = !g.overlay
			continue
		}
		g.h.Keyboard(r)
	}
	for k, sk := range specialKeys {
		if repeated(k) {
			g.h.SpecialKey(sk)
		}
	}

	x, y := ebiten.CursorPosition()
	mods := modifiers()
	for b, vb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			g.h.MouseButton(vb, true, mods, x, y)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			g.h.MouseButton(vb, false, mods, x, y)
		}
	}
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.h.MouseMotion(x, y)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		// ebiten reports scrolling up as positive.
		g.h.Wheel(-dy)
	}
}

func (g *game) Update() error {
	g.runCommands()
	g.input()
	if err := g.h.Idle(); err != nil {
		if errors.Is(err, viewer.ErrDone) {
			g.log.Info().Msg("all recordings played")
			return ebiten.Termination
		}
		return err
	}
	g.snap = g.h.Draw()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.snap == nil {
		screen.Fill(viewer.Background)
		return
	}
	render(screen, g.snap)
	if g.overlay {
		drawOverlay(screen, g.snap, g.h.Session())
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.h.Reshape(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
