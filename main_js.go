package main

import (
	"errors"
	"syscall/js"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/c3dview/playback"
	"github.com/seqsense/c3dview/recording"
	"github.com/seqsense/c3dview/viewer"
)

const tickInterval = time.Second / 60

var specialKeys = map[string]viewer.SpecialKey{
	"ArrowUp":    viewer.KeyUp,
	"ArrowDown":  viewer.KeyDown,
	"ArrowLeft":  viewer.KeyLeft,
	"ArrowRight": viewer.KeyRight,
	"PageUp":     viewer.KeyPageUp,
	"PageDown":   viewer.KeyPageDown,
}

type promiseCommand struct {
	line    string
	resolve func(string)
	reject  func(error)
}

func openRecording(p string) (playback.FrameSource, error) {
	return recording.Open(p, fetchGet)
}

func main() {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "mapCanvas")
	log := newLogger(zerolog.InfoLevel)

	gl, err := webgl.New(canvas)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize WebGL")
		return
	}
	showDebugInfo(gl, log)

	r, err := newRenderer(gl)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize renderer")
		return
	}

	var player *viewer.Player
	var console *viewer.Console
	current := func() viewer.EventHandler {
		if player == nil {
			return nil
		}
		return player
	}

	chLoad := make(chan []string)
	js.Global().Set("loadRecordings",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			paths := make([]string, len(args))
			for i, a := range args {
				paths[i] = a.String()
			}
			go func() { chLoad <- paths }()
			return nil
		}),
	)
	chCommand := make(chan promiseCommand)
	js.Global().Set("c3dviewCommand",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			line := args[0].String()
			return js.Global().Get("Promise").New(
				js.FuncOf(func(this js.Value, args []js.Value) interface{} {
					resolve, reject := args[0], args[1]
					go func() {
						chCommand <- promiseCommand{
							line:    line,
							resolve: func(s string) { resolve.Invoke(s) },
							reject:  func(err error) { reject.Invoke(errorToJS(err)) },
						}
					}()
					return nil
				}),
			)
		}),
	)

	chWheel := make(chan webgl.WheelEvent, 10)
	gl.Canvas.OnWheel(func(e webgl.WheelEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chWheel <- e
	})
	chMouseDown := make(chan webgl.MouseEvent, 10)
	gl.Canvas.OnMouseDown(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chMouseDown <- e
	})
	chMouseMove := make(chan webgl.MouseEvent, 10)
	gl.Canvas.OnMouseMove(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chMouseMove <- e
	})
	chMouseUp := make(chan webgl.MouseEvent, 10)
	gl.Canvas.OnMouseUp(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chMouseUp <- e
	})
	gl.Canvas.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
	})
	chKey := make(chan webgl.KeyboardEvent, 10)
	gl.Canvas.OnKeyDown(func(e webgl.KeyboardEvent) {
		e.PreventDefault()
		e.StopPropagation()
		chKey <- e
	})

	setCursor(canvas, cursorGrab)
	gest := newGesture(current)
	chTouch := make(chan touch, 10)
	listenTouch(canvas, chTouch)
	chContextLost := make(chan webgl.WebGLContextEvent, 1)
	gl.Canvas.OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		e.PreventDefault()
		chContextLost <- e
	})

	var width, height int
	opts := viewer.DefaultOptions()
	opts.Logger = log

	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	for {
		select {
		case paths := <-chLoad:
			w, h := gl.Canvas.ClientWidth(), gl.Canvas.ClientHeight()
			if w > 0 && h > 0 {
				opts.Width, opts.Height = w, h
			}
			p, err := viewer.NewPlayer(paths, openRecording, opts)
			if err != nil {
				log.Error().Err(err).Strs("paths", paths).Msg("failed to load recordings")
				break
			}
			player = p
			console = viewer.NewConsole(p)
			width, height = 0, 0
		case c := <-chCommand:
			if console == nil {
				c.reject(errNoRecording)
				break
			}
			res, err := console.Run(c.line)
			if err != nil {
				c.reject(err)
				break
			}
			c.resolve(res)
		case e := <-chWheel:
			if h := current(); h != nil {
				h.Wheel(e.DeltaY)
			}
		case e := <-chMouseDown:
			if h := current(); h != nil {
				b, mods := viewer.MouseButton(e.Button), modifiers(e)
				setCursor(canvas, dragCursor(b, mods))
				h.MouseButton(b, true, mods, e.OffsetX, e.OffsetY)
			}
		case e := <-chMouseUp:
			setCursor(canvas, cursorGrab)
			if h := current(); h != nil {
				h.MouseButton(viewer.MouseButton(e.Button), false, modifiers(e), e.OffsetX, e.OffsetY)
			}
		case e := <-chMouseMove:
			if h := current(); h != nil {
				h.MouseMotion(e.OffsetX, e.OffsetY)
			}
		case t := <-chTouch:
			gest.handle(t)
		case e := <-chKey:
			h := current()
			if h == nil {
				break
			}
			if k, ok := specialKeys[e.Code]; ok {
				h.SpecialKey(k)
				break
			}
			if utf8.RuneCountInString(e.Key) == 1 {
				c, _ := utf8.DecodeRuneInString(e.Key)
				h.Keyboard(c)
			}
		case <-chContextLost:
			log.Error().Err(errContextLostEvent).Msg("rendering stopped")
			return
		case <-tick.C:
			if player == nil {
				break
			}
			if w, h := gl.Canvas.ClientWidth(), gl.Canvas.ClientHeight(); w != width || h != height {
				width, height = w, h
				gl.Canvas.SetWidth(w)
				gl.Canvas.SetHeight(h)
				player.Reshape(w, h)
			}
			if err := player.Idle(); err != nil {
				if !errors.Is(err, viewer.ErrDone) {
					log.Error().Err(err).Msg("playback failed")
				}
				player, console = nil, nil
				break
			}
			r.draw(player.Draw())
		}
	}
}
