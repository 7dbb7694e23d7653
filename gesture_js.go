package main

import (
	"syscall/js"
)

// listenTouch forwards touch pointers of canvas to ch. Mouse and pen
// pointers are left to the mouse events.
func listenTouch(canvas js.Value, ch chan<- touch) {
	canvas.Get("style").Set("touchAction", "none")
	on := func(name string, kind touchKind) {
		canvas.Call("addEventListener", name,
			js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				e := args[0]
				if e.Get("pointerType").String() != "touch" {
					return nil
				}
				e.Call("preventDefault")
				e.Call("stopPropagation")
				ch <- touch{
					kind:    kind,
					id:      e.Get("pointerId").Int(),
					x:       e.Get("offsetX").Int(),
					y:       e.Get("offsetY").Int(),
					primary: e.Get("isPrimary").Bool(),
				}
				return nil
			}),
		)
	}
	on("pointerdown", touchDown)
	on("pointermove", touchMove)
	on("pointerup", touchUp)
	on("pointercancel", touchUp)
}
