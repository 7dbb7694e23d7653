package main

import (
	"errors"
	"fmt"
	"syscall/js"
)

var errFetch = errors.New("failed to fetch")

type fetchResult struct {
	data []byte
	err  error
}

// fetchGet downloads a recording. It satisfies recording.ReadFunc and must
// not be called from a js callback.
func fetchGet(path string) ([]byte, error) {
	ch := make(chan fetchResult, 1)
	var funcs []js.Func
	fn := func(f func(args []js.Value) interface{}) js.Func {
		jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			return f(args)
		})
		funcs = append(funcs, jf)
		return jf
	}
	defer func() {
		for _, f := range funcs {
			f.Release()
		}
	}()

	js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "include",
	}).Call("then",
		fn(func(args []js.Value) interface{} {
			res := args[0]
			if !res.Get("ok").Bool() {
				return js.Global().Get("Promise").Call("reject",
					fmt.Sprintf("%d %s", res.Get("status").Int(), res.Get("statusText").String()),
				)
			}
			return res.Call("arrayBuffer")
		}),
	).Call("then",
		fn(func(args []js.Value) interface{} {
			array := js.Global().Get("Uint8Array").New(args[0])
			b := make([]byte, array.Get("byteLength").Int())
			js.CopyBytesToGo(b, array)
			ch <- fetchResult{data: b}
			return nil
		}),
	).Call("catch",
		fn(func(args []js.Value) interface{} {
			ch <- fetchResult{err: fmt.Errorf("%w %s: %s", errFetch, path, args[0].Call("toString").String())}
			return nil
		}),
	)

	r := <-ch
	return r.data, r.err
}
