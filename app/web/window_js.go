// SPDX-License-Identifier: Unlicense OR MIT

package web

import (
	"context"
	"errors"
	"image"
	"sync"
	"syscall/js"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/app"
	"github.com/glsketch/glsketch/internal/gl"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

// Window is a canvas element with a WebGL2 context, paced by
// requestAnimationFrame.
type Window struct {
	window     js.Value
	cnv        js.Value
	funcs      *gl.WebGL
	redraw     js.Func
	frame      chan struct{}
	raf        js.Value
	cleanfuncs []func()
	ratio      float64

	mu     sync.Mutex
	events []sketch.Event
	closed bool
	lastFB image.Point
}

var _ app.Window = (*Window)(nil)

// New binds to the canvas with the given id, creating one if the
// page has none. A zero ratio uses devicePixelRatio.
func New(id string, ratio float64) (*Window, error) {
	doc := js.Global().Get("document")
	cnv := doc.Call("getElementById", id)
	if cnv.IsNull() {
		cnv = createCanvas(doc)
		cnv.Set("id", id)
		doc.Get("body").Call("appendChild", cnv)
	}
	w := &Window{
		window: js.Global().Get("window"),
		cnv:    cnv,
		frame:  make(chan struct{}, 1),
		ratio:  ratio,
	}
	w.raf = w.window.Get("requestAnimationFrame")
	w.resize()
	funcs, err := newContext(cnv)
	if err != nil {
		return nil, err
	}
	w.funcs = funcs
	w.redraw = w.funcOf(func(this js.Value, args []js.Value) interface{} {
		select {
		case w.frame <- struct{}{}:
		default:
		}
		return nil
	})
	w.addEventListeners()
	return w, nil
}

func createCanvas(doc js.Value) js.Value {
	cnv := doc.Call("createElement", "canvas")
	style := cnv.Get("style")
	style.Set("position", "fixed")
	style.Set("width", "100%")
	style.Set("height", "100%")
	return cnv
}

func (w *Window) Functions() gl.Functions {
	return w.funcs
}

func (w *Window) Size() image.Point {
	return image.Pt(w.cnv.Get("width").Int(), w.cnv.Get("height").Int())
}

// Next waits for the next animation frame. The browser presents the
// canvas when the previous frame callback returns.
func (w *Window) Next(ctx context.Context) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return pipeline.ErrClosed
	}
	if w.funcs.Ctx.Call("isContextLost").Bool() {
		return errors.New("app: webgl context lost")
	}
	w.raf.Invoke(w.redraw)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.frame:
		return nil
	}
}

func (w *Window) Events() []sketch.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	evs := w.events
	w.events = nil
	return evs
}

func (w *Window) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	// Cleanup in the opposite order of construction.
	for i := len(w.cleanfuncs) - 1; i >= 0; i-- {
		w.cleanfuncs[i]()
	}
	w.cleanfuncs = nil
}

// resize matches the canvas buffer to the window size times the pixel
// ratio.
func (w *Window) resize() {
	ratio := w.ratio
	if ratio == 0 {
		ratio = w.window.Get("devicePixelRatio").Float()
	}
	iw := int(w.window.Get("innerWidth").Float()*ratio + .5)
	ih := int(w.window.Get("innerHeight").Float()*ratio + .5)
	if cw, ch := w.cnv.Get("width").Int(), w.cnv.Get("height").Int(); iw != cw || ih != ch {
		w.cnv.Set("width", iw)
		w.cnv.Set("height", ih)
	}
	fb := image.Pt(iw, ih)
	w.mu.Lock()
	if fb != w.lastFB {
		w.lastFB = fb
		w.events = append(w.events, sketch.ResizeEvent{Size: fb})
	}
	w.mu.Unlock()
}

func (w *Window) addEventListeners() {
	w.addEventListener(w.window, "resize", func(this js.Value, args []js.Value) interface{} {
		w.resize()
		return nil
	})
	w.addEventListener(w.window, "mousemove", func(this js.Value, args []js.Value) interface{} {
		w.pointerEvent(sketch.Move, args[0])
		return nil
	})
	w.addEventListener(w.cnv, "mousedown", func(this js.Value, args []js.Value) interface{} {
		w.pointerEvent(sketch.Press, args[0])
		return nil
	})
	w.addEventListener(w.window, "mouseup", func(this js.Value, args []js.Value) interface{} {
		w.pointerEvent(sketch.Release, args[0])
		return nil
	})
	w.addEventListener(w.cnv, "wheel", func(this js.Value, args []js.Value) interface{} {
		w.pointerEvent(sketch.Scroll, args[0])
		return nil
	})
	w.addEventListener(w.window, "keydown", func(this js.Value, args []js.Value) interface{} {
		w.keyEvent(args[0], true)
		return nil
	})
	w.addEventListener(w.window, "keyup", func(this js.Value, args []js.Value) interface{} {
		w.keyEvent(args[0], false)
		return nil
	})
	w.addEventListener(w.window, "pagehide", func(this js.Value, args []js.Value) interface{} {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		return nil
	})
}

func (w *Window) pointerEvent(kind sketch.Kind, e js.Value) {
	jbtns := e.Get("buttons").Int()
	var btns sketch.Buttons
	if jbtns&1 != 0 {
		btns |= sketch.ButtonPrimary
	}
	if jbtns&2 != 0 {
		btns |= sketch.ButtonSecondary
	}
	if jbtns&4 != 0 {
		btns |= sketch.ButtonTertiary
	}
	ev := sketch.PointerEvent{
		Kind:     kind,
		Position: mgl32.Vec2{float32(e.Get("pageX").Float()), float32(e.Get("pageY").Float())},
		Window: mgl32.Vec2{
			float32(w.window.Get("innerWidth").Float()),
			float32(w.window.Get("innerHeight").Float()),
		},
		Buttons: btns,
	}
	w.mu.Lock()
	w.events = append(w.events, ev)
	w.mu.Unlock()
}

func (w *Window) keyEvent(e js.Value, press bool) {
	name, ok := translateKey(e.Get("key").String())
	if !ok {
		return
	}
	w.mu.Lock()
	w.events = append(w.events, sketch.KeyEvent{Name: name, Press: press})
	w.mu.Unlock()
}

func (w *Window) addEventListener(this js.Value, event string, f func(this js.Value, args []js.Value) interface{}) {
	jsf := w.funcOf(f)
	this.Call("addEventListener", event, jsf)
	w.cleanfuncs = append(w.cleanfuncs, func() {
		this.Call("removeEventListener", event, jsf)
	})
}

// funcOf is like js.FuncOf but adds the js.Func to a list of
// functions to be released up.
func (w *Window) funcOf(f func(this js.Value, args []js.Value) interface{}) js.Func {
	jsf := js.FuncOf(f)
	w.cleanfuncs = append(w.cleanfuncs, jsf.Release)
	return jsf
}

func translateKey(k string) (string, bool) {
	if len(k) == 1 {
		c := k[0]
		if '0' <= c && c <= '9' || 'A' <= c && c <= 'Z' {
			return k, true
		}
		if 'a' <= c && c <= 'z' {
			return string(rune(c - 0x20)), true
		}
	}
	switch k {
	case "ArrowUp":
		return sketch.NameUpArrow, true
	case "ArrowDown":
		return sketch.NameDownArrow, true
	case "ArrowLeft":
		return sketch.NameLeftArrow, true
	case "ArrowRight":
		return sketch.NameRightArrow, true
	case "Escape":
		return sketch.NameEscape, true
	case " ":
		return sketch.NameSpace, true
	}
	return "", false
}
