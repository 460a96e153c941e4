// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Package desktop hosts sketches in a GLFW window.
package desktop

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/app"
	"github.com/glsketch/glsketch/config"
	"github.com/glsketch/glsketch/internal/gl"
	"github.com/glsketch/glsketch/internal/glcore"
	"github.com/glsketch/glsketch/pipeline"
	"github.com/glsketch/glsketch/sketch"
)

func init() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()
}

// Window is a desktop window with an OpenGL 3.3 core context. It must be
// created and used on the main goroutine.
type Window struct {
	win     *glfw.Window
	funcs   *glcore.Functions
	started bool

	events  []sketch.Event
	lastPos mgl32.Vec2
	btns    sketch.Buttons
}

var _ app.Window = (*Window)(nil)

// New opens a window and makes its context current.
func New(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("app: glfw: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("app: glfw window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	funcs, err := glcore.New()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("app: %w", err)
	}
	w := &Window{win: win, funcs: funcs}
	w.registerCallbacks()
	return w, nil
}

func (w *Window) Functions() gl.Functions {
	return w.funcs
}

func (w *Window) Size() image.Point {
	width, height := w.win.GetFramebufferSize()
	return image.Pt(width, height)
}

// Next presents the previous frame and polls for input.
func (w *Window) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.started {
		w.win.SwapBuffers()
	}
	w.started = true
	glfw.PollEvents()
	if w.win.ShouldClose() {
		return pipeline.ErrClosed
	}
	return nil
}

func (w *Window) Events() []sketch.Event {
	evs := w.events
	w.events = nil
	return evs
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) windowSize() mgl32.Vec2 {
	width, height := w.win.GetSize()
	return mgl32.Vec2{float32(width), float32(height)}
}

func (w *Window) pointer(kind sketch.Kind) {
	w.events = append(w.events, sketch.PointerEvent{
		Kind:     kind,
		Position: w.lastPos,
		Window:   w.windowSize(),
		Buttons:  w.btns,
	})
}

func (w *Window) registerCallbacks() {
	w.win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.lastPos = mgl32.Vec2{float32(xpos), float32(ypos)}
		w.pointer(sketch.Move)
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		var btn sketch.Buttons
		switch button {
		case glfw.MouseButton1:
			btn = sketch.ButtonPrimary
		case glfw.MouseButton2:
			btn = sketch.ButtonSecondary
		case glfw.MouseButton3:
			btn = sketch.ButtonTertiary
		}
		switch action {
		case glfw.Release:
			w.btns &^= btn
			w.pointer(sketch.Release)
		case glfw.Press:
			w.btns |= btn
			w.pointer(sketch.Press)
		}
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, _, _ float64) {
		w.pointer(sketch.Scroll)
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events = append(w.events, sketch.ResizeEvent{Size: image.Pt(width, height)})
	})
	w.win.SetKeyCallback(func(win *glfw.Window, k glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			action = glfw.Press
		}
		name, ok := keyName(k)
		if !ok {
			return
		}
		if name == sketch.NameEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
		w.events = append(w.events, sketch.KeyEvent{Name: name, Press: action == glfw.Press})
	})
}

func keyName(k glfw.Key) (string, bool) {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return string(rune('A' + k - glfw.KeyA)), true
	case k >= glfw.Key0 && k <= glfw.Key9:
		return string(rune('0' + k - glfw.Key0)), true
	}
	switch k {
	case glfw.KeyUp:
		return sketch.NameUpArrow, true
	case glfw.KeyDown:
		return sketch.NameDownArrow, true
	case glfw.KeyLeft:
		return sketch.NameLeftArrow, true
	case glfw.KeyRight:
		return sketch.NameRightArrow, true
	case glfw.KeyEscape:
		return sketch.NameEscape, true
	case glfw.KeySpace:
		return sketch.NameSpace, true
	}
	return "", false
}
