// SPDX-License-Identifier: Unlicense OR MIT

package sketch

import (
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Event is an input event delivered to a sketch before the frame it
// arrived in is rendered.
type Event interface {
	ImplementsEvent()
}

// PointerEvent is a mouse or touch event.
type PointerEvent struct {
	Kind Kind
	// Position is in window coordinates with the origin at the top
	// left.
	Position mgl32.Vec2
	// Window is the window size in the same units as Position.
	Window  mgl32.Vec2
	Buttons Buttons
}

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct {
	Size image.Point
}

// KeyEvent is a key press or release. Name is the printable key or one
// of the Name constants.
type KeyEvent struct {
	Name  string
	Press bool
}

// Kind of a pointer event.
type Kind uint8

// Buttons is a set of mouse buttons.
type Buttons uint8

const (
	// Move of a pointer, with or without buttons pressed.
	Move Kind = iota
	// Press of a pointer button.
	Press
	// Release of a pointer button.
	Release
	// Scroll of a wheel.
	Scroll
)

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

const (
	NameUpArrow    = "↑"
	NameDownArrow  = "↓"
	NameLeftArrow  = "←"
	NameRightArrow = "→"
	NameEscape     = "⎋"
	NameSpace      = "Space"
)

// Center returns the position relative to the window center.
func (e PointerEvent) Center() mgl32.Vec2 {
	return e.Position.Sub(e.Window.Mul(0.5))
}

// Contain reports whether the set b contains all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

func (k Kind) String() string {
	switch k {
	case Move:
		return "Move"
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Scroll:
		return "Scroll"
	default:
		panic("unknown Kind")
	}
}

func (PointerEvent) ImplementsEvent() {}
func (ResizeEvent) ImplementsEvent()  {}
func (KeyEvent) ImplementsEvent()     {}
