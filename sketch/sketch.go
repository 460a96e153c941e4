// SPDX-License-Identifier: Unlicense OR MIT

// Package sketch defines the interface between hosts and sketches and
// the registry sketches add themselves to.
package sketch

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/params"
	"github.com/glsketch/glsketch/pipeline"
)

// Env is what a host provides to a sketch at setup.
type Env struct {
	Device *gpu.Device
	// Size is the framebuffer size in pixels.
	Size image.Point
	// Assets holds optional files such as source images. It may be nil.
	Assets fs.FS
	// Image names a file in Assets that replaces a sketch's built-in
	// source image.
	Image string
}

// Sketch is an animation. Setup builds every GPU resource and resolves
// every uniform; Render draws one frame. A Render error ends the
// animation.
type Sketch interface {
	Setup(ctx context.Context, env Env) error
	pipeline.Renderer
	Release()
}

// Handler is implemented by sketches that react to input.
type Handler interface {
	Event(e Event)
}

// Tunable is implemented by sketches with run-time parameters.
type Tunable interface {
	Params() *params.Set
}

// Info describes a registered sketch.
type Info struct {
	Name        string
	Description string
	// FPS is the frame rate the sketch is designed for, zero to follow
	// the display.
	FPS int
	New func() Sketch
}

var (
	mu       sync.Mutex
	registry = make(map[string]Info)
)

// Register makes a sketch available by name. It panics if the name is
// taken or New is nil.
func Register(info Info) {
	mu.Lock()
	defer mu.Unlock()
	if info.New == nil {
		panic(fmt.Sprintf("sketch: %q registered without constructor", info.Name))
	}
	if _, dup := registry[info.Name]; dup {
		panic(fmt.Sprintf("sketch: %q registered twice", info.Name))
	}
	registry[info.Name] = info
}

// Lookup returns the sketch registered as name.
func Lookup(name string) (Info, bool) {
	mu.Lock()
	defer mu.Unlock()
	info, ok := registry[name]
	return info, ok
}

// All returns every registered sketch ordered by name.
func All() []Info {
	mu.Lock()
	defer mu.Unlock()
	names := maps.Keys(registry)
	slices.Sort(names)
	infos := make([]Info, len(names))
	for i, n := range names {
		infos[i] = registry[n]
	}
	return infos
}
