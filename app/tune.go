// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/params"
	"github.com/glsketch/glsketch/sketch"
)

// tuner adjusts parameters from the keyboard: left and right select a
// parameter, up and down step it.
type tuner struct {
	set *params.Set
	sel int
}

func (t *tuner) event(e sketch.Event) {
	k, ok := e.(sketch.KeyEvent)
	if !ok || !k.Press {
		return
	}
	names := t.set.Names()
	if len(names) == 0 {
		return
	}
	steps := 0
	switch k.Name {
	case sketch.NameLeftArrow:
		t.sel = (t.sel + len(names) - 1) % len(names)
	case sketch.NameRightArrow:
		t.sel = (t.sel + 1) % len(names)
	case sketch.NameUpArrow:
		steps = 1
	case sketch.NameDownArrow:
		steps = -1
	default:
		return
	}
	name := names[t.sel%len(names)]
	v, err := t.set.Nudge(name, steps)
	if err != nil {
		return
	}
	gpu.Logger().Info("app: parameter", "name", name, "value", v)
}
