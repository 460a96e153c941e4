// SPDX-License-Identifier: Unlicense OR MIT

package web

import (
	"errors"
	"syscall/js"

	"github.com/glsketch/glsketch/internal/gl"
)

func newContext(cnv js.Value) (*gl.WebGL, error) {
	args := map[string]interface{}{
		// Enable low latency rendering.
		// See https://developers.google.com/web/updates/2019/05/desynchronized.
		"desynchronized":        true,
		"preserveDrawingBuffer": false,
		"powerPreference":       "high-performance",
		"antialias":             false,
	}
	ctx := cnv.Call("getContext", "webgl2", args)
	if ctx.IsNull() {
		return nil, errors.New("app: webgl2 is not supported")
	}
	return gl.NewWebGL(gl.Context(ctx))
}
