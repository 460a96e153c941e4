// SPDX-License-Identifier: Unlicense OR MIT

// Package web hosts sketches in a browser canvas through WebGL2. It is
// only available for GOOS=js.
package web
