// SPDX-License-Identifier: Unlicense OR MIT

// Package camera computes view and projection matrices.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glsketch/glsketch/quat"
)

// Camera is a perspective camera looking from Eye at Center.
type Camera struct {
	Eye, Center, Up mgl32.Vec3
	// Fovy is the vertical field of view in radians.
	Fovy      float32
	Aspect    float32
	Near, Far float32
}

// Perspective returns a camera at eye looking at the origin with a
// vertical field of view of fovy degrees.
func Perspective(eye mgl32.Vec3, fovy, aspect, near, far float32) Camera {
	return Camera{
		Eye:    eye,
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   mgl32.DegToRad(fovy),
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.Fovy, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection·View.
func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// MVP returns Projection·View·model.
func (c Camera) MVP(model mgl32.Mat4) mgl32.Mat4 {
	return c.ViewProjection().Mul4(model)
}

// Orbit places the camera dist units from the center, rotated by q,
// with its up vector rotated along.
func (c Camera) Orbit(q quat.Q, dist float32) Camera {
	c.Eye = c.Center.Add(quat.Vec(mgl32.Vec3{0, 0, dist}, q))
	c.Up = quat.Vec(mgl32.Vec3{0, 1, 0}, q)
	return c
}

// SetAspect updates the aspect ratio from a viewport size.
func (c *Camera) SetAspect(width, height int) {
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// CubeFace returns the camera rendering face (0-5, in +X, -X, +Y, -Y,
// +Z, -Z order) of a cube map centered at center.
func CubeFace(face int, center mgl32.Vec3, near, far float32) Camera {
	f := cubeFaces[face]
	return Camera{
		Eye:    center,
		Center: center.Add(f.dir),
		Up:     f.up,
		Fovy:   math.Pi / 2,
		Aspect: 1,
		Near:   near,
		Far:    far,
	}
}

var cubeFaces = [6]struct {
	dir, up mgl32.Vec3
}{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

// FaceDir returns the direction cube map face looks along.
func FaceDir(face int) mgl32.Vec3 {
	return cubeFaces[face].dir
}
