// SPDX-License-Identifier: Unlicense OR MIT

// Package quat implements the quaternion helpers of the orbit camera
// sketches. Quaternions are stored as x, y, z, w.
//
// Rotation follows the conjugation order q⁻¹·v·q, so Matrix and Vec
// rotate by the inverse of the mathematical rotation of q. Both agree
// with each other: Matrix(q).Mul4x1(v) equals Vec(v, q).
package quat

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Q is a quaternion.
type Q [4]float32

// Identity returns the identity rotation.
func Identity() Q {
	return Q{0, 0, 0, 1}
}

// Inverse returns the conjugate of q, the inverse of a unit
// quaternion.
func Inverse(q Q) Q {
	return Q{-q[0], -q[1], -q[2], q[3]}
}

// Normalize scales q to unit length. The zero quaternion stays zero.
func Normalize(q Q) Q {
	l := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if l == 0 {
		return Q{}
	}
	l = 1 / l
	return Q{q[0] * l, q[1] * l, q[2] * l, q[3] * l}
}

// Mul returns the Hamilton product a·b.
func Mul(a, b Q) Q {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return Q{
		ax*bw + aw*bx + ay*bz - az*by,
		ay*bw + aw*by + az*bx - ax*bz,
		az*bw + aw*bz + ax*by - ay*bx,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// Rotate returns the rotation of angle radians about axis. It reports
// false for a zero axis.
func Rotate(angle float32, axis mgl32.Vec3) (Q, bool) {
	l := axis.Len()
	if l == 0 {
		return Q{}, false
	}
	if l != 1 {
		axis = axis.Mul(1 / l)
	}
	s, c := math.Sincos(float64(angle) * 0.5)
	return Q{axis[0] * float32(s), axis[1] * float32(s), axis[2] * float32(s), float32(c)}, true
}

// Vec rotates v by q as q⁻¹·v·q.
func Vec(v mgl32.Vec3, q Q) mgl32.Vec3 {
	p := Q{v[0], v[1], v[2], 0}
	r := Mul(Mul(Inverse(q), p), q)
	return mgl32.Vec3{r[0], r[1], r[2]}
}

// Matrix returns the rotation matrix of q in column major order.
func Matrix(q Q) mgl32.Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2
	return mgl32.Mat4{
		1 - (yy + zz), xy - wz, xz + wy, 0,
		xy + wz, 1 - (xx + zz), yz - wx, 0,
		xz - wy, yz + wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

// FromDrag returns the orbit rotation for a pointer at offset dx, dy
// pixels from the center of a width by height canvas. A drag across the
// canvas diagonal is a full turn.
func FromDrag(dx, dy float32, width, height float32) (Q, bool) {
	sq := float32(math.Sqrt(float64(width*width + height*height)))
	r := float32(math.Sqrt(float64(dx*dx+dy*dy))) / sq
	if r == 0 {
		return Identity(), true
	}
	if r != 1 {
		dx, dy = dx/(r*sq), dy/(r*sq)
	}
	return Rotate(r*2*math.Pi, mgl32.Vec3{dy, dx, 0})
}
