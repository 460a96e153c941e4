// SPDX-License-Identifier: Unlicense OR MIT

package asset

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeFaceNames are the file names, without extension, of the six
// faces of a cube map in +X, -X, +Y, -Y, +Z, -Z order.
var CubeFaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

// LoadCube reads the faces of a cube map stored as <face>.jpg files in
// fsys and returns their RGBA pixels scaled to size×size.
func LoadCube(ctx context.Context, fsys fs.FS, size int) ([6][]byte, error) {
	var faces [6][]byte
	for i, name := range CubeFaceNames {
		img, err := LoadImage(ctx, fsys, name+".jpg")
		if err != nil {
			return faces, fmt.Errorf("asset: cube face %s: %w", name, err)
		}
		faces[i] = Resize(img, size, size).Pix
	}
	return faces, nil
}

// HasCube reports whether fsys holds every face LoadCube reads.
func HasCube(fsys fs.FS) bool {
	if fsys == nil {
		return false
	}
	for _, name := range CubeFaceNames {
		if _, err := fs.Stat(fsys, name+".jpg"); err != nil {
			return false
		}
	}
	return true
}

// SkyFace returns the RGBA pixels of one face of a procedural sky, a
// gradient over the view direction.
func SkyFace(face, size int) []byte {
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		t := 2*(float32(y)+0.5)/float32(size) - 1
		for x := 0; x < size; x++ {
			s := 2*(float32(x)+0.5)/float32(size) - 1
			dir := CubeDir(face, s, t).Normalize()
			up := (dir.Y() + 1) / 2
			c := mgl32.Vec3{0.15, 0.1, 0.2}.Mul(1 - up).Add(mgl32.Vec3{0.3, 0.6, 0.9}.Mul(up))
			c = c.Add(mgl32.Vec3{dir.X(), 0, dir.Z()}.Mul(0.1))
			o := (y*size + x) * 4
			for i := 0; i < 3; i++ {
				pix[o+i] = uint8(mgl32.Clamp(c[i], 0, 1) * 255)
			}
			pix[o+3] = 255
		}
	}
	return pix
}

// CubeDir maps face coordinates s, t in [-1, 1] to a direction.
func CubeDir(face int, s, t float32) mgl32.Vec3 {
	switch face {
	case 0:
		return mgl32.Vec3{1, -t, -s}
	case 1:
		return mgl32.Vec3{-1, -t, s}
	case 2:
		return mgl32.Vec3{s, 1, t}
	case 3:
		return mgl32.Vec3{s, -1, -t}
	case 4:
		return mgl32.Vec3{s, -t, 1}
	default:
		return mgl32.Vec3{-s, -t, -1}
	}
}
