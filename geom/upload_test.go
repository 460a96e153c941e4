// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsketch/glsketch/geom"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/internal/gl/gltest"
)

const meshVert = `
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aColor;
uniform mat4 uMVP;
out vec4 vColor;
void main() {
	vColor = aColor * max(dot(aNormal, vec3(0.0, 1.0, 0.0)), 0.2);
	gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const meshFrag = `
in vec4 vColor;
out vec4 fragColor;
void main() {
	fragColor = vColor;
}
`

func TestUploadAndDraw(t *testing.T) {
	f := gltest.New()
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	p, err := d.NewProgram(gpu.ProgramDesc{Name: "mesh", Vertex: meshVert, Fragment: meshFrag})
	require.NoError(t, err)

	torus, err := geom.Torus(80, 100, 1, 2)
	require.NoError(t, err)
	g, err := torus.Upload(d, geom.Layout{Position: 0, Normal: 1, Color: 2, UV: -1})
	require.NoError(t, err)
	assert.Equal(t, 3, f.Count("VertexAttribPointer"))
	require.NoError(t, g.Draw(d, p))
	require.Len(t, f.Draws, 1)
	assert.Equal(t, 80*100*6, f.Draws[0].Count)
	assert.True(t, f.Draws[0].Indexed)
}

func TestUploadRejectsInvalidMesh(t *testing.T) {
	d, err := gpu.NewDevice(gltest.New())
	require.NoError(t, err)
	m := geom.Plane()
	m.Indices[0] = 9
	_, err = m.Upload(d, geom.DefaultLayout)
	assert.ErrorIs(t, err, gpu.ErrIndexRange)
}

func TestRibbonUpload(t *testing.T) {
	f := gltest.New()
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	r := geom.NewRibbon(geom.Lissajous(16, 50))
	_, err = r.Upload(d)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Count("VertexAttribPointer"))
}

func TestGeometryRelease(t *testing.T) {
	f := gltest.New()
	d, err := gpu.NewDevice(f)
	require.NoError(t, err)
	g, err := geom.Cube(1).Upload(d, geom.DefaultLayout)
	require.NoError(t, err)
	require.NotZero(t, f.Live())
	g.Release()
	assert.Zero(t, f.Live())
	g.Release()
	var none *geom.Geometry
	none.Release()
}
