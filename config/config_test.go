// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"bytes"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
sketch = "day15"
fps = 60
log_level = "debug"

[window]
width = 800
height = 600
pixel_ratio = 2.0

[params]
frequent = 0.5
uIntensity = 0.2
`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "day15", c.Sketch)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 600, c.Window.Height)
	assert.Equal(t, 2.0, c.Window.PixelRatio)
	// Unset keys keep their defaults.
	assert.Equal(t, "glsketch", c.Window.Title)
	assert.True(t, c.Window.VSync)
	assert.Equal(t, "contents", c.Canvas)
	assert.Equal(t, map[string]float64{"frequent": 0.5, "uIntensity": 0.2}, c.Params)
	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "colour = 1\n", "colour"},
		{"syntax", "width = \n", "config"},
		{"size", "[window]\nwidth = -1\n", "window size"},
		{"level", "log_level = \"loud\"\n", "log level"},
		{"fps", "fps = -3\n", "fps"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(test.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestLoadAndEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	c, err := Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))
	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, again)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestApplyQuery(t *testing.T) {
	c, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	q, err := url.ParseQuery("config=sketch.toml&sketch=day10&canvas=stage&ratio=1.5&fps=30&frequent=0.25&log=warn")
	require.NoError(t, err)
	require.NoError(t, c.ApplyQuery(q))
	assert.Equal(t, "day10", c.Sketch)
	assert.Equal(t, "stage", c.Canvas)
	assert.Equal(t, 1.5, c.Window.PixelRatio)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, "warn", c.LogLevel)
	// File params survive unless overridden.
	assert.Equal(t, map[string]float64{"frequent": 0.25, "uIntensity": 0.2}, c.Params)

	d := Default()
	require.NoError(t, d.ApplyQuery(url.Values{}))
	assert.Equal(t, "contents", d.Canvas)
	assert.Zero(t, d.Window.PixelRatio)
	assert.Nil(t, d.Params)
}

func TestApplyQueryErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"ratio", "ratio=big", "ratio"},
		{"negative ratio", "ratio=-1", "pixel ratio"},
		{"fps", "fps=1.5", "fps"},
		{"param", "speed=fast", "param speed"},
		{"level", "log=loud", "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			c := Default()
			err = c.ApplyQuery(q)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
