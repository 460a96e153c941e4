// SPDX-License-Identifier: Unlicense OR MIT

// Package config reads sketch host settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the host configuration. Zero fields of a decoded file keep
// their defaults.
type Config struct {
	// Sketch names the sketch to run when none is given on the command
	// line.
	Sketch string `toml:"sketch"`
	Window Window `toml:"window"`
	// Canvas is the id of the canvas element. Only the web host reads
	// it.
	Canvas string `toml:"canvas"`
	// FPS selects a fixed-rate ticker instead of the display refresh
	// when positive.
	FPS      int    `toml:"fps"`
	LogLevel string `toml:"log_level"`
	// Image replaces the built-in particle source image. Only the
	// desktop host reads it.
	Image string `toml:"image"`
	// Params overrides sketch parameters by name.
	Params map[string]float64 `toml:"params"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// PixelRatio scales the canvas backing store relative to its CSS
	// size on the web. Zero uses devicePixelRatio. The desktop host
	// always renders at the GLFW framebuffer size.
	PixelRatio float64 `toml:"pixel_ratio"`
	VSync      bool    `toml:"vsync"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Window: Window{
			Width:  1024,
			Height: 768,
			Title:  "glsketch",
			VSync:  true,
		},
		Canvas:   "contents",
		LogLevel: "info",
	}
}

// Decode reads TOML from r on top of the defaults. Unknown keys are
// errors.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load decodes the file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports settings no host can honour.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.PixelRatio < 0 {
		return fmt.Errorf("config: negative pixel ratio %g", c.Window.PixelRatio)
	}
	if c.FPS < 0 {
		return fmt.Errorf("config: negative fps %d", c.FPS)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
