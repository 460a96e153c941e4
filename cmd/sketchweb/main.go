// SPDX-License-Identifier: Unlicense OR MIT

//go:build js

// Command sketchweb runs a sketch in the browser. The page query selects
// the sketch and overrides settings; "config" names a TOML file to load
// first. The sketch defaults to day15.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"syscall/js"

	"github.com/glsketch/glsketch/app"
	"github.com/glsketch/glsketch/app/web"
	"github.com/glsketch/glsketch/config"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/sketch"
	_ "github.com/glsketch/glsketch/sketch/all"
)

const defaultSketch = "day15"

func main() {
	if err := run(); err != nil {
		gpu.Logger().Error("sketchweb", "err", err)
		js.Global().Get("console").Call("error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	q, err := url.ParseQuery(js.Global().Get("location").Get("search").String())
	if err != nil {
		q = url.Values{}
	}
	cfg := config.Default()
	if path := q.Get(config.QueryConfig); path != "" {
		if cfg, err = fetchConfig(path); err != nil {
			return err
		}
	}
	if err := cfg.ApplyQuery(q); err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	gpu.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	name := cfg.Sketch
	if name == "" {
		name = defaultSketch
	}
	info, ok := sketch.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown sketch %q", name)
	}
	opts := app.Options{FPS: info.FPS, Params: cfg.Params}
	if cfg.FPS > 0 {
		opts.FPS = cfg.FPS
	}

	w, err := web.New(cfg.Canvas, cfg.Window.PixelRatio)
	if err != nil {
		return err
	}
	defer w.Close()
	return app.Run(context.Background(), w, info.New(), opts)
}

// fetchConfig decodes the TOML file at path, relative to the page.
func fetchConfig(path string) (config.Config, error) {
	resp, err := http.Get(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return config.Config{}, fmt.Errorf("config: %s: %s", path, resp.Status)
	}
	cfg, err := config.Decode(resp.Body)
	if err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
