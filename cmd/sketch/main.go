// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Command sketch runs the sketches in a desktop window.
//
//	sketch list
//	sketch run [--config file.toml] [--width w] [--height h] day15
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glsketch/glsketch/app"
	"github.com/glsketch/glsketch/app/desktop"
	"github.com/glsketch/glsketch/config"
	"github.com/glsketch/glsketch/gpu"
	"github.com/glsketch/glsketch/sketch"
	_ "github.com/glsketch/glsketch/sketch/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sketch: %v\n", err)
		os.Exit(1)
	}
}

type runFlags struct {
	config   string
	width    int
	height   int
	fps      int
	frames   int
	logLevel string
	image    string
	params   map[string]string
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "sketch",
		Short:         "Run WebGL daily sketches on the desktop",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(out), newRunCmd())
	return root
}

func newListCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered sketches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
			for _, info := range sketch.All() {
				fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.Description)
			}
			return tw.Flush()
		},
	}
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Open a window and run a sketch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			name := cfg.Sketch
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				return errors.New("no sketch named, see sketch list")
			}
			return run(cmd.Context(), cfg, name, f.frames)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "TOML configuration file")
	fl.IntVar(&f.width, "width", 0, "window width")
	fl.IntVar(&f.height, "height", 0, "window height")
	fl.IntVar(&f.fps, "fps", 0, "fixed frame rate, 0 follows the display")
	fl.IntVar(&f.frames, "frames", 0, "stop after this many frames")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fl.StringVar(&f.image, "image", "", "source image for particle sketches")
	fl.StringToStringVarP(&f.params, "param", "p", nil, "parameter overrides, name=value")
	return cmd
}

// load reads the configuration file, if any, and applies the flags that
// were set on top of it.
func (f *runFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return config.Config{}, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Window.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Window.Height = f.height
	}
	if fl.Changed("fps") {
		cfg.FPS = f.fps
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("image") {
		cfg.Image = f.image
	}
	for k, v := range f.params {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return config.Config{}, fmt.Errorf("param %s: %w", k, err)
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[k] = x
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, name string, frames int) error {
	info, ok := sketch.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown sketch %q", name)
	}
	level, _ := cfg.Level()
	gpu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if cfg.Window.PixelRatio != 0 {
		gpu.Logger().Warn("pixel_ratio only applies on the web", "ratio", cfg.Window.PixelRatio)
	}

	if cfg.Window.Title == config.Default().Window.Title {
		cfg.Window.Title = "glsketch: " + info.Name
	}
	w, err := desktop.New(cfg.Window)
	if err != nil {
		return err
	}
	defer w.Close()

	opts := app.Options{
		FPS:    cfg.FPS,
		Frames: frames,
		Params: cfg.Params,
	}
	if opts.FPS == 0 {
		opts.FPS = info.FPS
	}
	if cfg.Image != "" {
		abs, err := filepath.Abs(cfg.Image)
		if err != nil {
			return err
		}
		opts.Assets = os.DirFS(filepath.Dir(abs))
		opts.Image = filepath.Base(abs)
	}
	gpu.Logger().Info("sketch: running", "name", info.Name, "fps", opts.FPS)
	return app.Run(ctx, w, info.New(), opts)
}
