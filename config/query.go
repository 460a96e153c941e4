// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// QueryConfig is the query key naming a TOML file for the web host to
// fetch before applying the remaining keys.
const QueryConfig = "config"

// ApplyQuery overrides c with page query values. The keys sketch, log,
// canvas, ratio and fps set the matching fields; any other key is a
// numeric sketch parameter.
func (c *Config) ApplyQuery(q url.Values) error {
	keys := maps.Keys(q)
	slices.Sort(keys)
	for _, k := range keys {
		v := q.Get(k)
		switch k {
		case QueryConfig:
		case "sketch":
			c.Sketch = v
		case "log":
			c.LogLevel = v
		case "canvas":
			c.Canvas = v
		case "ratio":
			r, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("config: ratio: %w", err)
			}
			c.Window.PixelRatio = r
		case "fps":
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: fps: %w", err)
			}
			c.FPS = n
		default:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("config: param %s: %w", k, err)
			}
			if c.Params == nil {
				c.Params = make(map[string]float64)
			}
			c.Params[k] = f
		}
	}
	return c.Validate()
}
