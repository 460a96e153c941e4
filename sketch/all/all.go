// SPDX-License-Identifier: Unlicense OR MIT

// Package all registers every sketch. Hosts import it for its side
// effects.
package all

import (
	_ "github.com/glsketch/glsketch/sketch/day1"
	_ "github.com/glsketch/glsketch/sketch/day10"
	_ "github.com/glsketch/glsketch/sketch/day11"
	_ "github.com/glsketch/glsketch/sketch/day12"
	_ "github.com/glsketch/glsketch/sketch/day14"
	_ "github.com/glsketch/glsketch/sketch/day15"
	_ "github.com/glsketch/glsketch/sketch/day2"
	_ "github.com/glsketch/glsketch/sketch/day3"
	_ "github.com/glsketch/glsketch/sketch/day4"
	_ "github.com/glsketch/glsketch/sketch/day5"
	_ "github.com/glsketch/glsketch/sketch/day6"
	_ "github.com/glsketch/glsketch/sketch/day7"
	_ "github.com/glsketch/glsketch/sketch/day8"
	_ "github.com/glsketch/glsketch/sketch/day9"
)
