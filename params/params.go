// SPDX-License-Identifier: Unlicense OR MIT

// Package params implements named numeric parameters with a range and a
// step, read by sketches every frame and changed by the host at any
// time.
package params

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnknown is returned for names that are not part of a Set.
var ErrUnknown = errors.New("params: unknown parameter")

// Param describes one parameter. A zero Step leaves values unsnapped.
type Param struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// clamp limits v to the range and snaps it to the nearest step from Min.
func (p Param) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Value
	}
	if p.Step > 0 {
		v = p.Min + math.Round((v-p.Min)/p.Step)*p.Step
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Set is a collection of parameters safe for concurrent use.
type Set struct {
	mu     sync.Mutex
	params map[string]*Param
}

// New returns a set of the given parameters, with initial values
// clamped. It panics on duplicate names or empty ranges.
func New(ps ...Param) *Set {
	s := &Set{params: make(map[string]*Param, len(ps))}
	for _, p := range ps {
		if _, dup := s.params[p.Name]; dup {
			panic(fmt.Sprintf("params: duplicate parameter %q", p.Name))
		}
		if p.Min > p.Max {
			panic(fmt.Sprintf("params: %q has min %g above max %g", p.Name, p.Min, p.Max))
		}
		p.Value = p.clamp(p.Value)
		s.params[p.Name] = &p
	}
	return s
}

// Get returns the current value of name, or 0 if there is no such
// parameter.
func (s *Set) Get(name string) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.params[name]; ok {
		return float32(p.Value)
	}
	return 0
}

// Set stores v, clamped to the range of name, and returns the stored
// value.
func (s *Set) Set(name string, v float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.params[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	p.Value = p.clamp(v)
	return p.Value, nil
}

// Nudge moves name by steps steps, or by a hundredth of its range when
// it has no step.
func (s *Set) Nudge(name string, steps int) (float64, error) {
	s.mu.Lock()
	p, ok := s.params[name]
	if !ok {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	step := p.Step
	if step == 0 {
		step = (p.Max - p.Min) / 100
	}
	v := p.Value + float64(steps)*step
	s.mu.Unlock()
	return s.Set(name, v)
}

// Apply sets every value of vals. Unknown names are reported together
// after the known ones are applied.
func (s *Set) Apply(vals map[string]float64) error {
	var unknown []string
	for _, name := range sortedKeys(vals) {
		if _, err := s.Set(name, vals[name]); err != nil {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknown, unknown)
	}
	return nil
}

func sortedKeys(vals map[string]float64) []string {
	names := maps.Keys(vals)
	slices.Sort(names)
	return names
}

// Names returns the parameter names in lexical order.
func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := maps.Keys(s.params)
	slices.Sort(names)
	return names
}

// Params returns a snapshot of every parameter in lexical order.
func (s *Set) Params() []Param {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps := make([]Param, 0, len(s.params))
	for _, p := range s.params {
		ps = append(ps, *p)
	}
	slices.SortFunc(ps, func(a, b Param) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return ps
}
