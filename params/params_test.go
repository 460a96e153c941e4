// SPDX-License-Identifier: Unlicense OR MIT

package params

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() *Set {
	return New(
		Param{Name: "frequent", Value: 0.05, Min: 0, Max: 10, Step: 0.0001},
		Param{Name: "uThreshold", Value: 0.478, Min: 0, Max: 1, Step: 0.001},
		Param{Name: "free", Value: 5, Min: 0, Max: 10},
	)
}

func TestClampAndSnap(t *testing.T) {
	s := testSet()
	assert.InDelta(t, 0.05, s.Get("frequent"), 1e-6)

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"frequent", 11, 10},
		{"frequent", -1, 0},
		{"uThreshold", 0.12345, 0.123},
		{"uThreshold", 0.9996, 1},
		{"free", 3.14159, 3.14159},
		{"free", math.NaN(), 3.14159},
	}
	for _, test := range tests {
		got, err := s.Set(test.name, test.in)
		require.NoError(t, err)
		assert.InDelta(t, test.want, got, 1e-9, "%s=%v", test.name, test.in)
	}
	_, err := s.Set("nope", 1)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Zero(t, s.Get("nope"))
}

func TestNudge(t *testing.T) {
	s := testSet()
	v, err := s.Nudge("uThreshold", 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.480, v, 1e-9)
	v, err = s.Nudge("free", -1)
	require.NoError(t, err)
	assert.InDelta(t, 4.9, v, 1e-9)
	_, err = s.Nudge("nope", 1)
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestApply(t *testing.T) {
	s := testSet()
	err := s.Apply(map[string]float64{"free": 1, "bogus": 2, "frequent": 20})
	assert.ErrorIs(t, err, ErrUnknown)
	assert.ErrorContains(t, err, "bogus")
	assert.Equal(t, float32(1), s.Get("free"))
	assert.Equal(t, float32(10), s.Get("frequent"))
}

func TestNamesSorted(t *testing.T) {
	s := testSet()
	assert.Equal(t, []string{"free", "frequent", "uThreshold"}, s.Names())
	ps := s.Params()
	require.Len(t, ps, 3)
	assert.Equal(t, "free", ps[0].Name)
}

func TestNewPanics(t *testing.T) {
	assert.Panics(t, func() { New(Param{Name: "a"}, Param{Name: "a"}) })
	assert.Panics(t, func() { New(Param{Name: "a", Min: 1, Max: 0}) })
}

func TestConcurrentAccess(t *testing.T) {
	s := testSet()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set("free", float64(i))
				s.Get("free")
			}
		}(i)
	}
	wg.Wait()
	v := s.Get("free")
	assert.True(t, v >= 0 && v < 8)
}
