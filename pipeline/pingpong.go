// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

// PingPong holds two resources with alternating roles. The resource
// written during a frame is read during the next one.
type PingPong[T any] struct {
	Read  T
	Write T
	swaps int
}

// NewPingPong returns a pair with a initially read and b written.
func NewPingPong[T any](a, b T) *PingPong[T] {
	return &PingPong[T]{Read: a, Write: b}
}

// Swap exchanges the roles.
func (p *PingPong[T]) Swap() {
	p.Read, p.Write = p.Write, p.Read
	p.swaps++
}

// Swaps returns the number of swaps so far.
func (p *PingPong[T]) Swaps() int {
	return p.swaps
}

// Both returns the pair in creation order.
func (p *PingPong[T]) Both() [2]T {
	if p.swaps%2 == 0 {
		return [2]T{p.Read, p.Write}
	}
	return [2]T{p.Write, p.Read}
}
