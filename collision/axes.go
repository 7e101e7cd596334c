package collision

import (
	"iter"

	"github.com/lixenwraith/broadphase/vmath"
)

// MaxAxes bounds the candidate axes one shape contributes against another
// An ellipse against a rectangle produces the most: one per rectangle corner
const MaxAxes = 4

// Axes is an inline fixed-capacity list of unit axes
// Value type; lives on the stack in the SAT candidate path
type Axes struct {
	items [MaxAxes]vmath.Vec2
	n     int
}

// push appends an axis, panicking on overflow
func (a *Axes) push(axis vmath.Vec2) {
	assertf(a.n < MaxAxes, "axes overflow (capacity %d)", MaxAxes)
	a.items[a.n] = axis
	a.n++
}

// pushNormalized appends the normalized direction, skipping zero-length input
func (a *Axes) pushNormalized(dir vmath.Vec2) {
	if n, ok := vmath.V2TryNormalize(dir); ok {
		a.push(n)
	}
}

// Len returns the number of axes
func (a Axes) Len() int { return a.n }

// At returns axis i; panics if i is out of range
func (a Axes) At(i int) vmath.Vec2 {
	assertf(i >= 0 && i < a.n, "axis index %d out of range [0, %d)", i, a.n)
	return a.items[i]
}

// Slice returns a view over the backing array; valid while a is
func (a *Axes) Slice() []vmath.Vec2 {
	return a.items[:a.n]
}

// All iterates the axes in insertion order
func (a Axes) All() iter.Seq[vmath.Vec2] {
	return func(yield func(vmath.Vec2) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(a.items[i]) {
				return
			}
		}
	}
}
