package physics

import (
	"math"
	"time"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/vmath"
)

// Body pairs a shape with a linear velocity in world units per second
type Body struct {
	Shape    collision.Shape
	Velocity vmath.Vec2
}

// Motion returns the displacement over dt
func (b *Body) Motion(dt time.Duration) vmath.Vec2 {
	return vmath.V2Scale(b.Velocity, dt.Seconds())
}

// Step advances the shape by one integration step
func (b *Body) Step(dt time.Duration) {
	b.Shape = b.Shape.Translated(b.Motion(dt))
}

// ReflectBounds keeps the AABB inside [0, width] × [0, height]
// Clamps the shape back inside and flips the velocity component heading out
// Returns true if a wall was hit
func (b *Body) ReflectBounds(width, height float64) bool {
	hit := false
	h := b.Shape.HBound
	o := b.Shape.Origin

	if o.X-h.X < 0 {
		o.X = h.X
		b.Velocity.X = math.Abs(b.Velocity.X)
		hit = true
	} else if o.X+h.X > width {
		o.X = width - h.X
		b.Velocity.X = -math.Abs(b.Velocity.X)
		hit = true
	}

	if o.Y-h.Y < 0 {
		o.Y = h.Y
		b.Velocity.Y = math.Abs(b.Velocity.Y)
		hit = true
	} else if o.Y+h.Y > height {
		o.Y = height - h.Y
		b.Velocity.Y = -math.Abs(b.Velocity.Y)
		hit = true
	}

	b.Shape.Origin = o
	return hit
}

// Separate moves the body by translation and reflects velocity heading back into the contact
func (b *Body) Separate(translation vmath.Vec2) {
	b.Shape = b.Shape.Translated(translation)

	n, ok := vmath.V2TryNormalize(translation)
	if !ok {
		return
	}
	if d := vmath.V2Dot(b.Velocity, n); d < 0 {
		b.Velocity = vmath.V2Sub(b.Velocity, vmath.V2Scale(n, 2*d))
	}
}
