package physics

import (
	"math"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/vmath"
)

// Contact is the minimum translation that separates the first shape from the second
type Contact struct {
	Axis    vmath.Vec2        // Unit axis of least penetration
	Offset  float64           // Signed distance along Axis to move the first shape
	Overlap collision.Overlap // Raw penetration on Axis
}

// Depth returns the unsigned penetration
func (c Contact) Depth() float64 {
	return math.Abs(c.Offset)
}

// Translation returns the displacement for the first shape
func (c Contact) Translation() vmath.Vec2 {
	return vmath.V2Scale(c.Axis, c.Offset)
}

// Resolve runs SAT between a and b over world X and Y plus the axes each shape
// contributes against the other. Touching shapes are in contact with zero depth.
// Unsigned overlaps take the sign of the centre delta along the axis
func Resolve(a, b collision.Shape) (Contact, bool) {
	var (
		best  Contact
		found bool
	)

	consider := func(axis vmath.Vec2, pa, pb collision.Projection) bool {
		pen, ok := pa.Penetration(pb)
		if !ok {
			return false
		}
		if !found || pen.Length() < best.Depth() {
			sign := 1.0
			if vmath.V2Dot(axis, vmath.V2Sub(a.Origin, b.Origin)) < 0 {
				sign = -1
			}
			best = Contact{Axis: axis, Offset: pen.Offset().OrSign(sign), Overlap: pen}
			found = true
		}
		return true
	}

	ax, ay := a.ProjectAligned()
	bx, by := b.ProjectAligned()
	if !consider(vmath.V2UnitX, ax, bx) || !consider(vmath.V2UnitY, ay, by) {
		return Contact{}, false
	}

	aAxes := a.AxesBetween(b)
	for axis := range aAxes.All() {
		if !consider(axis, a.ProjectOn(axis), b.ProjectOn(axis)) {
			return Contact{}, false
		}
	}
	bAxes := b.AxesBetween(a)
	for axis := range bAxes.All() {
		if !consider(axis, a.ProjectOn(axis), b.ProjectOn(axis)) {
			return Contact{}, false
		}
	}
	return best, true
}

// Overlaps reports whether a and b intersect or touch
func Overlaps(a, b collision.Shape) bool {
	_, ok := Resolve(a, b)
	return ok
}

// ContainsPoint reports whether p lies inside or on the boundary of s
func ContainsPoint(s collision.Shape, p vmath.Vec2) bool {
	return Overlaps(s, collision.NewPoint(p))
}
