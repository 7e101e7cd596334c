package collision

import (
	"fmt"
	"iter"
	"math"

	"github.com/lixenwraith/broadphase/vmath"
)

// ShapeKind is the closed set of supported primitives
// Triangles are right triangles filling half of the bounding box; the name gives the
// hypotenuse slope (decline falls left to right, incline rises) and which half is solid
type ShapeKind uint8

const (
	KindEllipse ShapeKind = iota
	KindRectangle
	KindTriangleDeclineNormal
	KindTriangleDeclineInvert
	KindTriangleInclineNormal
	KindTriangleInclineInvert
)

var shapeKindNames = [...]string{
	KindEllipse:               "ellipse",
	KindRectangle:             "rectangle",
	KindTriangleDeclineNormal: "triangle-decline-normal",
	KindTriangleDeclineInvert: "triangle-decline-invert",
	KindTriangleInclineNormal: "triangle-incline-normal",
	KindTriangleInclineInvert: "triangle-incline-invert",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// IsTriangle reports whether k is one of the four triangle orientations
func (k ShapeKind) IsTriangle() bool {
	switch k {
	case KindTriangleDeclineNormal, KindTriangleDeclineInvert, KindTriangleInclineNormal, KindTriangleInclineInvert:
		return true
	default:
		return false
	}
}

// ParseShapeKind is the inverse of ShapeKind.String
func ParseShapeKind(s string) (ShapeKind, error) {
	for k, name := range shapeKindNames {
		if name == s {
			return ShapeKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// Shape is an immutable snapshot of a primitive
// HBound holds the half-extents, both >= 0
type Shape struct {
	Origin vmath.Vec2
	HBound vmath.Vec2
	Kind   ShapeKind
}

func newShape(origin, hbound vmath.Vec2, kind ShapeKind) Shape {
	assertf(!(hbound.X < 0 || hbound.Y < 0), "negative half-extent %v", hbound)
	return Shape{Origin: origin, HBound: hbound, Kind: kind}
}

// NewPoint returns a zero-size ellipse
func NewPoint(origin vmath.Vec2) Shape {
	return newShape(origin, vmath.V2Zero, KindEllipse)
}

// NewCircle returns an ellipse with equal half-extents
func NewCircle(origin vmath.Vec2, radius float64) Shape {
	return newShape(origin, vmath.V2Scale(vmath.V2One, radius), KindEllipse)
}

func NewEllipse(origin, radius vmath.Vec2) Shape {
	return newShape(origin, radius, KindEllipse)
}

// NewSquare returns a rectangle with equal half-extents
func NewSquare(origin vmath.Vec2, size float64) Shape {
	return newShape(origin, vmath.V2Scale(vmath.V2One, size), KindRectangle)
}

func NewRectangle(origin, size vmath.Vec2) Shape {
	return newShape(origin, size, KindRectangle)
}

// NewTriangle selects the orientation from the slope and inversion flags
func NewTriangle(origin, size vmath.Vec2, incline, invert bool) Shape {
	var kind ShapeKind
	switch {
	case !incline && !invert:
		kind = KindTriangleDeclineNormal
	case !incline && invert:
		kind = KindTriangleDeclineInvert
	case incline && !invert:
		kind = KindTriangleInclineNormal
	default:
		kind = KindTriangleInclineInvert
	}
	return newShape(origin, size, kind)
}

// Translated returns a copy moved by delta
func (s Shape) Translated(delta vmath.Vec2) Shape {
	s.Origin = vmath.V2Add(s.Origin, delta)
	return s
}

// ProjectAligned returns the AABB as projections on the world X and Y axes
// This is the only geometry the cache grid consumes
func (s Shape) ProjectAligned() (x, y Projection) {
	return Symmetrical(s.Origin.X, s.HBound.X), Symmetrical(s.Origin.Y, s.HBound.Y)
}

// ProjectOn projects the shape onto a unit axis
func (s Shape) ProjectOn(axis vmath.Vec2) Projection {
	switch s.Kind {
	case KindEllipse:
		return Symmetrical(vmath.V2Dot(axis, s.Origin), s.RadiusOnAxis(axis))
	case KindRectangle:
		points := s.BoundPoints()
		return projectPoints(axis, points[:])
	case KindTriangleDeclineNormal, KindTriangleDeclineInvert, KindTriangleInclineNormal, KindTriangleInclineInvert:
		points := s.SlopePoints()
		return projectPoints(axis, points[:])
	default:
		panic(fmt.Sprintf("collision: project on unsupported kind %v", s.Kind))
	}
}

// Diagonal hypotenuse normals, one per triangle orientation
var (
	axisDeclineNormal = vmath.Vec2{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
	axisInclineNormal = vmath.Vec2{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
	axisDeclineInvert = vmath.Vec2{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}
	axisInclineInvert = vmath.Vec2{X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}
)

// AxesBetween returns the separating axis candidates s contributes against other
// World X and Y are not included; callers test them through ProjectAligned.
// Rectangles add nothing, triangles add their hypotenuse normal, ellipses add
// directions from their centre toward the other shape's centre or corners
func (s Shape) AxesBetween(other Shape) Axes {
	var axes Axes
	switch s.Kind {
	case KindRectangle:
	case KindTriangleDeclineNormal:
		axes.push(axisDeclineNormal)
	case KindTriangleInclineNormal:
		axes.push(axisInclineNormal)
	case KindTriangleDeclineInvert:
		axes.push(axisDeclineInvert)
	case KindTriangleInclineInvert:
		axes.push(axisInclineInvert)
	case KindEllipse:
		switch {
		case other.Kind == KindEllipse:
			axes.pushNormalized(vmath.V2Sub(other.Origin, s.Origin))
		case other.Kind == KindRectangle:
			for _, p := range other.BoundPoints() {
				axes.pushNormalized(vmath.V2Sub(p, s.Origin))
			}
		case other.Kind.IsTriangle():
			for _, p := range other.SlopePoints() {
				axes.pushNormalized(vmath.V2Sub(p, s.Origin))
			}
		}
	}
	return axes
}

// RadiusOnAxis returns the distance from the centre to the ellipse boundary in the
// direction of axis, r(θ) = ab / sqrt(a²sin²θ + b²cos²θ) with axis = (cosθ, sinθ)
// Panics for non-ellipse kinds; axis must be unit length (asserted in debug builds)
func (s Shape) RadiusOnAxis(axis vmath.Vec2) float64 {
	assertf(s.Kind == KindEllipse, "radius on axis for %v", s.Kind)
	if s.HBound.X == s.HBound.Y {
		return s.HBound.X
	}
	debugAssertf(vmath.V2IsNormalized(axis), "axis %v is not normalized", axis)

	c, sn := axis.X, axis.Y
	a, b := s.HBound.X, s.HBound.Y
	denom := math.Sqrt(a*a*sn*sn + b*b*c*c)
	if denom == 0 {
		// Degenerate ellipse (a segment) viewed along its length
		return max(a, b)
	}
	return (a * b) / denom
}

// BoundPoints returns the AABB corners: (-x-y, -x+y, +x+y, +x-y)
func (s Shape) BoundPoints() [4]vmath.Vec2 {
	return [4]vmath.Vec2{
		vmath.V2Sub(s.Origin, s.HBound),
		vmath.V2Add(s.Origin, vmath.V2NegateX(s.HBound)),
		vmath.V2Add(s.Origin, s.HBound),
		vmath.V2Add(s.Origin, vmath.V2NegateY(s.HBound)),
	}
}

// SlopePoints returns the three triangle vertices; panics for non-triangles
func (s Shape) SlopePoints() [3]vmath.Vec2 {
	var (
		lowLeft  = vmath.V2Sub(s.Origin, s.HBound)
		topRight = vmath.V2Add(s.Origin, s.HBound)
		topLeft  = vmath.V2Add(s.Origin, vmath.V2NegateX(s.HBound))
		lowRight = vmath.V2Add(s.Origin, vmath.V2NegateY(s.HBound))
	)

	switch s.Kind {
	case KindTriangleDeclineNormal:
		return [3]vmath.Vec2{lowLeft, lowRight, topLeft}
	case KindTriangleDeclineInvert:
		return [3]vmath.Vec2{topRight, topLeft, lowRight}
	case KindTriangleInclineNormal:
		return [3]vmath.Vec2{lowRight, topRight, lowLeft}
	case KindTriangleInclineInvert:
		return [3]vmath.Vec2{topLeft, lowLeft, topRight}
	default:
		panic(fmt.Sprintf("collision: cannot get triangle points for %v", s.Kind))
	}
}

// EllipsePoints yields segments points on the ellipse boundary, stepping a unit
// axis by 2π/segments from +X. Panics for non-ellipse kinds
func (s Shape) EllipsePoints(segments int) iter.Seq[vmath.Vec2] {
	assertf(s.Kind == KindEllipse, "ellipse points for %v", s.Kind)
	return func(yield func(vmath.Vec2) bool) {
		if segments <= 0 {
			return
		}
		step := vmath.V2FromAngle(2 * math.Pi / float64(segments))
		axis := vmath.V2UnitX
		for range segments {
			dist := s.ProjectOn(axis).Far() - vmath.V2Dot(axis, s.Origin)
			if !yield(vmath.V2Add(s.Origin, vmath.V2Scale(axis, dist))) {
				return
			}
			axis = vmath.V2Rotate(axis, step)
		}
	}
}

// projectPoints folds points onto axis; points must not be empty
func projectPoints(axis vmath.Vec2, points []vmath.Vec2) Projection {
	debugAssertf(len(points) > 0, "no points to project")
	p := PointProjection(vmath.V2Dot(axis, points[0]))
	for _, v := range points[1:] {
		p = CoveringPoint(p, vmath.V2Dot(axis, v))
	}
	return p
}
