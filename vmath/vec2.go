package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector for collision geometry
// Y axis points up; world units are arbitrary and scaled by the grid
type Vec2 struct {
	X, Y float64
}

// Common unit and zero vectors
var (
	V2Zero  = Vec2{}
	V2One   = Vec2{1, 1}
	V2UnitX = Vec2{1, 0}
	V2UnitY = Vec2{0, 1}
)

// normalizedEpsilon is the tolerance used by V2IsNormalized
const normalizedEpsilon = 1e-4

func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Neg(v Vec2) Vec2 {
	return Vec2{-v.X, -v.Y}
}

func V2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// V2Cross returns the z component of the 3D cross product
func V2Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2Normalize returns the unit vector, zero-safe (zero in, zero out)
func V2Normalize(v Vec2) Vec2 {
	n, ok := V2TryNormalize(v)
	if !ok {
		return Vec2{}
	}
	return n
}

// V2TryNormalize returns the unit vector and true, or false when the length is
// zero or the result would not be finite
func V2TryNormalize(v Vec2) (Vec2, bool) {
	mag := V2Mag(v)
	if mag == 0 || math.IsInf(mag, 0) || math.IsNaN(mag) {
		return Vec2{}, false
	}
	inv := 1.0 / mag
	n := Vec2{v.X * inv, v.Y * inv}
	if !V2IsFinite(n) {
		return Vec2{}, false
	}
	return n, true
}

// V2IsNormalized reports whether |v| is 1 within a small tolerance
func V2IsNormalized(v Vec2) bool {
	return math.Abs(V2MagSq(v)-1) <= 2*normalizedEpsilon
}

// V2IsFinite reports whether both components are neither NaN nor infinite
func V2IsFinite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// V2FromAngle returns the unit vector (cos θ, sin θ)
func V2FromAngle(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{c, s}
}

// V2Angle returns atan2(y, x)
func V2Angle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// V2Rotate rotates v by the rotation encoded in unit vector rot (cos, sin)
// Complex multiplication; avoids a sin/cos per call when rot is reused
func V2Rotate(v, rot Vec2) Vec2 {
	return Vec2{
		v.X*rot.X - v.Y*rot.Y,
		v.X*rot.Y + v.Y*rot.X,
	}
}

// V2RotateAngle rotates v by angle radians counter-clockwise
func V2RotateAngle(v Vec2, angle float64) Vec2 {
	return V2Rotate(v, V2FromAngle(angle))
}

func V2NegateX(v Vec2) Vec2 {
	return Vec2{-v.X, v.Y}
}

func V2NegateY(v Vec2) Vec2 {
	return Vec2{v.X, -v.Y}
}

// V2Perp returns v rotated 90° counter-clockwise
func V2Perp(v Vec2) Vec2 {
	return Vec2{-v.Y, v.X}
}

// V2Approx reports component-wise equality within epsilon
func V2Approx(a, b Vec2, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}

// V2Lerp interpolates from a (t=0) to b (t=1)
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
