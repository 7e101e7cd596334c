package collision

// Projection is the [near, far] interval of a shape projected onto an axis
// Invariant near <= far; values are immutable and rebuilt on every computation
type Projection struct {
	near, far float64
}

// NewProjectionUnchecked trusts the caller for near <= far
// Ordering is only asserted in debug builds
func NewProjectionUnchecked(near, far float64) Projection {
	debugAssertf(!(near > far), "backwards projection [%v, %v]", near, far)
	return Projection{near: near, far: far}
}

// NewProjection orders the two projected values
func NewProjection(a, b float64) Projection {
	if a <= b {
		return NewProjectionUnchecked(a, b)
	}
	return NewProjectionUnchecked(b, a)
}

// TryNewProjection returns false if near > far
func TryNewProjection(near, far float64) (Projection, bool) {
	if near > far {
		return Projection{}, false
	}
	return NewProjectionUnchecked(near, far), true
}

// PointProjection collapses the interval onto a single projected value
func PointProjection(origin float64) Projection {
	return NewProjectionUnchecked(origin, origin)
}

// ExtentFrom offsets only the far end from origin; dist must be >= 0
func ExtentFrom(origin, dist float64) Projection {
	return NewProjectionUnchecked(origin, origin+dist)
}

// Symmetrical offsets both ends from origin by dist; used for circles, ellipses and AABBs
func Symmetrical(origin, dist float64) Projection {
	return NewProjectionUnchecked(origin-dist, origin+dist)
}

// CoveringBoth returns the smallest projection containing a and b
func CoveringBoth(a, b Projection) Projection {
	return NewProjectionUnchecked(min(a.near, b.near), max(a.far, b.far))
}

// CoveringPoint grows a to include v
func CoveringPoint(a Projection, v float64) Projection {
	return NewProjectionUnchecked(min(a.near, v), max(a.far, v))
}

// Smear extends a in the direction of dist's sign only
// A negative dist moves near, anything else moves far. This is a one-sided
// broad-phase approximation, not a Minkowski sum, and must not back exact sweeps
func Smear(a Projection, dist float64) Projection {
	if dist < 0 {
		return NewProjectionUnchecked(a.near+dist, a.far)
	}
	return NewProjectionUnchecked(a.near, a.far+dist)
}

// Near returns the minimum projected value
func (p Projection) Near() float64 { return p.near }

// Far returns the maximum projected value
func (p Projection) Far() float64 { return p.far }

// Length returns far - near
func (p Projection) Length() float64 { return p.far - p.near }

// Mid returns the interval midpoint
func (p Projection) Mid() float64 { return p.Length()/2 + p.near }

// Bounds returns (near, far)
func (p Projection) Bounds() (near, far float64) { return p.near, p.far }

// AreSeparate reports a strict gap between p and other; touching is not separate
func (p Projection) AreSeparate(other Projection) bool {
	return p.far < other.near || p.near > other.far
}

// PenetrationAll returns both ways of resolving an overlap by moving p
// Each overlap's length is the distance p must travel in the tagged direction
// to end up in contact with other. ok is false when the projections are separate.
// When p starts first the Positive candidate is returned first
func (p Projection) PenetrationAll(other Projection) (first, second Overlap, ok bool) {
	if p.AreSeparate(other) {
		return Overlap{}, Overlap{}, false
	}

	toPositive := Overlap{NewProjectionUnchecked(p.near, other.far), Positive}
	toNegative := Overlap{NewProjectionUnchecked(other.near, p.far), Negative}

	if p.near <= other.near {
		return toPositive, toNegative, true
	}
	return toNegative, toPositive, true
}

// Penetration returns the minimum displacement resolving an overlap by moving p
// The case is Unsigned when direction is ambiguous: both candidates cover the same
// interval, or the shorter one is zero length (exact contact). Equal lengths with
// distinct intervals resolve to the first candidate
func (p Projection) Penetration(other Projection) (Overlap, bool) {
	first, second, ok := p.PenetrationAll(other)
	if !ok {
		return Overlap{}, false
	}

	if first.projection == second.projection {
		return first.WithCase(Unsigned), true
	}

	pick := second
	if first.Length() <= second.Length() {
		pick = first
	}
	if pick.Length() == 0 {
		return pick.WithCase(Unsigned), true
	}
	return pick, true
}

// Separation returns the signed gap between p and other
// Positive when p lies entirely before other; ok is false if they overlap or touch
func (p Projection) Separation(other Projection) (Overlap, bool) {
	switch {
	case p.far < other.near:
		return Overlap{NewProjectionUnchecked(p.far, other.near), Positive}, true
	case p.near > other.far:
		return Overlap{NewProjectionUnchecked(other.far, p.near), Negative}, true
	default:
		return Overlap{}, false
	}
}
