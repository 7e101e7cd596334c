package collision

// OverlapCase is the direction the first operand travels to resolve an overlap or close a gap
type OverlapCase uint8

const (
	// Positive moves the first operand toward +axis
	Positive OverlapCase = iota
	// Negative moves the first operand toward -axis
	Negative
	// Unsigned marks coinciding boundaries where either direction is valid
	Unsigned
)

func (c OverlapCase) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Unsigned:
		return "unsigned"
	default:
		return "unknown"
	}
}

// Overlap is a directed distance along one axis: a projection tagged with its case
type Overlap struct {
	projection  Projection
	overlapCase OverlapCase
}

// NewOverlap tags projection p with case c
func NewOverlap(p Projection, c OverlapCase) Overlap {
	return Overlap{projection: p, overlapCase: c}
}

// Projection returns the interval the overlap spans
func (o Overlap) Projection() Projection { return o.projection }

// Case returns the direction tag
func (o Overlap) Case() OverlapCase { return o.overlapCase }

// Length returns the unsigned distance
func (o Overlap) Length() float64 { return o.projection.Length() }

// WithCase returns a copy retagged with c
func (o Overlap) WithCase(c OverlapCase) Overlap {
	return Overlap{projection: o.projection, overlapCase: c}
}

// Negate flips Positive and Negative; Unsigned is unchanged
// Swapping the operands of Separation or Penetration yields the negated result
func (o Overlap) Negate() Overlap {
	switch o.overlapCase {
	case Positive:
		return o.WithCase(Negative)
	case Negative:
		return o.WithCase(Positive)
	default:
		return o
	}
}

// Offset returns the signed distance, unresolved for Unsigned overlaps
func (o Overlap) Offset() OverlapOffset {
	switch o.overlapCase {
	case Positive:
		return OverlapOffset{value: o.Length(), known: true}
	case Negative:
		return OverlapOffset{value: -o.Length(), known: true}
	default:
		return OverlapOffset{value: o.Length()}
	}
}

// OverlapOffset is a signed distance that may still need a caller-supplied sign
type OverlapOffset struct {
	value float64
	known bool
}

// Known reports whether the sign was resolved by the overlap itself
func (o OverlapOffset) Known() bool { return o.known }

// Value returns the signed distance when known, otherwise the unsigned length
func (o OverlapOffset) Value() float64 { return o.value }

// Or returns the signed distance, or fallback when unresolved
func (o OverlapOffset) Or(fallback float64) float64 {
	if o.known {
		return o.value
	}
	return fallback
}

// OrElse returns the signed distance, or fn(length) when unresolved
func (o OverlapOffset) OrElse(fn func(length float64) float64) float64 {
	if o.known {
		return o.value
	}
	return fn(o.value)
}

// OrSign returns the signed distance, or length*sign when unresolved
func (o OverlapOffset) OrSign(sign float64) float64 {
	if o.known {
		return o.value
	}
	return o.value * sign
}
