package collision

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const caseWidth = 4

type overlapCase struct {
	name        string
	other       Projection
	separation  *Overlap
	penetration *Overlap
}

func some(near, far float64, c OverlapCase) *Overlap {
	o := NewOverlap(NewProjectionUnchecked(near, far), c)
	return &o
}

// boundaryCases builds the fifteen placements of a probe projection around a
// base interval [offset, offset+caseWidth]
func boundaryCases(offset float64) (Projection, []overlapCase) {
	l, r := offset, offset+caseWidth
	w := float64(caseWidth)
	span := func(near, far float64) Projection { return NewProjectionUnchecked(near, far) }

	return span(l, r), []overlapCase{
		{"gap_l", span(l-2, l-1), some(l-1, l, Negative), nil},
		{"gap_r", span(r+1, r+2), some(r, r+1, Positive), nil},
		{"touch_l", span(l-2, l), nil, some(l, l, Unsigned)},
		{"touch_r", span(r, r+2), nil, some(r, r, Unsigned)},
		{"penetrate_l", span(l-2, l+1), nil, some(l, l+1, Positive)},
		{"penetrate_r", span(r-1, r+2), nil, some(r-1, r, Negative)},
		{"contained_l", span(l+1, r-2), nil, some(l, l+w-2, Positive)},
		{"contained_r", span(l+2, r-1), nil, some(r-(w-2), r, Negative)},
		{"contained_m", span(l+1, r-1), nil, some(l, l+w-1, Positive)},
		{"contains_l", span(l-2, r+1), nil, some(l, l+w+1, Positive)},
		{"contains_r", span(l-1, r+2), nil, some(r-(w+1), r, Negative)},
		{"contains_m", span(l-1, r+1), nil, some(r-(w+1), r, Negative)},
		{"overlap_l", span(l-1, r), nil, some(l, l+w, Positive)},
		{"overlap_r", span(l, r+1), nil, some(r-w, r, Negative)},
		{"overlap_m", span(l, r), nil, some(l, l+w, Unsigned)},
	}
}

func optional(o Overlap, ok bool) *Overlap {
	if !ok {
		return nil
	}
	return &o
}

func TestSeparationCases(t *testing.T) {
	for offset := -2 * caseWidth; offset <= 2*caseWidth; offset++ {
		base, cases := boundaryCases(float64(offset))
		for _, tc := range cases {
			got := optional(base.Separation(tc.other))
			require.Equal(t, tc.separation, got, "offset %d case %s", offset, tc.name)

			if got != nil {
				back, ok := tc.other.Separation(base)
				require.True(t, ok, "offset %d case %s: reversed separation missing", offset, tc.name)
				require.Equal(t, got.Negate(), back, "offset %d case %s: not symmetric", offset, tc.name)
			}
		}
	}
}

func TestPenetrationCases(t *testing.T) {
	for offset := -2 * caseWidth; offset <= 2*caseWidth; offset++ {
		base, cases := boundaryCases(float64(offset))
		for _, tc := range cases {
			got := optional(base.Penetration(tc.other))
			require.Equal(t, tc.penetration, got, "offset %d case %s", offset, tc.name)

			if got != nil {
				back, ok := tc.other.Penetration(base)
				require.True(t, ok, "offset %d case %s: reversed penetration missing", offset, tc.name)
				require.Equal(t, got.Negate(), back, "offset %d case %s: not symmetric", offset, tc.name)
			}
		}
	}
}

// Exactly one of separation and penetration exists for any pair
func TestSeparationPenetrationDuality(t *testing.T) {
	for offset := -2 * caseWidth; offset <= 2*caseWidth; offset++ {
		base, cases := boundaryCases(float64(offset))
		for _, tc := range cases {
			_, sep := base.Separation(tc.other)
			_, pen := base.Penetration(tc.other)
			if sep == pen {
				t.Errorf("Expected exactly one of separation/penetration for %s at %d, got sep=%v pen=%v",
					tc.name, offset, sep, pen)
			}
			if sep != base.AreSeparate(tc.other) {
				t.Errorf("Expected AreSeparate to agree with Separation for %s at %d", tc.name, offset)
			}
		}
	}
}

func TestProjectionOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a := rng.Float64()*200 - 100
		b := rng.Float64()*200 - 100
		p := NewProjection(a, b)
		require.LessOrEqual(t, p.Near(), p.Far())
		require.Equal(t, math.Min(a, b), p.Near())
		require.Equal(t, math.Max(a, b), p.Far())

		q := NewProjection(b, a)
		require.Equal(t, p, q)
	}
}

func TestTryNewProjection(t *testing.T) {
	p, ok := TryNewProjection(1, 3)
	require.True(t, ok)
	require.Equal(t, 2.0, p.Length())

	_, ok = TryNewProjection(3, 1)
	require.False(t, ok)

	p, ok = TryNewProjection(2, 2)
	require.True(t, ok)
	require.Zero(t, p.Length())
}

func TestProjectionFactories(t *testing.T) {
	require.Equal(t, NewProjectionUnchecked(5, 5), PointProjection(5))
	require.Equal(t, NewProjectionUnchecked(2, 5), ExtentFrom(2, 3))
	require.Equal(t, NewProjectionUnchecked(-1, 5), Symmetrical(2, 3))

	p := Symmetrical(0, 2)
	near, far := p.Bounds()
	require.Equal(t, -2.0, near)
	require.Equal(t, 2.0, far)
	require.Equal(t, 0.0, p.Mid())
	require.Equal(t, 4.0, p.Length())
}

func TestCovering(t *testing.T) {
	a := NewProjectionUnchecked(0, 2)
	b := NewProjectionUnchecked(5, 7)

	require.Equal(t, NewProjectionUnchecked(0, 7), CoveringBoth(a, b))
	require.Equal(t, NewProjectionUnchecked(0, 7), CoveringBoth(b, a))
	require.Equal(t, a, CoveringBoth(a, NewProjectionUnchecked(0.5, 1)))

	require.Equal(t, NewProjectionUnchecked(-3, 2), CoveringPoint(a, -3))
	require.Equal(t, NewProjectionUnchecked(0, 9), CoveringPoint(a, 9))
	require.Equal(t, a, CoveringPoint(a, 1))
}

func TestSmear(t *testing.T) {
	p := NewProjectionUnchecked(0, 2)
	require.Equal(t, NewProjectionUnchecked(0, 5), Smear(p, 3))
	require.Equal(t, NewProjectionUnchecked(-3, 2), Smear(p, -3))
	require.Equal(t, p, Smear(p, 0))
}

func TestGapScenario(t *testing.T) {
	a := NewProjectionUnchecked(0, 4)
	b := NewProjectionUnchecked(5, 6)

	require.True(t, a.AreSeparate(b))

	sep, ok := a.Separation(b)
	require.True(t, ok)
	require.Equal(t, Positive, sep.Case())
	require.Equal(t, 1.0, sep.Offset().Or(0))

	_, ok = a.Penetration(b)
	require.False(t, ok)
}

func TestTouchScenario(t *testing.T) {
	a := NewProjectionUnchecked(0, 4)
	b := NewProjectionUnchecked(4, 6)

	require.False(t, a.AreSeparate(b))

	pen, ok := a.Penetration(b)
	require.True(t, ok)
	require.Equal(t, Unsigned, pen.Case())
	require.Zero(t, pen.Length())
	require.Equal(t, PointProjection(4), pen.Projection())
}

func TestPenetrationAllOrder(t *testing.T) {
	a := NewProjectionUnchecked(0, 4)
	b := NewProjectionUnchecked(3, 8)

	first, second, ok := a.PenetrationAll(b)
	require.True(t, ok)
	require.Equal(t, NewOverlap(NewProjectionUnchecked(0, 8), Positive), first)
	require.Equal(t, NewOverlap(NewProjectionUnchecked(3, 4), Negative), second)

	first, second, ok = b.PenetrationAll(a)
	require.True(t, ok)
	require.Equal(t, NewOverlap(NewProjectionUnchecked(0, 8), Negative), first)
	require.Equal(t, NewOverlap(NewProjectionUnchecked(3, 4), Positive), second)

	_, _, ok = a.PenetrationAll(NewProjectionUnchecked(5, 6))
	require.False(t, ok)
}

func TestNonFiniteDoesNotPanic(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	values := []Projection{
		{near: nan, far: nan},
		{near: 0, far: nan},
		{near: -inf, far: inf},
		{near: inf, far: inf},
		{near: 0, far: 1},
	}

	require.NotPanics(t, func() {
		for _, a := range values {
			for _, b := range values {
				a.AreSeparate(b)
				a.Separation(b)
				a.Penetration(b)
				a.PenetrationAll(b)
				CoveringBoth(a, b)
				Smear(a, nan)
			}
		}
	})
}
