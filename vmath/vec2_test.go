package vmath

import (
	"math"
	"testing"
)

const testEpsilon = 1e-12

func TestV2Arithmetic(t *testing.T) {
	a := V2(1, 2)
	b := V2(3, -4)

	if got := V2Add(a, b); got != V2(4, -2) {
		t.Errorf("Expected (4,-2), got %v", got)
	}
	if got := V2Sub(a, b); got != V2(-2, 6) {
		t.Errorf("Expected (-2,6), got %v", got)
	}
	if got := V2Scale(a, 3); got != V2(3, 6) {
		t.Errorf("Expected (3,6), got %v", got)
	}
	if got := V2Dot(a, b); got != -5 {
		t.Errorf("Expected dot -5, got %v", got)
	}
	if got := V2Cross(a, b); got != -10 {
		t.Errorf("Expected cross -10, got %v", got)
	}
	if got := V2NegateX(a); got != V2(-1, 2) {
		t.Errorf("Expected (-1,2), got %v", got)
	}
	if got := V2NegateY(a); got != V2(1, -2) {
		t.Errorf("Expected (1,-2), got %v", got)
	}
	if got := V2Perp(V2UnitX); got != V2UnitY {
		t.Errorf("Expected perp of +X to be +Y, got %v", got)
	}
	if got := V2Lerp(a, b, 0.5); got != V2(2, -1) {
		t.Errorf("Expected midpoint (2,-1), got %v", got)
	}
}

func TestV2Normalize(t *testing.T) {
	n, ok := V2TryNormalize(V2(3, 4))
	if !ok || !V2Approx(n, V2(0.6, 0.8), testEpsilon) {
		t.Errorf("Expected (0.6,0.8), got %v ok=%v", n, ok)
	}
	if !V2IsNormalized(n) {
		t.Error("Expected normalized result to report normalized")
	}

	inf := math.Inf(1)
	nan := math.NaN()
	for _, v := range []Vec2{V2Zero, {inf, 0}, {nan, 1}} {
		if _, ok := V2TryNormalize(v); ok {
			t.Errorf("Expected %v to fail normalization", v)
		}
	}

	if got := V2Normalize(V2Zero); got != V2Zero {
		t.Errorf("Expected zero-safe normalize, got %v", got)
	}
	if V2IsNormalized(V2(2, 0)) {
		t.Error("Expected (2,0) not normalized")
	}
}

func TestV2Rotate(t *testing.T) {
	quarter := V2FromAngle(math.Pi / 2)
	if got := V2Rotate(V2UnitX, quarter); !V2Approx(got, V2UnitY, testEpsilon) {
		t.Errorf("Expected +Y, got %v", got)
	}
	if got := V2RotateAngle(V2(2, 0), math.Pi); !V2Approx(got, V2(-2, 0), testEpsilon) {
		t.Errorf("Expected (-2,0), got %v", got)
	}

	v := V2UnitX
	step := V2FromAngle(2 * math.Pi / 12)
	for i := 0; i < 12; i++ {
		v = V2Rotate(v, step)
	}
	if !V2Approx(v, V2UnitX, 1e-9) {
		t.Errorf("Expected full turn to return to +X, got %v", v)
	}
	if a := V2Angle(V2UnitY); math.Abs(a-math.Pi/2) > testEpsilon {
		t.Errorf("Expected angle pi/2, got %v", a)
	}
}

func TestV2IsFinite(t *testing.T) {
	if !V2IsFinite(V2(1, -1)) {
		t.Error("Expected finite vector")
	}
	if V2IsFinite(V2(math.Inf(-1), 0)) || V2IsFinite(V2(0, math.NaN())) {
		t.Error("Expected non-finite detection")
	}
}
