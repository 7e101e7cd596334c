package vmath

import "testing"

func TestFastRandDeterministic(t *testing.T) {
	a, b := NewFastRand(42), NewFastRand(42)
	for range 100 {
		if a.Next() != b.Next() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
	if NewFastRand(0).Next() == 0 {
		t.Error("Expected zero seed to be replaced")
	}
}

func TestFastRandRanges(t *testing.T) {
	r := NewFastRand(7)
	for range 1000 {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
		if v := r.Range(-3, 5); v < -3 || v >= 5 {
			t.Fatalf("Range out of bounds: %v", v)
		}
		if n := r.Intn(6); n < 0 || n >= 6 {
			t.Fatalf("Intn out of bounds: %d", n)
		}
		p := r.V2In(V2(1, 2), V2(3, 4))
		if p.X < 1 || p.X >= 3 || p.Y < 2 || p.Y >= 4 {
			t.Fatalf("V2In out of bounds: %v", p)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Expected Intn(0) to return 0")
	}
}
