package signal

import (
	"math"
	"testing"
)

func TestClampRange(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{-0.3, 0},
		{-1, 0},
		{1.7, 1},
		{42, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClampNonFinite(t *testing.T) {
	for _, in := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Clamp(in); got != 0 {
			t.Errorf("Clamp(%v) = %v, want 0", in, got)
		}
	}
}

func TestBucketRange(t *testing.T) {
	for x := -2.0; x <= 3.0; x += 0.01 {
		b := Bucket(x)
		if b < 0 || b > 10 {
			t.Fatalf("Bucket(%v) = %d, outside 0..10", x, b)
		}
	}
	if Bucket(math.NaN()) != 0 {
		t.Errorf("Bucket(NaN) = %d, want 0", Bucket(math.NaN()))
	}
}

func TestBucketMonotone(t *testing.T) {
	prev := Bucket(-1)
	for x := -1.0; x <= 2.0; x += 0.005 {
		b := Bucket(x)
		if b < prev {
			t.Fatalf("Bucket not monotone: Bucket(%v) = %d after %d", x, b, prev)
		}
		prev = b
	}
}

func TestBucketEndpoints(t *testing.T) {
	if Bucket(0) != 0 {
		t.Errorf("Bucket(0) = %d, want 0", Bucket(0))
	}
	if Bucket(1) != 10 {
		t.Errorf("Bucket(1) = %d, want 10", Bucket(1))
	}
	if Bucket(0.55) != 6 {
		t.Errorf("Bucket(0.55) = %d, want 6", Bucket(0.55))
	}
}

func TestSmoothConvergence(t *testing.T) {
	// |D_n - T| = |D0 - T| * 0.7^n
	d := 0.0
	target := 1.0
	for n := 1; n <= 20; n++ {
		d = Smooth(d, target)
		want := 1.0 - math.Pow(0.7, float64(n))
		if math.Abs(d-want) > 1e-12 {
			t.Fatalf("after %d steps displayed = %v, want %v", n, d, want)
		}
	}
}

func TestSmoothFixedPoint(t *testing.T) {
	if got := Smooth(0.4, 0.4); got != 0.4 {
		t.Errorf("Smooth at target moved: %v", got)
	}
}
