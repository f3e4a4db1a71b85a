package motion

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestOrbitOffset(t *testing.T) {
	tests := []struct {
		r, deg float64
		hand   Handedness
		dx, dy float64
	}{
		{5, 0, Standard, 5, 0},
		{5, 90, Standard, 0, 5},
		{5, 180, Standard, -5, 0},
		{2, 270, Standard, 0, -2},
		{5, 0, Mirrored, -5, 0},
		{5, 90, Mirrored, 0, -5},
		{4, 60, Standard, 2, 4 * math.Sqrt(3) / 2},
	}

	for _, tt := range tests {
		got := Offset(tt.r, tt.deg, tt.hand)
		if math.Abs(got.DX-tt.dx) > eps || math.Abs(got.DY-tt.dy) > eps {
			t.Errorf("Offset(%v, %v, %v) = (%v, %v), want (%v, %v)", tt.r, tt.deg, tt.hand, got.DX, got.DY, tt.dx, tt.dy)
		}
	}
}

func TestOrbitFullRevolution(t *testing.T) {
	for _, step := range []float64{1, 3, 5, 2.5, 0.1} {
		for _, dir := range []Direction{Clockwise, CounterClockwise} {
			o := NewOrbitFrom(45, 6, step, dir, Standard)
			n := o.Revolution()
			for i := 0; i < n; i++ {
				o.Next()
			}
			d := math.Abs(o.Angle() - 45)
			if d > 1e-6 && math.Abs(d-FullTurn) > 1e-6 {
				t.Errorf("step %v %v: angle %v after %d ticks, want 45", step, dir, o.Angle(), n)
			}
		}
	}
}

func TestOrbitAngleStaysInRange(t *testing.T) {
	for _, dir := range []Direction{Clockwise, CounterClockwise} {
		o := NewOrbit(3, 7, dir, Mirrored)
		for i := 0; i < 5000; i++ {
			o.Next()
			if a := o.Angle(); a < 0 || a >= FullTurn {
				t.Fatalf("%v tick %d: angle %v out of [0,360)", dir, i, a)
			}
		}
	}
}

func TestOrbitDirection(t *testing.T) {
	cw := NewOrbit(1, 3, Clockwise, Standard)
	cw.Next()
	if cw.Angle() != 3 {
		t.Errorf("clockwise: expected 3, got %v", cw.Angle())
	}

	ccw := NewOrbit(1, 3, CounterClockwise, Standard)
	ccw.Next()
	if ccw.Angle() != 357 {
		t.Errorf("counter-clockwise: expected 357, got %v", ccw.Angle())
	}
}

func TestOrbitMatchesCircle(t *testing.T) {
	o := NewOrbit(6, 3, CounterClockwise, Mirrored)
	for i := 0; i < 240; i++ {
		deg := o.Angle()
		got := o.Next()
		want := Offset(6, deg, Mirrored)
		if got != want {
			t.Fatalf("tick %d: got %v want %v", i, got, want)
		}
		if r := math.Hypot(got.DX, got.DY); math.Abs(r-6) > eps {
			t.Fatalf("tick %d: radius %v", i, r)
		}
	}
}

func TestOrbitNames(t *testing.T) {
	tests := []struct {
		dir  Direction
		hand Handedness
		want string
	}{
		{Clockwise, Standard, "orbit-cw"},
		{CounterClockwise, Standard, "orbit-ccw"},
		{Clockwise, Mirrored, "orbit-cw-mirrored"},
		{CounterClockwise, Mirrored, "orbit-ccw-mirrored"},
	}
	for _, tt := range tests {
		if got := NewOrbit(1, 1, tt.dir, tt.hand).Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
