package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSign(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"positive", 3.5, 1},
		{"negative", -0.001, -1},
		{"zero", 0, 0},
		{"negative_zero", math.Copysign(0, -1), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Sign(c.in); got != c.want {
				t.Fatalf("Sign(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestSmoothDamp(t *testing.T) {
	t.Run("converges_without_overshoot", func(t *testing.T) {
		var vel float64
		cur := 0.0
		for i := 0; i < 120; i++ {
			cur = SmoothDamp(cur, 6, &vel, 0.1, math.Inf(1), 1.0/60.0)
			if cur > 6 {
				t.Fatalf("overshot target at step %d: %v", i, cur)
			}
		}
		if math.Abs(cur-6) > 1e-3 {
			t.Fatalf("expected to converge to 6, got %v", cur)
		}
	})

	t.Run("longer_smooth_time_is_slower", func(t *testing.T) {
		var fastVel, slowVel float64
		fast, slow := 0.0, 0.0
		for i := 0; i < 5; i++ {
			fast = SmoothDamp(fast, 6, &fastVel, 0.1, math.Inf(1), 1.0/60.0)
			slow = SmoothDamp(slow, 6, &slowVel, 0.2, math.Inf(1), 1.0/60.0)
		}
		if !(fast > slow) {
			t.Fatalf("expected fast (%v) > slow (%v)", fast, slow)
		}
	})

	t.Run("zero_delta_is_noop", func(t *testing.T) {
		vel := 2.0
		if got := SmoothDamp(1, 6, &vel, 0.1, math.Inf(1), 0); got != 1 {
			t.Fatalf("expected unchanged value, got %v", got)
		}
		if vel != 2 {
			t.Fatalf("expected unchanged velocity, got %v", vel)
		}
	})

	t.Run("max_speed_limits_step", func(t *testing.T) {
		var vel float64
		got := SmoothDamp(0, 100, &vel, 0.1, 1, 1.0/60.0)
		if got > 0.1 {
			t.Fatalf("expected max speed to limit the change, got %v", got)
		}
	})
}

func TestRect(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 1, Height: 2}
	bb := r.Bounds()
	if bb.L != 1 || bb.B != 2 || bb.R != 2 || bb.T != 4 {
		t.Fatalf("unexpected bounds %+v", bb)
	}

	r.Translate(cp.Vector{X: -0.5, Y: 1})
	if r.X != 0.5 || r.Y != 3 {
		t.Fatalf("unexpected position after translate: %v,%v", r.X, r.Y)
	}
	if c := r.Center(); c.X != 1 || c.Y != 4 {
		t.Fatalf("unexpected center %v", c)
	}

	other := Rect{X: 1.4, Y: 4.9, Width: 1, Height: 1}
	if !r.Intersects(&other) {
		t.Fatalf("expected rects to intersect")
	}
	other.Y = 5
	if r.Intersects(&other) {
		t.Fatalf("touching edges should not intersect")
	}
}
