package core

import (
	"math"
	"testing"
)

func TestAABBIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{"overlapping", AABB{0, 0, 10, 10}, AABB{5, 5, 10, 10}, true},
		{"separate horizontal", AABB{0, 0, 10, 10}, AABB{15, 0, 10, 10}, false},
		{"separate vertical", AABB{0, 0, 10, 10}, AABB{0, 15, 10, 10}, false},
		{"touching right edge", AABB{0, 0, 10, 10}, AABB{10, 0, 10, 10}, false},
		{"touching bottom edge", AABB{0, 0, 10, 10}, AABB{0, 10, 10, 10}, false},
		{"touching corner", AABB{0, 0, 10, 10}, AABB{10, 10, 5, 5}, false},
		{"contained", AABB{0, 0, 20, 20}, AABB{5, 5, 5, 5}, true},
		{"sub-pixel overlap", AABB{0, 0, 10, 10}, AABB{9.5, 9.5, 10, 10}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAABBInsetAndCenter(t *testing.T) {
	b := AABB{X: 10, Y: 20, W: 50, H: 60}

	in := b.Inset(5)
	if in.X != 15 || in.Y != 25 || in.W != 40 || in.H != 50 {
		t.Errorf("Inset(5) = %+v", in)
	}

	c := b.Center()
	if c.X != 35 || c.Y != 50 {
		t.Errorf("Center() = %+v, expected (35, 50)", c)
	}
	if b.Right() != 60 || b.Bottom() != 80 {
		t.Errorf("Right/Bottom = %v/%v, expected 60/80", b.Right(), b.Bottom())
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}
	if v.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", v.Len())
	}
	if got := v.Add(Vec2{1, 1}).Sub(Vec2{2, 2}).Scale(2); got != (Vec2{4, 6}) {
		t.Errorf("Add/Sub/Scale = %+v, expected (4, 6)", got)
	}
	if math.IsNaN(Vec2{}.Len()) {
		t.Error("zero vector length should be 0")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
