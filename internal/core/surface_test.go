package core

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAffineInvert(t *testing.T) {
	var ts TransformStack
	ts.Translate(10, 20)
	ts.Rotate(0.3)
	ts.Scale(2, 3)
	m := ts.Matrix()

	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular matrix")
	}

	p := Vec2{7, -4}
	back := inv.Apply(m.Apply(p))
	if !approx(back.X, p.X) || !approx(back.Y, p.Y) {
		t.Errorf("inv(m(p)) = %+v, expected %+v", back, p)
	}

	if _, ok := (Affine{A: 0, D: 1}).Invert(); ok {
		t.Error("zero-scale matrix should not be invertible")
	}
}

func TestTransformStackSaveRestore(t *testing.T) {
	var ts TransformStack
	ts.SetAlpha(0.5)
	ts.Save()
	ts.Translate(5, 5)
	ts.SetAlpha(0.1)

	if p := ts.Matrix().Apply(Vec2{}); p != (Vec2{5, 5}) {
		t.Errorf("translated origin = %+v", p)
	}

	ts.Restore()
	if p := ts.Matrix().Apply(Vec2{}); p != (Vec2{}) {
		t.Errorf("restored origin = %+v, expected (0, 0)", p)
	}
	if ts.Alpha() != 0.5 {
		t.Errorf("restored alpha = %v, expected 0.5", ts.Alpha())
	}

	// Unbalanced restore is ignored
	ts.Restore()
	ts.Restore()
	if ts.Alpha() != 0.5 {
		t.Errorf("alpha after extra Restore = %v", ts.Alpha())
	}
}

func TestPointInPolygon(t *testing.T) {
	tri := []Vec2{{0, 0}, {10, 0}, {0, 10}}

	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"inside", Vec2{2, 2}, true},
		{"beyond hypotenuse", Vec2{8, 8}, false},
		{"left of shape", Vec2{-1, 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PointInPolygon(tc.p, tri); got != tc.want {
				t.Errorf("PointInPolygon(%+v) = %v, expected %v", tc.p, got, tc.want)
			}
		})
	}
}

// newTestSurface maps a 100x100 world onto 10x10 cells (one cell = 10 units).
func newTestSurface() *CellSurface {
	return NewCellSurface(NewScreen(10, 10), 100, 100)
}

func TestCellSurfaceFillRect(t *testing.T) {
	s := newTestSurface()
	s.FillRect(20, 30, 20, 10, ColorRed)

	filled := [][2]int{{2, 3}, {3, 3}}
	empty := [][2]int{{4, 3}, {2, 4}, {1, 3}, {2, 2}}

	for _, pos := range filled {
		if c := s.Screen().GetCell(pos[0], pos[1]); c.Rune != FillRune || c.Color != ColorRed {
			t.Errorf("cell %v = %+v, expected red fill", pos, c)
		}
	}
	for _, pos := range empty {
		if r := s.Screen().Get(pos[0], pos[1]); r != ' ' {
			t.Errorf("cell %v = %q, expected empty", pos, r)
		}
	}
}

func TestCellSurfaceRotatedRect(t *testing.T) {
	s := newTestSurface()
	s.Translate(50, 50)
	s.Rotate(math.Pi / 2)
	// A bar pointing right in local space points down after a quarter turn.
	s.FillRect(0, -10, 30, 20, ColorGreen)

	for _, pos := range [][2]int{{4, 5}, {5, 5}, {4, 7}, {5, 7}} {
		if s.Screen().Get(pos[0], pos[1]) != FillRune {
			t.Errorf("cell %v should be filled", pos)
		}
	}
	for _, pos := range [][2]int{{6, 6}, {4, 8}, {4, 4}, {7, 5}} {
		if s.Screen().Get(pos[0], pos[1]) != ' ' {
			t.Errorf("cell %v should be empty", pos)
		}
	}
}

func TestCellSurfaceAlphaAndClear(t *testing.T) {
	s := newTestSurface()
	s.SetAlpha(0.2)
	s.FillRect(0, 0, 100, 100, ColorRed)
	s.FillText(0, 0, "x", ColorRed)

	if s.Screen().Get(5, 5) != ' ' || s.Screen().Get(0, 0) != ' ' {
		t.Error("translucent fills should be skipped on a cell surface")
	}

	s.Translate(30, 30)
	s.Clear(ColorBlue)
	if s.Alpha() != 1 || s.Matrix() != Identity() {
		t.Error("Clear should reset the transform state")
	}
}

func TestCellSurfaceCircleAndText(t *testing.T) {
	s := newTestSurface()
	s.FillCircle(50, 50, 15, ColorYellow)

	if s.Screen().Get(4, 4) != FillRune {
		t.Error("cell near circle center should be filled")
	}
	if s.Screen().Get(2, 4) != ' ' {
		t.Error("cell outside radius should be empty")
	}

	s.Translate(10, 10)
	s.FillText(10, 20, "Hi", ColorWhite)
	if s.Screen().Get(2, 3) != 'H' || s.Screen().Get(3, 3) != 'i' {
		t.Errorf("text row = %q", s.Screen().Row(3))
	}
}

func TestCellSurfaceFillPath(t *testing.T) {
	s := newTestSurface()
	s.FillPath([]Vec2{{0, 0}, {60, 0}, {0, 60}}, ColorOrange)

	if s.Screen().Get(1, 1) != FillRune {
		t.Error("cell inside triangle should be filled")
	}
	if s.Screen().Get(5, 5) != ' ' {
		t.Error("cell outside triangle should be empty")
	}
}

func TestCellSurfaceCenteredText(t *testing.T) {
	s := newTestSurface()
	if w := s.MeasureText("abcd"); w != 40 {
		t.Errorf("MeasureText() = %v, expected 40", w)
	}

	FillTextCentered(s, 50, 0, "abcd", ColorWhite)
	if s.Screen().Get(3, 0) != 'a' || s.Screen().Get(6, 0) != 'd' {
		t.Errorf("centered row = %q", s.Screen().Row(0))
	}
}
