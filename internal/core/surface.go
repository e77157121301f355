package core

import "math"

// Surface is the 2D drawing target games render onto.
// Coordinates are world units; the active transform and alpha apply to every fill.
type Surface interface {
	Width() float64
	Height() float64
	Clear(c Color)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(rad float64)
	Scale(sx, sy float64)
	SetAlpha(a float64)

	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	FillPath(points []Vec2, c Color)
	FillText(x, y float64, text string, c Color)
	// MeasureText returns the width text occupies in world units.
	MeasureText(text string) float64
}

// Affine is a 2D affine matrix using the canvas convention:
// x' = A*x + C*y + E, y' = B*x + D*y + F.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Apply transforms a point.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Mul returns the composition m∘n (n is applied first).
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Invert returns the inverse transform. A singular matrix (zero scale)
// returns ok=false.
func (m Affine) Invert() (Affine, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Affine{}, false
	}
	return Affine{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}, true
}

type drawState struct {
	m     Affine
	alpha float64
}

// TransformStack implements the Save/Restore/Translate/Rotate/Scale/SetAlpha part
// of Surface. Concrete surfaces embed it and read Matrix and Alpha when filling.
type TransformStack struct {
	cur   drawState
	stack []drawState
	init  bool
}

func (t *TransformStack) ensure() {
	if !t.init {
		t.cur = drawState{m: Identity(), alpha: 1}
		t.init = true
	}
}

// ResetTransform drops saved states and restores identity with full opacity.
func (t *TransformStack) ResetTransform() {
	t.cur = drawState{m: Identity(), alpha: 1}
	t.stack = t.stack[:0]
	t.init = true
}

// Save pushes the current transform and alpha.
func (t *TransformStack) Save() {
	t.ensure()
	t.stack = append(t.stack, t.cur)
}

// Restore pops the last saved state. Unbalanced calls are ignored.
func (t *TransformStack) Restore() {
	if len(t.stack) == 0 {
		return
	}
	t.cur = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

// Translate moves the origin.
func (t *TransformStack) Translate(x, y float64) {
	t.ensure()
	t.cur.m = t.cur.m.Mul(Affine{A: 1, D: 1, E: x, F: y})
}

// Rotate rotates the axes clockwise (y points down) by rad.
func (t *TransformStack) Rotate(rad float64) {
	t.ensure()
	sin, cos := math.Sincos(rad)
	t.cur.m = t.cur.m.Mul(Affine{A: cos, B: sin, C: -sin, D: cos})
}

// Scale scales the axes.
func (t *TransformStack) Scale(sx, sy float64) {
	t.ensure()
	t.cur.m = t.cur.m.Mul(Affine{A: sx, D: sy})
}

// SetAlpha sets the global opacity in [0,1].
func (t *TransformStack) SetAlpha(a float64) {
	t.ensure()
	t.cur.alpha = ClampF(a, 0, 1)
}

// Matrix returns the current transform.
func (t *TransformStack) Matrix() Affine {
	t.ensure()
	return t.cur.m
}

// Alpha returns the current opacity.
func (t *TransformStack) Alpha() float64 {
	t.ensure()
	return t.cur.alpha
}

// RectPath returns the four corners of a rectangle in drawing order.
func RectPath(x, y, w, h float64) []Vec2 {
	return []Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// PointInPolygon reports whether p lies inside poly using the even-odd rule.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// FillTextCentered writes text horizontally centered on cx.
func FillTextCentered(s Surface, cx, y float64, text string, c Color) {
	s.FillText(cx-s.MeasureText(text)/2, y, text, c)
}

// DrawPanel draws a translucent message box centered on the surface: a
// title line followed by body lines, 25 units apart.
func DrawPanel(s Surface, titleColor Color, title string, lines ...string) {
	const lineH = 25
	w := s.MeasureText(title)
	for _, l := range lines {
		w = max(w, s.MeasureText(l))
	}
	w += 60
	h := float64(len(lines)+3) * lineH
	x := (s.Width() - w) / 2
	y := (s.Height() - h) / 2

	s.Save()
	s.SetAlpha(0.8)
	s.FillRect(x, y, w, h, ColorGray)
	s.Restore()

	cx := s.Width() / 2
	FillTextCentered(s, cx, y+lineH, title, titleColor)
	for i, l := range lines {
		FillTextCentered(s, cx, y+lineH*float64(i+2), l, ColorBrightWhite)
	}
}
