package window

import (
	"image"
	"image/color"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// glyphWidth is the advance of basicfont.Face7x13.
const glyphWidth = 7

var face = text.NewGoXFace(basicfont.Face7x13)

// whiteTexture is the source for DrawTriangles fills, created on first use.
var whiteTexture = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
})

// background is the clear color for core.ColorDefault.
var background = color.RGBA{0x14, 0x14, 0x1e, 0xff}

// rgba returns c with alpha applied, premultiplied as ebiten expects.
func rgba(c core.Color, alpha float64) color.RGBA {
	r, g, b := c.RGB()
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(0xff * a),
	}
}

// Surface draws world coordinates onto an ebiten image of the same size.
type Surface struct {
	core.TransformStack
	dst    *ebiten.Image
	worldW float64
	worldH float64
}

// NewSurface creates a surface for a worldW x worldH logical screen.
func NewSurface(worldW, worldH float64) *Surface {
	s := &Surface{worldW: worldW, worldH: worldH}
	s.ResetTransform()
	return s
}

// Begin targets dst for the next frame.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.ResetTransform()
}

// Width returns the world width.
func (s *Surface) Width() float64 { return s.worldW }

// Height returns the world height.
func (s *Surface) Height() float64 { return s.worldH }

// Clear fills the frame and resets the transform.
func (s *Surface) Clear(c core.Color) {
	s.ResetTransform()
	if c == core.ColorDefault {
		s.dst.Fill(background)
		return
	}
	s.dst.Fill(rgba(c, 1))
}

// FillRect fills an axis-aligned rectangle in local coordinates.
func (s *Surface) FillRect(x, y, w, h float64, c core.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	m := s.Matrix()
	if m.B != 0 || m.C != 0 {
		s.FillPath([]core.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, c)
		return
	}
	rx, ry, rw, rh := transformRect(m, x, y, w, h)
	vector.DrawFilledRect(s.dst, float32(rx), float32(ry), float32(rw), float32(rh), rgba(c, s.Alpha()), false)
}

// FillCircle fills a circle. Non-uniform scale uses the mean axis scale.
func (s *Surface) FillCircle(cx, cy, r float64, c core.Color) {
	if r <= 0 {
		return
	}
	m := s.Matrix()
	p := m.Apply(core.Vec2{X: cx, Y: cy})
	radius := r * math.Sqrt(math.Abs(m.A*m.D-m.B*m.C))
	vector.DrawFilledCircle(s.dst, float32(p.X), float32(p.Y), float32(radius), rgba(c, s.Alpha()), true)
}

// FillPath fills a closed polygon.
func (s *Surface) FillPath(points []core.Vec2, c core.Color) {
	if len(points) < 3 {
		return
	}
	m := s.Matrix()
	var path vector.Path
	for i, pt := range points {
		p := m.Apply(pt)
		if i == 0 {
			path.MoveTo(float32(p.X), float32(p.Y))
			continue
		}
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	col := rgba(c, s.Alpha())
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(col.R) / 0xff
		vs[i].ColorG = float32(col.G) / 0xff
		vs[i].ColorB = float32(col.B) / 0xff
		vs[i].ColorA = float32(col.A) / 0xff
	}
	s.dst.DrawTriangles(vs, is, whiteTexture(), &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero})
}

// FillText draws text with its top-left corner at (x, y).
func (s *Surface) FillText(x, y float64, str string, c core.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geoM(s.Matrix()))
	op.ColorScale.ScaleWithColor(rgba(c, s.Alpha()))
	text.Draw(s.dst, str, face, op)
}

// MeasureText returns the advance of str in the fixed-width face.
func (s *Surface) MeasureText(str string) float64 {
	return float64(utf8.RuneCountInString(str) * glyphWidth)
}

// transformRect maps a local rectangle through an axis-aligned transform,
// normalizing negative extents from mirrored scales.
func transformRect(m core.Affine, x, y, w, h float64) (rx, ry, rw, rh float64) {
	p0 := m.Apply(core.Vec2{X: x, Y: y})
	p1 := m.Apply(core.Vec2{X: x + w, Y: y + h})
	return math.Min(p0.X, p1.X), math.Min(p0.Y, p1.Y), math.Abs(p1.X - p0.X), math.Abs(p1.Y - p0.Y)
}

// geoM converts a canvas-style affine matrix to ebiten's GeoM.
func geoM(m core.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(1, 0, m.B)
	g.SetElement(0, 1, m.C)
	g.SetElement(1, 1, m.D)
	g.SetElement(0, 2, m.E)
	g.SetElement(1, 2, m.F)
	return g
}

var _ core.Surface = (*Surface)(nil)
