package core

import (
	"math"
	"unicode/utf8"
)

// FillRune is the glyph CellSurface uses for solid fills.
const FillRune = '█'

// minVisibleAlpha is the opacity below which a cell fill is skipped.
// Terminal cells have no blending, so translucent shapes either show or vanish.
const minVisibleAlpha = 0.5

// CellSurface rasterizes a world-space Surface onto a terminal Screen.
// A cell is painted when its center falls inside the transformed shape.
type CellSurface struct {
	TransformStack
	screen *Screen
	worldW float64
	worldH float64
}

// NewCellSurface maps a worldW x worldH playfield onto screen.
func NewCellSurface(screen *Screen, worldW, worldH float64) *CellSurface {
	c := &CellSurface{screen: screen, worldW: worldW, worldH: worldH}
	c.ResetTransform()
	return c
}

// Screen returns the backing cell buffer.
func (c *CellSurface) Screen() *Screen {
	return c.screen
}

// Width returns the world width.
func (c *CellSurface) Width() float64 {
	return c.worldW
}

// Height returns the world height.
func (c *CellSurface) Height() float64 {
	return c.worldH
}

func (c *CellSurface) cellSize() (float64, float64) {
	return c.worldW / float64(c.screen.Width()), c.worldH / float64(c.screen.Height())
}

// Clear blanks the screen and resets the transform. Terminal cells keep the
// default background, so the color is ignored.
func (c *CellSurface) Clear(_ Color) {
	c.screen.Clear()
	c.ResetTransform()
}

// FillRect fills a rectangle given in local coordinates.
func (c *CellSurface) FillRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.fillLocal(RectPath(x, y, w, h), col, func(p Vec2) bool {
		return p.X >= x && p.X < x+w && p.Y >= y && p.Y < y+h
	})
}

// FillCircle fills a circle given in local coordinates.
func (c *CellSurface) FillCircle(cx, cy, r float64, col Color) {
	if r <= 0 {
		return
	}
	bounds := RectPath(cx-r, cy-r, 2*r, 2*r)
	c.fillLocal(bounds, col, func(p Vec2) bool {
		dx, dy := p.X-cx, p.Y-cy
		return dx*dx+dy*dy <= r*r
	})
}

// FillPath fills a closed polygon given in local coordinates.
func (c *CellSurface) FillPath(points []Vec2, col Color) {
	if len(points) < 3 {
		return
	}
	c.fillLocal(points, col, func(p Vec2) bool {
		return PointInPolygon(p, points)
	})
}

// FillText writes text with its top-left corner at the local point (x, y).
func (c *CellSurface) FillText(x, y float64, text string, col Color) {
	if c.Alpha() < minVisibleAlpha {
		return
	}
	cw, ch := c.cellSize()
	p := c.Matrix().Apply(Vec2{x, y})
	c.screen.DrawText(int(math.Floor(p.X/cw)), int(math.Floor(p.Y/ch)), text, col)
}

// MeasureText returns the world width of text at one cell per rune.
func (c *CellSurface) MeasureText(text string) float64 {
	cw, _ := c.cellSize()
	return float64(utf8.RuneCountInString(text)) * cw
}

// fillLocal paints every cell whose center maps back inside the shape.
// outline bounds the shape in local space and is only used to limit the scan.
func (c *CellSurface) fillLocal(outline []Vec2, col Color, inside func(Vec2) bool) {
	if c.Alpha() < minVisibleAlpha {
		return
	}
	m := c.Matrix()
	inv, ok := m.Invert()
	if !ok {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range outline {
		w := m.Apply(p)
		minX, maxX = math.Min(minX, w.X), math.Max(maxX, w.X)
		minY, maxY = math.Min(minY, w.Y), math.Max(maxY, w.Y)
	}

	cw, ch := c.cellSize()
	x0 := Clamp(int(math.Floor(minX/cw)), 0, c.screen.Width())
	x1 := Clamp(int(math.Ceil(maxX/cw)), 0, c.screen.Width())
	y0 := Clamp(int(math.Floor(minY/ch)), 0, c.screen.Height())
	y1 := Clamp(int(math.Ceil(maxY/ch)), 0, c.screen.Height())

	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			center := Vec2{(float64(cx) + 0.5) * cw, (float64(cy) + 0.5) * ch}
			if inside(inv.Apply(center)) {
				c.screen.SetCell(cx, cy, FillRune, col)
			}
		}
	}
}
