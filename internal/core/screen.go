package core

import "strings"

// Cell is one character position of the terminal buffer.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a colored character buffer stored row-major.
// Games never draw here directly: CellSurface rasterizes world-space shapes into it,
// and the terminal host turns it into styled text.
type Screen struct {
	width, height int
	cells         []Cell
}

// NewScreen returns a blank width x height buffer.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: max(width, 0), height: max(height, 0)}
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in characters.
func (s *Screen) Height() int { return s.height }

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Resize changes the dimensions. The overlapping top-left region is kept.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}
	next := NewScreen(width, height)
	w, h := min(s.width, width), min(s.height, height)
	for y := range h {
		copy(next.cells[y*width:y*width+w], s.cells[y*s.width:y*s.width+w])
	}
	*s = *next
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	s.Fill(' ', ColorDefault)
}

// Fill sets every cell to r in color c.
func (s *Screen) Fill(r rune, c Color) {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// SetCell places a colored rune. Out-of-bounds writes are dropped.
func (s *Screen) SetCell(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the buffer.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the buffer.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blankCell
	}
	return s.cells[y*s.width+x]
}

// DrawText writes text left to right from (x, y), clipping at the edges.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetCell(x, y, r, c)
		x++
	}
}

// Row returns row y as plain text. Rows outside the buffer are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
