package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, 'X', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected X/red", cell)
	}

	// Out of bounds is silent
	s.SetCell(-1, 0, 'A', ColorRed)
	s.SetCell(100, 0, 'A', ColorRed)
	s.SetCell(0, -1, 'A', ColorRed)
	s.SetCell(0, 100, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' || s.GetCell(100, 0).Color != ColorDefault {
		t.Error("Out of bounds reads should return a blank cell")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill('#', ColorGreen)

	if c := s.GetCell(4, 4); c.Rune != '#' || c.Color != ColorGreen {
		t.Errorf("After Fill, got %+v", c)
	}

	s.Clear()
	if c := s.GetCell(4, 4); c != blankCell {
		t.Errorf("After Clear, got %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorYellow)

	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorYellow {
			t.Errorf("DrawText: expected %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	s.DrawText(18, 0, "Hello", ColorDefault)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", ColorDefault)
	s.DrawText(0, 1, "BBBBB", ColorDefault)
	s.DrawText(0, 2, "CCCCC", ColorDefault)

	if got := s.String(); got != "AAAAA\nBBBBB\nCCCCC" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(3, 2)
	if s.Width() != 3 || s.Height() != 2 {
		t.Fatalf("After resize, dimensions should be 3x2, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(1) != "BBB" {
		t.Errorf("Row(1) = %q, expected BBB", s.Row(1))
	}

	s.Resize(6, 4)
	if !strings.HasPrefix(s.Row(0), "AAA") {
		t.Errorf("content should survive enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != "      " {
		t.Errorf("out of bounds row = %q", s.Row(-1))
	}
}

func TestScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, 2)
	if s.Width() != 0 || s.String() != "\n" {
		t.Errorf("NewScreen(-3, 2) = %dx%d %q", s.Width(), s.Height(), s.String())
	}
	s.SetCell(0, 0, 'X', ColorRed)
	s.Resize(2, 1)
	if got := s.Row(0); got != "  " {
		t.Errorf("Row(0) = %q, expected blank", got)
	}
}
