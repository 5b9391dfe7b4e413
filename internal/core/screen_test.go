package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorBird)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorBird {
		t.Errorf("GetCell(5, 5) = %+v, expected X/bird", c)
	}
	s.Set(4, 4, 'Y')
	if c := s.GetCell(4, 4); c.Color != ColorDefault {
		t.Errorf("Set should use the default color, got %v", c.Color)
	}

	// Out of bounds writes are ignored, reads are blank
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(s.Bounds(), 'X', ColorObstacle)
	s.Clear()

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("after Clear the screen should be blank, got %q", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorText)

	if got := s.Row(1)[2:7]; got != "Hello" {
		t.Errorf("row 1 = %q, expected Hello at x=2", s.Row(1))
	}
	if s.GetCell(2, 1).Color != ColorText {
		t.Error("DrawText should color its cells")
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello", ColorText)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorScore)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered: row = %q", s.Row(2))
	}

	s.DrawTextCentered(3, "▲▲", ColorScore)
	if s.Get(x, 3) != '▲' {
		t.Errorf("multi-byte text should center by rune count, row = %q", s.Row(3))
	}
}

func TestScreenFillRect(t *testing.T) {
	tests := []struct {
		name  string
		rect  Rect
		cells int
	}{
		{"inside", NewRect(2, 2, 3, 3), 9},
		{"clipped left", NewRect(-2, 0, 4, 2), 4},
		{"clipped bottom right", NewRect(8, 8, 5, 5), 4},
		{"fully outside", NewRect(20, 20, 3, 3), 0},
		{"empty", NewRect(1, 1, 0, 4), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(10, 10)
			s.FillRect(tc.rect, '#', ColorGround)
			if got := strings.Count(s.String(), "#"); got != tc.cells {
				t.Errorf("filled %d cells, expected %d", got, tc.cells)
			}
		})
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '-', ColorGround)

	if got := s.Row(2); got != "  -----   " {
		t.Errorf("row 2 = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorText)

	expected := []string{
		"          ",
		" ┌───┐    ",
		" │   │    ",
		" │   │    ",
		" └───┘    ",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("row %d = %q, expected %q", y, got, want)
		}
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3), ColorText)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("boxes narrower than 2 cells should not be drawn")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", ColorDefault)
	s.DrawText(0, 1, "BBBBB", ColorDefault)
	s.DrawText(0, 2, "CCCCC", ColorDefault)

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorDefault)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "        " {
		t.Errorf("resize should clear, row 0 = %q", s.Row(0))
	}

	s.Resize(-3, 2)
	if s.Width() != 0 || s.String() != "\n" {
		t.Errorf("negative width should clamp to 0, got %d", s.Width())
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test", ColorDefault)

	if row := s.Row(2); row != "Test      " {
		t.Errorf("Row(2) = %q", row)
	}
	if row := s.Row(-1); row != "          " {
		t.Errorf("out of bounds row should be spaces, got %q", row)
	}

	cells := s.RowCells(2)
	if len(cells) != 10 || cells[0].Rune != 'T' {
		t.Errorf("RowCells(2) = %+v", cells)
	}
	cells[0].Rune = 'Z'
	if s.Get(0, 2) != 'T' {
		t.Error("RowCells should return a copy")
	}
	if s.RowCells(7) != nil {
		t.Error("out of bounds RowCells should be nil")
	}
}
