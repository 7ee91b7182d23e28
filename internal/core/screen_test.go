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
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", c)
	}

	// Set keeps the existing color
	s.Set(5, 5, 'Y')
	if c := s.GetCell(5, 5); c.Rune != 'Y' || c.Color != ColorRed {
		t.Errorf("Set should keep color, got %+v", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.SetColored(100, 0, 'A', ColorBlue)
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorYellow)

	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorYellow {
			t.Errorf("DrawTextColored: expected %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenFillRectClips(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(-2, 8, 4, 5), '#', ColorBlue)

	for y := 8; y < 10; y++ {
		for x := 0; x < 2; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorBlue {
				t.Errorf("FillRect: expected blue '#' at (%d, %d), got %+v", x, y, c)
			}
		}
	}
	if s.Get(2, 8) != ' ' {
		t.Error("FillRect should not affect outside area")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() should have 2 lines, got %d", len(lines))
	}
	if lines[0] != "abc" || lines[1] != "de " {
		t.Errorf("String() = %q", s.String())
	}
}
