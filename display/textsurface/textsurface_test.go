package textsurface

import (
	"image/color"
	"testing"
)

// memDisplay is an in-memory Displayer.
type memDisplay struct {
	w, h     int16
	px       map[[2]int16]color.RGBA
	displays int
}

func newMemDisplay(w, h int16) *memDisplay {
	return &memDisplay{w: w, h: h, px: map[[2]int16]color.RGBA{}}
}

func (d *memDisplay) Size() (int16, int16) { return d.w, d.h }
func (d *memDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	d.px[[2]int16{x, y}] = c
}
func (d *memDisplay) Display() error {
	d.displays++
	return nil
}

func TestTextGridSize(t *testing.T) {
	d := newMemDisplay(128, 64)
	s, err := New(d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cols, rows := s.Size()
	if cols < 15 || rows < 4 {
		t.Fatalf("unusably small text grid: %dx%d", cols, rows)
	}
}

func TestSetLineAndFlush(t *testing.T) {
	d := newMemDisplay(128, 64)
	s, err := New(d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SetLine(0, "hello"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if d.displays != 1 {
		t.Errorf("Display called %d times, want 1", d.displays)
	}
	if len(d.px) == 0 {
		t.Error("text rendering should have touched pixels")
	}
}

func TestFillRectClips(t *testing.T) {
	d := newMemDisplay(128, 64)
	s, err := New(d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	white := color.RGBA{255, 255, 255, 255}
	s.FillRect(-2, -2, 4, 4, white)
	s.FillRect(126, 62, 10, 10, white)
	for k := range d.px {
		if k[0] < 0 || k[1] < 0 || k[0] >= 128 || k[1] >= 64 {
			t.Fatalf("pixel out of bounds: %v", k)
		}
	}
	if _, ok := d.px[[2]int16{0, 0}]; !ok {
		t.Error("clipped rect should still paint inside the panel")
	}
	if _, ok := d.px[[2]int16{127, 63}]; !ok {
		t.Error("bottom-right corner should be painted")
	}
}
