// Package textsurface adapts any drivers.Displayer into the text-row/rect
// drawing surface the UI screens render on. Text goes through a textbuf
// buffer; gauge rectangles are painted straight into the pixel buffer.
package textsurface

import (
	"image/color"
	"strings"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers"
)

type Surface struct {
	disp drivers.Displayer
	text *textbuf.Buffer
}

// New wraps disp. The display must be large enough for a usable text grid.
func New(disp drivers.Displayer) (*Surface, error) {
	buf, err := textbuf.New(disp, textbuf.FontSize6x8)
	if err != nil {
		return nil, err
	}
	return &Surface{disp: disp, text: buf}, nil
}

// Size returns the text grid dimensions in characters (cols, rows).
func (s *Surface) Size() (int16, int16) { return s.text.Size() }

// SetLine replaces one text row.
func (s *Surface) SetLine(row int16, segments ...string) error {
	return s.text.SetLine(row, strings.Join(segments, ""))
}

// SetLineInverse replaces one text row in inverse video.
func (s *Surface) SetLineInverse(row int16, text string) error {
	return s.text.SetLineInverse(row, text)
}

// FillRect paints a filled rectangle in pixel coordinates, clipped to the
// display.
func (s *Surface) FillRect(x, y, w, h int16, c color.RGBA) {
	dw, dh := s.disp.Size()
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	for px := x; px < x+w && px < dw; px++ {
		for py := y; py < y+h && py < dh; py++ {
			s.disp.SetPixel(px, py, c)
		}
	}
}

// Clear wipes the text buffer.
func (s *Surface) Clear() { s.text.Clear() }

// Flush pushes the composed frame to the panel.
func (s *Surface) Flush() error { return s.text.Display() }
