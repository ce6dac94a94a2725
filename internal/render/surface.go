package render

import "slidegen/internal/layout"

// Align is horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
)

// TextStyle describes how a text box is set.
type TextStyle struct {
	Size    float64 // points
	Bold    bool
	Color   layout.Color
	Align   Align
	Middle  bool    // center vertically in the box
	Spacing float64 // line height as a multiple of Size; 0 means 1.25
}

func (s TextStyle) lineHeight() float64 {
	spacing := s.Spacing
	if spacing == 0 {
		spacing = 1.25
	}
	return s.Size * spacing / 72
}

// Surface is what slides are drawn on. Coordinates are inches on a
// layout.Canvas sized page.
type Surface interface {
	// BeginPage starts a new slide.
	BeginPage()
	// Shape draws one decoration or panel.
	Shape(d layout.Decoration)
	// Text sets wrapped text inside box, dropping lines that do not fit.
	Text(box layout.Rect, text string, style TextStyle)
	// Err reports a drawing failure since the last ClearErr.
	Err() error
	ClearErr()
}
