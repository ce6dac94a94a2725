package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"slidegen/internal/layout"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const fontFamily = "body"

// PDFSurface draws slides into a PDF document, one page per slide.
type PDFSurface struct {
	pdf *fpdf.Fpdf
}

// FontOptions selects TTF files for slide text. Empty paths fall back to
// the embedded Go fonts, which cover Latin and Cyrillic.
type FontOptions struct {
	Regular string
	Bold    string
}

// NewPDFSurface creates an empty landscape document sized to the layout canvas.
func NewPDFSurface(fonts FontOptions, title string) (*PDFSurface, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "in",
		// Landscape swaps width and height.
		Size: fpdf.SizeType{Wd: layout.CanvasHeight, Ht: layout.CanvasWidth},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCreator("slidegen", true)
	pdf.SetTitle(title, true)
	pdf.SetCreationDate(time.Now())

	s := &PDFSurface{pdf: pdf}
	if err := s.loadFonts(fonts); err != nil {
		return nil, err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to initialize PDF: %w", err)
	}
	return s, nil
}

func (s *PDFSurface) loadFonts(fonts FontOptions) error {
	regular, bold := goregular.TTF, gobold.TTF
	if fonts.Regular != "" {
		data, err := os.ReadFile(fonts.Regular)
		if err != nil {
			return fmt.Errorf("failed to read font %s: %w", fonts.Regular, err)
		}
		// a custom regular face without a bold file is used for both
		regular, bold = data, data
	}
	if fonts.Bold != "" {
		data, err := os.ReadFile(fonts.Bold)
		if err != nil {
			return fmt.Errorf("failed to read bold font %s: %w", fonts.Bold, err)
		}
		bold = data
	}
	s.pdf.AddUTF8FontFromBytes(fontFamily, "", regular)
	s.pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)
	return nil
}

func (s *PDFSurface) BeginPage() {
	s.pdf.AddPage()
}

func (s *PDFSurface) Shape(d layout.Decoration) {
	style := ""
	if d.Fill != nil {
		s.pdf.SetFillColor(int(d.Fill.R), int(d.Fill.G), int(d.Fill.B))
		style += "F"
	}
	if d.Stroke != nil {
		s.pdf.SetDrawColor(int(d.Stroke.R), int(d.Stroke.G), int(d.Stroke.B))
		s.pdf.SetLineWidth(math.Max(d.StrokeWidth, 0.5) / 72)
		style += "D"
	}
	if style == "" {
		return
	}

	b := d.Bounds
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	if d.Rotation != 0 {
		s.pdf.TransformBegin()
		s.pdf.TransformRotate(-d.Rotation, cx, cy)
		defer s.pdf.TransformEnd()
	}

	switch d.Shape {
	case layout.ShapeLine:
		s.pdf.Line(b.X, b.Y, b.Right(), b.Bottom())
	case layout.ShapeRoundedRect:
		s.pdf.RoundedRect(b.X, b.Y, b.W, b.H, math.Min(b.W, b.H)*0.15, "1234", style)
	case layout.ShapeOval, layout.ShapeDot:
		s.pdf.Ellipse(cx, cy, b.W/2, b.H/2, 0, style)
	case layout.ShapeTear:
		s.pdf.Polygon(tearPoints(b), style)
	case layout.ShapeDiamond:
		s.pdf.Polygon(regularPolygon(b, 4, 0), style)
	case layout.ShapePentagon:
		s.pdf.Polygon(regularPolygon(b, 5, -90), style)
	case layout.ShapeHexagon:
		s.pdf.Polygon(regularPolygon(b, 6, 0), style)
	default:
		s.pdf.Rect(b.X, b.Y, b.W, b.H, style)
	}
}

// regularPolygon inscribes an n-gon in b, starting at angle start degrees.
func regularPolygon(b layout.Rect, n int, start float64) []fpdf.PointType {
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	pts := make([]fpdf.PointType, n)
	for i := range pts {
		a := (start + float64(i)*360/float64(n)) * math.Pi / 180
		pts[i] = fpdf.PointType{X: cx + b.W/2*math.Cos(a), Y: cy + b.H/2*math.Sin(a)}
	}
	return pts
}

// tearPoints approximates a leaf: pointed at the top, round at the bottom.
func tearPoints(b layout.Rect) []fpdf.PointType {
	cx := b.X + b.W/2
	r := b.W / 2
	cy := b.Bottom() - r
	pts := []fpdf.PointType{{X: cx, Y: b.Y}}
	for i := 0; i <= 12; i++ {
		a := math.Pi * float64(i) / 12
		pts = append(pts, fpdf.PointType{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}

func (s *PDFSurface) Text(box layout.Rect, text string, style TextStyle) {
	if style.Size <= 0 {
		style.Size = 16
	}
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	s.pdf.SetFont(fontFamily, fontStyle, style.Size)
	s.pdf.SetTextColor(int(style.Color.R), int(style.Color.G), int(style.Color.B))

	lh := style.lineHeight()
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimRight(bmpOnly(para), " ")
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, s.pdf.SplitText(para, box.W)...)
	}
	if fit := int(box.H / lh); len(lines) > fit {
		lines = lines[:fit]
	}

	y := box.Y
	if style.Middle {
		y += (box.H - float64(len(lines))*lh) / 2
	}
	align := string(style.Align)
	if align == "" {
		align = string(AlignLeft)
	}
	for _, line := range lines {
		s.pdf.SetXY(box.X, y)
		s.pdf.CellFormat(box.W, lh, line, "", 0, align, false, 0, "")
		y += lh
	}
}

// bmpOnly drops runes outside the Basic Multilingual Plane, such as emoji;
// fpdf keeps glyph widths for the BMP only.
func bmpOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return -1
		}
		return r
	}, s)
}

func (s *PDFSurface) Err() error { return s.pdf.Error() }

func (s *PDFSurface) ClearErr() { s.pdf.ClearError() }

// Pages returns how many slides have been started.
func (s *PDFSurface) Pages() int { return s.pdf.PageCount() }

// Output writes the finished document.
func (s *PDFSurface) Output(w io.Writer) error {
	return s.pdf.Output(w)
}
