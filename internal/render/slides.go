package render

import (
	"fmt"
	"math"
	"strings"

	"slidegen/internal/classify"
	"slidegen/internal/layout"
	"slidegen/internal/model"
)

// Table slides show at most this many rows (header included) and columns.
const (
	maxTableRows = 6
	maxTableCols = 5
)

// Text regions in inches. Decorations are placed around the regions a slide
// occupies.
var (
	titleBox    = layout.Rect{X: 0.5, Y: 2.2, W: 9.0, H: 1.6}
	subtitleBox = layout.Rect{X: 1.0, Y: 4.0, W: 8.0, H: 1.4}
	sectionBox  = layout.Rect{X: 1.0, Y: 3.0, W: 8.0, H: 1.5}

	contentPanel = layout.Rect{X: 0.3, Y: 0.3, W: 7.0, H: 6.9}
	headingBox   = layout.Rect{X: 0.5, Y: 0.4, W: 6.6, H: 1.0}
	bodyBox      = layout.Rect{X: 0.5, Y: 1.6, W: 6.6, H: 5.4}

	tableHeading = layout.Rect{X: 0.5, Y: 0.3, W: 9.0, H: 1.2}
	tableBox     = layout.Rect{X: 0.5, Y: 1.8, W: 9.0, H: 5.0}
	numberBox    = layout.Rect{X: 8.5, Y: 6.9, W: 1.3, H: 0.4}

	errorBox = layout.Rect{X: 1.0, Y: 3.0, W: 8.0, H: 2.0}

	// ContentRegions are the text regions of a content slide.
	ContentRegions = []layout.Rect{headingBox, bodyBox}
)

var (
	white      = layout.Color{R: 255, G: 255, B: 255}
	panelFill  = layout.Color{R: 248, G: 250, B: 252}
	stepFill   = layout.Color{R: 241, G: 245, B: 249}
	errorColor = layout.Color{R: 200, G: 50, B: 50}
)

func (d *deck) shapes(decs []layout.Decoration) {
	for _, dec := range decs {
		d.surface.Shape(dec)
	}
}

func (d *deck) background(role layout.Role) {
	if bg := d.pass.Background(role); bg != nil {
		d.surface.Shape(*bg)
	}
}

func (d *deck) panel(r layout.Rect, fill layout.Color, stroke *layout.Color, width float64) {
	d.surface.Shape(layout.Decoration{
		Shape:       layout.ShapeRoundedRect,
		Bounds:      r,
		Fill:        &fill,
		Stroke:      stroke,
		StrokeWidth: width,
	})
}

func (d *deck) titleSlide(p *model.Presentation) string {
	sc := d.pass.Scheme()
	d.background(layout.RoleTitle)
	_, decs := d.pass.Decorate(d.index, layout.RoleTitle, []layout.Rect{titleBox, subtitleBox})
	d.shapes(decs)

	subtitle := p.Summary
	if strings.TrimSpace(subtitle) == "" {
		subtitle = d.cat.T("created_with_ai")
	}
	d.surface.Text(titleBox, p.DisplayTitle(), TextStyle{Size: 40, Bold: true, Color: sc.Primary, Align: AlignCenter, Middle: true})
	d.surface.Text(subtitleBox, subtitle, TextStyle{Size: 20, Color: sc.Text, Align: AlignCenter})
	return "title"
}

func (d *deck) sectionSlide(title string) string {
	sc := d.pass.Scheme()
	d.background(layout.RoleSection)
	_, decs := d.pass.Decorate(d.index, layout.RoleSection, []layout.Rect{sectionBox})
	d.shapes(decs)
	d.surface.Text(sectionBox, title, TextStyle{Size: 36, Bold: true, Color: sc.Primary, Align: AlignCenter, Middle: true})
	return "section"
}

func (d *deck) contentSlide(s model.Slide) string {
	content, table, isTable, msg := d.fixContent(s)
	if msg != "" {
		d.errorSlide(s.Title, msg)
		return "error"
	}
	if isTable {
		d.tableSlide(s.Title, table)
		return string(classify.Table)
	}

	kind := classify.Classify(content)
	text := Truncate(s.Title+"\n\n"+content, Budget(kind))
	heading, body, _ := strings.Cut(text, "\n")
	body = strings.TrimSpace(body)

	sc := d.pass.Scheme()
	d.background(layout.RoleContent)
	d.panel(contentPanel, panelFill, &sc.Secondary, 2)
	_, decs := d.pass.Decorate(d.index, layout.RoleContent, ContentRegions)
	d.shapes(decs)
	d.surface.Text(headingBox, heading, TextStyle{Size: 24, Bold: true, Color: sc.Primary, Middle: true})

	switch kind {
	case classify.List:
		d.listBody(body)
	case classify.Comparison:
		d.comparisonBody(body)
	case classify.Highlight:
		d.highlightBody(body)
	case classify.Process:
		d.processBody(body)
	default:
		d.plainBody(body)
	}
	return string(kind)
}

func (d *deck) plainBody(body string) {
	d.surface.Text(bodyBox, body, TextStyle{Size: 16, Color: d.pass.Scheme().Text, Spacing: 1.3})
}

func (d *deck) listBody(body string) {
	items := classify.ListItems(body)
	if len(items) == 0 {
		d.plainBody(body)
		return
	}
	sc := d.pass.Scheme()
	rowH := math.Min(0.9, bodyBox.H/float64(len(items)))
	for i, item := range items {
		y := bodyBox.Y + float64(i)*rowH
		d.surface.Shape(layout.Decoration{
			Shape:  layout.ShapeOval,
			Bounds: layout.Rect{X: bodyBox.X, Y: y + 0.1, W: 0.12, H: 0.12},
			Fill:   &sc.Accent,
		})
		box := layout.Rect{X: bodyBox.X + 0.3, Y: y, W: bodyBox.W - 0.3, H: rowH}
		d.surface.Text(box, item, TextStyle{Size: 16, Color: sc.Text, Spacing: 1.2})
	}
}

func (d *deck) comparisonBody(body string) {
	left, right := classify.SplitComparison(body)
	sc := d.pass.Scheme()
	const gap = 0.2
	w := (bodyBox.W - gap) / 2
	lbox := layout.Rect{X: bodyBox.X, Y: bodyBox.Y, W: w, H: bodyBox.H}
	rbox := layout.Rect{X: bodyBox.X + w + gap, Y: bodyBox.Y, W: w, H: bodyBox.H}

	d.panel(lbox, white, &sc.Primary, 1.5)
	d.panel(rbox, white, &sc.Secondary, 1.5)
	d.surface.Text(lbox.Expand(-0.15), left, TextStyle{Size: 15, Color: sc.Primary, Spacing: 1.2})
	d.surface.Text(rbox.Expand(-0.15), right, TextStyle{Size: 15, Color: sc.Text, Spacing: 1.2})
}

func (d *deck) highlightBody(body string) {
	sc := d.pass.Scheme()
	box := layout.Rect{X: bodyBox.X, Y: bodyBox.Y + 0.3, W: bodyBox.W, H: 3.4}
	d.panel(box, sc.Accent, nil, 0)
	d.surface.Text(box.Expand(-0.25), body, TextStyle{Size: 20, Bold: true, Color: white, Align: AlignCenter, Middle: true})
}

func (d *deck) processBody(body string) {
	steps := classify.ProcessSteps(body)
	if len(steps) == 0 {
		d.plainBody(body)
		return
	}
	sc := d.pass.Scheme()
	const gap = 0.15
	h := math.Min(1.0, (bodyBox.H-gap*float64(len(steps)-1))/float64(len(steps)))
	for i, step := range steps {
		box := layout.Rect{X: bodyBox.X, Y: bodyBox.Y + float64(i)*(h+gap), W: bodyBox.W, H: h}
		style := TextStyle{Size: 14, Bold: true, Color: sc.Text, Align: AlignCenter, Middle: true}
		if i == 0 {
			d.panel(box, sc.Primary, nil, 0)
			style.Color = white
		} else {
			d.panel(box, stepFill, &sc.Secondary, 1)
		}
		d.surface.Text(box.Expand(-0.1), fmt.Sprintf("%d. %s", i+1, step), style)
	}
}

func (d *deck) tableSlide(title string, t classify.TableData) {
	sc := d.pass.Scheme()
	d.background(layout.RoleContent)
	d.surface.Text(tableHeading, title, TextStyle{Size: 28, Bold: true, Color: sc.Primary, Middle: true})

	cols := t.Cols()
	rows := append([][]string{t.Header}, t.Rows...)
	cellW := tableBox.W / float64(cols)
	cellH := math.Min(0.8, tableBox.H/float64(len(rows)))
	for i, row := range rows {
		for j, cell := range row {
			box := layout.Rect{X: tableBox.X + float64(j)*cellW, Y: tableBox.Y + float64(i)*cellH, W: cellW, H: cellH}
			style := TextStyle{Size: 12, Color: sc.Text, Align: AlignCenter, Middle: true}
			dec := layout.Decoration{Shape: layout.ShapeRect, Bounds: box, Stroke: &sc.Secondary, StrokeWidth: 0.75}
			if i == 0 {
				dec.Fill = &sc.Secondary
				style.Size, style.Bold, style.Color = 14, true, sc.Primary
			}
			d.surface.Shape(dec)
			d.surface.Text(box.Expand(-0.05), cell, style)
		}
	}
	d.surface.Text(numberBox, fmt.Sprint(d.index+1), TextStyle{Size: 12, Color: sc.Text, Align: AlignCenter})
}

// errorSlide covers the page and explains why the slide could not be drawn.
func (d *deck) errorSlide(title, msg string) {
	sc := d.pass.Scheme()
	d.surface.Shape(layout.Decoration{Shape: layout.ShapeRect, Bounds: layout.Canvas, Fill: &white})
	d.surface.Text(tableHeading, title, TextStyle{Size: 28, Bold: true, Color: sc.Primary, Middle: true})
	d.surface.Text(errorBox, msg, TextStyle{Size: 16, Bold: true, Color: errorColor, Align: AlignCenter, Middle: true})
}
