package layout

import (
	"math/rand"

	"slidegen/internal/logging"
)

// Style is a family of decorative motifs.
type Style string

const (
	GeometricModern Style = "geometric_modern"
	OrganicFlow     Style = "organic_flow"
	MinimalLines    Style = "minimal_lines"
	DynamicShapes   Style = "dynamic_shapes"
	AbstractArt     Style = "abstract_art"
	TechGrid        Style = "tech_grid"
	NatureInspired  Style = "nature_inspired"
)

// Styles lists every style.
var Styles = []Style{GeometricModern, OrganicFlow, MinimalLines, DynamicShapes, AbstractArt, TechGrid, NatureInspired}

var (
	openingStyles = []Style{GeometricModern, AbstractArt, MinimalLines}
	sectionStyles = []Style{MinimalLines, DynamicShapes, OrganicFlow}
)

// styleWindow is how many recent content styles are excluded.
const styleWindow = 3

// Role is a slide's position in the deck.
type Role int

const (
	RoleTitle Role = iota
	RoleSection
	RoleContent
)

func (r Role) String() string {
	switch r {
	case RoleTitle:
		return "title"
	case RoleSection:
		return "section"
	default:
		return "content"
	}
}

// ShapeKind is the outline of a decoration.
type ShapeKind string

const (
	ShapeRect        ShapeKind = "rect"
	ShapeRoundedRect ShapeKind = "rounded_rect"
	ShapeHexagon     ShapeKind = "hexagon"
	ShapeOval        ShapeKind = "oval"
	ShapeDiamond     ShapeKind = "diamond"
	ShapePentagon    ShapeKind = "pentagon"
	ShapeTear        ShapeKind = "tear"
	ShapeLine        ShapeKind = "line"
	ShapeDot         ShapeKind = "dot"
)

// Decoration is one ornamental shape. For lines, Bounds runs from
// (X, Y) to (X+W, Y+H). A nil Fill or Stroke is not drawn.
type Decoration struct {
	Shape       ShapeKind
	Bounds      Rect
	Fill        *Color
	Stroke      *Color
	StrokeWidth float64 // points
	Rotation    float64 // degrees
}

// Pass decorates the slides of one document. It picks the color scheme once
// and remembers which styles recent content slides used.
type Pass struct {
	rng    *rand.Rand
	engine *Engine
	scheme Scheme
	used   []Style
}

// NewPass chooses the scheme for a deck titled title.
func NewPass(rng *rand.Rand, title string) *Pass {
	p := &Pass{rng: rng, engine: NewEngine(rng), scheme: ChooseScheme(rng, title)}
	logging.LayoutDebug("render pass: title=%q scheme=%s", title, p.scheme.Name)
	return p
}

// Scheme returns the deck's palette.
func (p *Pass) Scheme() Scheme { return p.scheme }

// ChooseStyle picks the motif for a slide. The first slide and section
// slides draw from fixed subsets; content slides avoid the last three
// content styles.
func (p *Pass) ChooseStyle(index int, role Role) Style {
	if index == 0 {
		return openingStyles[p.rng.Intn(len(openingStyles))]
	}
	if role == RoleSection {
		return sectionStyles[p.rng.Intn(len(sectionStyles))]
	}

	recent := p.used
	if len(recent) > styleWindow {
		recent = recent[len(recent)-styleWindow:]
	}
	var available []Style
	for _, s := range Styles {
		if !containsStyle(recent, s) {
			available = append(available, s)
		}
	}
	if len(available) == 0 {
		available = Styles
		p.used = nil
	}

	chosen := available[p.rng.Intn(len(available))]
	p.used = append(p.used, chosen)
	return chosen
}

func containsStyle(list []Style, s Style) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Decorate chooses a style for the slide and generates its decorations
// around the occupied text rects.
func (p *Pass) Decorate(index int, role Role, occupied []Rect) (Style, []Decoration) {
	style := p.ChooseStyle(index, role)
	var decs []Decoration
	switch style {
	case GeometricModern:
		decs = p.geometricModern(occupied)
	case OrganicFlow:
		decs = p.organicFlow(occupied)
	case MinimalLines:
		decs = p.minimalLines(occupied)
	case DynamicShapes:
		decs = p.dynamicShapes(occupied)
	case AbstractArt:
		decs = p.abstractArt(occupied)
	case TechGrid:
		decs = p.techGrid(occupied)
	case NatureInspired:
		decs = p.natureInspired(occupied)
	}
	logging.LayoutDebug("slide %d (%s): style=%s decorations=%d", index, role, style, len(decs))
	return style, decs
}

// Background returns the backdrop for a slide, or nil. Title slides always
// get a full-bleed background; other slides get a subtle panel 30% of the
// time.
func (p *Pass) Background(role Role) *Decoration {
	if role == RoleTitle {
		bg := p.scheme.Background
		return &Decoration{Shape: ShapeRect, Bounds: Canvas, Fill: &bg}
	}
	if p.rng.Float64() < 0.3 {
		fill := rgb(250, 250, 252)
		stroke := p.scheme.Secondary
		return &Decoration{
			Shape:       ShapeRoundedRect,
			Bounds:      Rect{X: 0.3, Y: 1.5, W: 9.4, H: 5.5},
			Fill:        &fill,
			Stroke:      &stroke,
			StrokeWidth: 1,
		}
	}
	return nil
}

func colorPtr(c Color) *Color { return &c }

func (p *Pass) pick(kinds ...ShapeKind) ShapeKind {
	return kinds[p.rng.Intn(len(kinds))]
}

func (p *Pass) geometricModern(occupied []Rect) []Decoration {
	rects := p.engine.Place(occupied, ShapeRequest{
		Count: IntRange{2, 4}, Width: FloatRange{0.6, 1.5}, Height: FloatRange{0.6, 1.5},
	})
	out := make([]Decoration, 0, len(rects))
	for i, r := range rects {
		d := Decoration{Shape: p.pick(ShapeRect, ShapeRoundedRect, ShapeHexagon), Bounds: r}
		if i%2 == 0 {
			d.Fill = colorPtr(p.scheme.Primary)
		} else {
			d.Stroke = colorPtr(p.scheme.Secondary)
			d.StrokeWidth = 2
		}
		d.Rotation = float64(randInt(p.rng, -20, 20))
		out = append(out, d)
	}
	return out
}

func (p *Pass) organicFlow(occupied []Rect) []Decoration {
	rects := p.engine.Place(occupied, ShapeRequest{
		Count: IntRange{2, 3}, Width: FloatRange{0.8, 2.0}, Height: FloatRange{0.4, 1.5},
	})
	out := make([]Decoration, 0, len(rects))
	for _, r := range rects {
		base := p.scheme.Secondary
		fill := Color{R: p.jitter(base.R), G: p.jitter(base.G), B: p.jitter(base.B)}
		out = append(out, Decoration{
			Shape:    ShapeOval,
			Bounds:   r,
			Fill:     &fill,
			Rotation: float64(randInt(p.rng, -30, 30)),
		})
	}
	return out
}

// jitter shifts a channel by up to ±30, clamped to [50, 255].
func (p *Pass) jitter(c uint8) uint8 {
	v := int(c) + randInt(p.rng, -30, 30)
	if v < 50 {
		v = 50
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func (p *Pass) minimalLines(occupied []Rect) []Decoration {
	zones := SafeZones(occupied, false)
	n := randInt(p.rng, 3, 5)
	out := make([]Decoration, 0, n)
	for i := 0; i < n; i++ {
		z := zones[p.rng.Intn(len(zones))]
		var x1, y1, x2, y2 float64
		if p.rng.Intn(2) == 0 {
			x1, y1 = z.X, uniform(p.rng, z.Y, z.Bottom())
			x2, y2 = z.Right(), uniform(p.rng, z.Y, z.Bottom())
		} else {
			x1, y1 = uniform(p.rng, z.X, z.Right()), z.Y
			x2, y2 = uniform(p.rng, z.X, z.Right()), z.Bottom()
		}
		out = append(out, Decoration{
			Shape:       ShapeLine,
			Bounds:      Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1},
			Stroke:      colorPtr(p.scheme.Primary),
			StrokeWidth: float64(randInt(p.rng, 1, 3)),
		})
	}
	return out
}

func (p *Pass) dynamicShapes(occupied []Rect) []Decoration {
	rects := p.engine.Place(occupied, ShapeRequest{
		Count: IntRange{2, 4}, Width: FloatRange{0.5, 1.2}, Height: FloatRange{0.5, 1.2},
	})
	out := make([]Decoration, 0, len(rects))
	for i, r := range rects {
		d := Decoration{Shape: p.pick(ShapeDiamond, ShapePentagon, ShapeHexagon, ShapeRoundedRect), Bounds: r}
		if i%3 == 0 {
			d.Fill = colorPtr(p.scheme.Accent)
		} else {
			d.Stroke = colorPtr(p.scheme.Primary)
			d.StrokeWidth = 1
		}
		d.Rotation = float64(randInt(p.rng, 0, 180))
		out = append(out, d)
	}
	return out
}

func (p *Pass) abstractArt(occupied []Rect) []Decoration {
	rects := p.engine.Place(occupied, ShapeRequest{
		Count: IntRange{3, 5}, Width: FloatRange{0.4, 1.0}, Height: FloatRange{0.4, 1.0},
	})
	palette := []Color{p.scheme.Primary, p.scheme.Secondary, p.scheme.Accent}
	out := make([]Decoration, 0, len(rects))
	for _, r := range rects {
		out = append(out, Decoration{
			Shape:    p.pick(ShapeOval, ShapeRoundedRect, ShapeDiamond),
			Bounds:   r,
			Fill:     colorPtr(palette[p.rng.Intn(len(palette))]),
			Rotation: float64(randInt(p.rng, 0, 180)),
		})
	}
	return out
}

const (
	gridStep   = 0.3
	dotSize    = 0.05
	dotDensity = 0.1
)

func (p *Pass) techGrid(occupied []Rect) []Decoration {
	var out []Decoration
	w, h := Canvas.W, Canvas.H
	cols := int(w / gridStep)
	rows := int(h / gridStep)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			if p.rng.Float64() >= dotDensity {
				continue
			}
			r := Rect{X: float64(x) * gridStep, Y: float64(y) * gridStep, W: dotSize, H: dotSize}
			if overlapsAny(r, occupied) {
				continue
			}
			out = append(out, Decoration{Shape: ShapeDot, Bounds: r, Fill: colorPtr(p.scheme.Secondary)})
		}
	}
	return out
}

var greens = []Color{rgb(34, 197, 94), rgb(22, 163, 74), rgb(21, 128, 61), rgb(134, 239, 172)}

func (p *Pass) natureInspired(occupied []Rect) []Decoration {
	rects := p.engine.Place(occupied, ShapeRequest{
		Count: IntRange{2, 4}, Width: FloatRange{0.5, 1.0}, Height: FloatRange{0.6, 1.5},
	})
	out := make([]Decoration, 0, len(rects))
	for _, r := range rects {
		out = append(out, Decoration{
			Shape:    p.pick(ShapeOval, ShapeRoundedRect, ShapeTear),
			Bounds:   r,
			Fill:     colorPtr(greens[p.rng.Intn(len(greens))]),
			Rotation: float64(randInt(p.rng, -20, 20)),
		})
	}
	return out
}
