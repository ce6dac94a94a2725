package layout

import (
	"math"
	"math/rand"
)

const (
	// Buffer is the clearance kept between a decoration and any text.
	Buffer = 0.4
	// MaxAttempts bounds random sampling for one shape.
	MaxAttempts = 100
	minZoneSide = 0.5
)

// The right-hand zones start just past a 7.1in text column plus Buffer.
var candidateZones = []Rect{
	RectFromRange(7.6, 9.8, 0.2, 2.5),
	RectFromRange(8.0, 9.8, 2.8, 4.5),
	RectFromRange(7.6, 9.8, 5.0, 7.2),
	RectFromRange(0.2, 2.0, 0.2, 1.5),
	RectFromRange(0.2, 1.8, 6.5, 7.3),
}

var (
	safeZone       = RectFromRange(8.5, 9.8, 6.0, 7.2)
	backgroundZone = RectFromRange(0.1, 9.9, 0.1, 7.4)
)

// CandidateZones returns a copy of the fixed decoration zones.
func CandidateZones() []Rect {
	return append([]Rect(nil), candidateZones...)
}

// SafeZones returns the candidate zones that stay Buffer clear of every
// occupied rect and are wider and taller than half an inch. With nothing
// left it returns the bottom-right safe zone. Background requests always
// get the near-full canvas zone.
func SafeZones(occupied []Rect, background bool) []Rect {
	if background {
		return []Rect{backgroundZone}
	}

	buffered := expandAll(occupied, Buffer)
	var zones []Rect
	for _, z := range candidateZones {
		if z.W <= minZoneSide || z.H <= minZoneSide {
			continue
		}
		if !overlapsAny(z, buffered) {
			zones = append(zones, z)
		}
	}
	if len(zones) == 0 {
		zones = []Rect{safeZone}
	}
	return zones
}

// ShapeRequest asks for Count shapes with sizes drawn from Width and Height.
type ShapeRequest struct {
	Count      IntRange
	Width      FloatRange
	Height     FloatRange
	Background bool
}

// Engine places shapes using its random source.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine drawing from rng.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Place returns one rect per requested shape. Each shape gets up to
// MaxAttempts random tries; a try is accepted when the shape lies on the
// canvas and its buffered rect clears every occupied rect. When all tries
// fail the shape goes to the first zone's origin.
func (e *Engine) Place(occupied []Rect, req ShapeRequest) []Rect {
	zones := SafeZones(occupied, req.Background)
	n := req.Count.sample(e.rng)
	out := make([]Rect, 0, n)
	for i := 0; i < n; i++ {
		r, _ := e.placeOne(occupied, zones, req.Width, req.Height)
		out = append(out, r)
	}
	return out
}

// placeOne reports false when it had to fall back.
func (e *Engine) placeOne(occupied, zones []Rect, width, height FloatRange) (Rect, bool) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		w := width.sample(e.rng)
		h := height.sample(e.rng)
		zone := zones[e.rng.Intn(len(zones))]
		x := uniform(e.rng, zone.X, zone.Right()-w)
		y := uniform(e.rng, zone.Y, zone.Bottom()-h)

		r := Rect{X: x, Y: y, W: w, H: h}
		if !r.Within(Canvas) {
			continue
		}
		if overlapsAny(r.Expand(Buffer), occupied) {
			continue
		}
		return r, true
	}

	w := width.sample(e.rng)
	h := height.sample(e.rng)
	first := zones[0]
	x := math.Max(0, math.Min(first.X, CanvasWidth-w))
	y := math.Max(0, math.Min(first.Y, CanvasHeight-h))
	return Rect{X: x, Y: y, W: w, H: h}, false
}

func expandAll(rects []Rect, margin float64) []Rect {
	out := make([]Rect, len(rects))
	for i, r := range rects {
		out[i] = r.Expand(margin)
	}
	return out
}

func overlapsAny(r Rect, occupied []Rect) bool {
	for _, o := range occupied {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
