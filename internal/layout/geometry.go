// Package layout places decorative shapes on a slide canvas without
// covering text, and picks the colors and motifs a deck is drawn with.
//
// All randomness comes from an injected *rand.Rand, so a fixed seed
// reproduces a deck exactly.
package layout

import "math/rand"

// Canvas dimensions in inches.
const (
	CanvasWidth  = 10.0
	CanvasHeight = 7.5
)

// Canvas is the full slide area.
var Canvas = Rect{X: 0, Y: 0, W: CanvasWidth, H: CanvasHeight}

// Rect is an axis-aligned rectangle in inches.
type Rect struct {
	X, Y, W, H float64
}

// RectFromRange builds a rect from x and y extents.
func RectFromRange(xMin, xMax, yMin, yMax float64) Rect {
	return Rect{X: xMin, Y: yMin, W: xMax - xMin, H: yMax - yMin}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Expand grows the rect by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Intersects reports whether the rects overlap. Touching edges count.
func (r Rect) Intersects(o Rect) bool {
	return !(r.Right() < o.X || r.X > o.Right() || r.Bottom() < o.Y || r.Y > o.Bottom())
}

// Within reports whether r lies entirely inside o.
func (r Rect) Within(o Rect) bool {
	const eps = 1e-9
	return r.X >= o.X-eps && r.Y >= o.Y-eps && r.Right() <= o.Right()+eps && r.Bottom() <= o.Bottom()+eps
}

// FloatRange is an inclusive [Min, Max] interval.
type FloatRange struct {
	Min, Max float64
}

func (f FloatRange) sample(rng *rand.Rand) float64 {
	return uniform(rng, f.Min, f.Max)
}

// IntRange is an inclusive [Min, Max] interval.
type IntRange struct {
	Min, Max int
}

func (r IntRange) sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// uniform works for inverted bounds too, like Python's random.uniform.
func uniform(rng *rand.Rand, a, b float64) float64 {
	return a + (b-a)*rng.Float64()
}

func randInt(rng *rand.Rand, a, b int) int {
	return IntRange{Min: a, Max: b}.sample(rng)
}
