package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Text boxes used by content slides: title strip and body panel.
var contentText = []Rect{
	{X: 0.5, Y: 0.4, W: 6.6, H: 1.0},
	{X: 0.5, Y: 1.6, W: 6.6, H: 5.4},
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 1, H: 1}
	assert.True(t, a.Intersects(Rect{X: 0.5, Y: 0.5, W: 1, H: 1}))
	assert.True(t, a.Intersects(Rect{X: 1, Y: 0, W: 1, H: 1}), "touching edges overlap")
	assert.False(t, a.Intersects(Rect{X: 1.01, Y: 0, W: 1, H: 1}))
	assert.True(t, a.Within(Canvas))
	assert.False(t, Rect{X: 9.5, Y: 0, W: 1, H: 1}.Within(Canvas))
	assert.Equal(t, Rect{X: -0.4, Y: -0.4, W: 1.8, H: 1.8}, a.Expand(0.4))
}

func TestSafeZones(t *testing.T) {
	assert.Len(t, SafeZones(nil, false), 5)

	zones := SafeZones(contentText, false)
	assert.Equal(t, []Rect{
		RectFromRange(7.6, 9.8, 0.2, 2.5),
		RectFromRange(8.0, 9.8, 2.8, 4.5),
		RectFromRange(7.6, 9.8, 5.0, 7.2),
	}, zones)

	// a zone within Buffer of text is dropped even without touching it
	near := []Rect{{X: 0.5, Y: 0.4, W: 6.9, H: 6.6}}
	assert.Equal(t, []Rect{RectFromRange(8.0, 9.8, 2.8, 4.5)}, SafeZones(near, false))

	everything := []Rect{Canvas}
	assert.Equal(t, []Rect{safeZone}, SafeZones(everything, false))

	assert.Equal(t, []Rect{backgroundZone}, SafeZones(everything, true))
}

func TestPlace_StaysOnCanvasAndClearOfText(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		e := NewEngine(rand.New(rand.NewSource(seed)))
		rects := e.Place(contentText, ShapeRequest{
			Count: IntRange{2, 4}, Width: FloatRange{0.6, 1.5}, Height: FloatRange{0.6, 1.5},
		})
		require.GreaterOrEqual(t, len(rects), 2)
		require.LessOrEqual(t, len(rects), 4)
		for _, r := range rects {
			assert.True(t, r.Within(Canvas), "seed %d: %+v off canvas", seed, r)
			for _, txt := range contentText {
				assert.False(t, r.Expand(Buffer).Intersects(txt), "seed %d: %+v overlaps text", seed, r)
			}
		}
	}
}

func TestPlace_NoPrematureFallback(t *testing.T) {
	// With the whole right side free a valid spot always exists, so the
	// engine must find it rather than fall back.
	e := NewEngine(rand.New(rand.NewSource(7)))
	zones := SafeZones(contentText, false)
	for i := 0; i < 200; i++ {
		_, ok := e.placeOne(contentText, zones, FloatRange{0.5, 1.0}, FloatRange{0.5, 1.0})
		require.True(t, ok, "iteration %d fell back", i)
	}
}

func TestPlace_FallbackIsClampedOrigin(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))
	blocked := []Rect{Canvas}
	zones := SafeZones(blocked, false)
	r, ok := e.placeOne(blocked, zones, FloatRange{2.0, 2.0}, FloatRange{1.0, 1.0})
	assert.False(t, ok)
	assert.Equal(t, CanvasWidth-2.0, r.X)
	assert.Equal(t, 6.0, r.Y)
	assert.True(t, r.Within(Canvas))
}

func TestPlace_Deterministic(t *testing.T) {
	req := ShapeRequest{Count: IntRange{3, 5}, Width: FloatRange{0.4, 1.0}, Height: FloatRange{0.4, 1.0}}
	a := NewEngine(rand.New(rand.NewSource(42))).Place(contentText, req)
	b := NewEngine(rand.New(rand.NewSource(42))).Place(contentText, req)
	assert.Equal(t, a, b)
}
