package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPass(seed int64, title string) *Pass {
	return NewPass(rand.New(rand.NewSource(seed)), title)
}

func TestPass_SchemeIsCachedForDeck(t *testing.T) {
	p := newPass(1, "Digital Banking")
	first := p.Scheme()
	for i := 0; i < 10; i++ {
		p.Decorate(i, RoleContent, contentText)
		assert.Equal(t, first, p.Scheme())
	}
}

func TestPass_StyleSubsets(t *testing.T) {
	p := newPass(5, "x")
	for i := 0; i < 50; i++ {
		assert.Contains(t, openingStyles, p.ChooseStyle(0, RoleTitle))
		assert.Contains(t, sectionStyles, p.ChooseStyle(3, RoleSection))
	}
}

func TestPass_ContentStylesAvoidRecentWindow(t *testing.T) {
	p := newPass(11, "x")
	var history []Style
	for i := 1; i <= 40; i++ {
		s := p.ChooseStyle(i, RoleContent)
		start := len(history) - styleWindow
		if start < 0 {
			start = 0
		}
		assert.NotContains(t, history[start:], s, "slide %d repeated a recent style", i)
		history = append(history, s)
	}
}

func TestPass_DecorationsRespectText(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		p := newPass(seed, "Marathon Training")
		for i := 0; i < 8; i++ {
			role := RoleContent
			if i == 0 {
				role = RoleTitle
			}
			style, decs := p.Decorate(i, role, contentText)
			require.NotEmpty(t, style)
			for _, d := range decs {
				if d.Shape == ShapeLine || d.Shape == ShapeDot {
					continue
				}
				assert.True(t, d.Bounds.Within(Canvas), "seed %d style %s: %+v", seed, style, d.Bounds)
				assert.True(t, d.Fill != nil || d.Stroke != nil)
			}
		}
	}
}

func TestPass_TechGridAvoidsText(t *testing.T) {
	p := newPass(2, "x")
	decs := p.techGrid(contentText)
	require.NotEmpty(t, decs)
	for _, d := range decs {
		assert.Equal(t, ShapeDot, d.Shape)
		assert.True(t, d.Bounds.Within(Canvas), "%+v", d.Bounds)
		// 33 columns by 25 rows of 0.3in cells
		assert.Less(t, d.Bounds.X, 33*gridStep)
		assert.Less(t, d.Bounds.Y, 25*gridStep)
		for _, txt := range contentText {
			assert.False(t, d.Bounds.Intersects(txt))
		}
	}
}

func TestPass_OrganicJitterClamped(t *testing.T) {
	p := newPass(9, "x")
	for i := 0; i < 200; i++ {
		v := p.jitter(40)
		assert.GreaterOrEqual(t, v, uint8(50))
		assert.LessOrEqual(t, v, uint8(70))
	}
}

func TestPass_Background(t *testing.T) {
	p := newPass(4, "x")
	bg := p.Background(RoleTitle)
	require.NotNil(t, bg)
	assert.Equal(t, Canvas, bg.Bounds)
	assert.Equal(t, p.Scheme().Background, *bg.Fill)

	panels := 0
	for i := 0; i < 1000; i++ {
		if p.Background(RoleContent) != nil {
			panels++
		}
	}
	assert.InDelta(t, 300, panels, 80)
}

func TestPass_Deterministic(t *testing.T) {
	a, b := newPass(77, "Energy"), newPass(77, "Energy")
	for i := 0; i < 6; i++ {
		sa, da := a.Decorate(i, RoleContent, contentText)
		sb, db := b.Decorate(i, RoleContent, contentText)
		assert.Equal(t, sa, sb)
		assert.Equal(t, da, db)
	}
}
