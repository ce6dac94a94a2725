package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func samplePresentation() *Presentation {
	p := NewPresentation("Solar Energy", "english", 2, 2)
	p.AddSection(Section{Title: "Basics", Slides: []Slide{
		{Title: "How panels work", Content: "Photovoltaic cells convert light."},
		{Title: "Efficiency", Content: "Modern panels reach 22 percent."},
	}})
	p.AddSection(Section{Title: "Economics"})
	return p
}

func TestTotalSlidesAndStats(t *testing.T) {
	p := samplePresentation()
	assert.Equal(t, 2, p.TotalSlides())

	st := p.Stats()
	assert.Equal(t, "Solar Energy", st.Title)
	assert.Equal(t, 2, st.Sections)
	assert.Equal(t, 2, st.Slides)
	assert.False(t, st.Generated)
}

func TestCloneIsDeep(t *testing.T) {
	p := samplePresentation()
	c := p.Clone()

	if diff := cmp.Diff(p, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Sections[0].Slides[0].Content = "changed"
	c.Sections[1].Title = "changed"
	assert.Equal(t, "Photovoltaic cells convert light.", p.Sections[0].Slides[0].Content)
	assert.Equal(t, "Economics", p.Sections[1].Title)
}

func TestDisplayTitle(t *testing.T) {
	p := samplePresentation()
	assert.Equal(t, "Solar Energy", p.DisplayTitle())
	p.TitleSlideHeader = "Sun Power"
	assert.Equal(t, "Sun Power", p.DisplayTitle())
}
