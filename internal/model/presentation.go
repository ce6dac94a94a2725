// Package model defines the outline tree shared by the builder, the corrector,
// the renderer and the store.
package model

import (
	"time"
)

// Slide is a single content slide. Content may carry in-band markup: bullet
// lines for lists and a leading "TABLE|" line for tabular data.
type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Section groups slides in presentation order.
type Section struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// AddSlide appends a slide to the section.
func (s *Section) AddSlide(slide Slide) {
	s.Slides = append(s.Slides, slide)
}

// Presentation is the root of the outline.
type Presentation struct {
	ID               int64     `json:"id,omitempty"`
	Title            string    `json:"title"`
	Language         string    `json:"language"`
	Summary          string    `json:"summary"`
	TitleSlideHeader string    `json:"title_slide_header"`
	Sections         []Section `json:"sections"`
	MaxSections      int       `json:"max_sections"`
	MaxSlides        int       `json:"max_slides"`
	Generated        bool      `json:"generated"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewPresentation creates an empty, not yet generated presentation.
func NewPresentation(title, language string, maxSections, maxSlides int) *Presentation {
	now := time.Now().UTC()
	return &Presentation{
		Title:       title,
		Language:    language,
		MaxSections: maxSections,
		MaxSlides:   maxSlides,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddSection appends a section.
func (p *Presentation) AddSection(section Section) {
	p.Sections = append(p.Sections, section)
}

// TotalSlides counts content slides across all sections.
func (p *Presentation) TotalSlides() int {
	n := 0
	for _, s := range p.Sections {
		n += len(s.Slides)
	}
	return n
}

// DisplayTitle is the title-slide header when one was generated, else the title.
func (p *Presentation) DisplayTitle() string {
	if p.TitleSlideHeader != "" {
		return p.TitleSlideHeader
	}
	return p.Title
}

// Stats summarizes a presentation for listings.
type Stats struct {
	Title     string
	Sections  int
	Slides    int
	Language  string
	Generated bool
	CreatedAt time.Time
}

// Stats returns a summary of the presentation.
func (p *Presentation) Stats() Stats {
	return Stats{
		Title:     p.Title,
		Sections:  len(p.Sections),
		Slides:    p.TotalSlides(),
		Language:  p.Language,
		Generated: p.Generated,
		CreatedAt: p.CreatedAt,
	}
}

// Clone returns a deep copy.
func (p *Presentation) Clone() *Presentation {
	if p == nil {
		return nil
	}
	out := *p
	out.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		out.Sections[i] = Section{Title: s.Title, Slides: append([]Slide(nil), s.Slides...)}
	}
	return &out
}

// Touch bumps UpdatedAt.
func (p *Presentation) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
