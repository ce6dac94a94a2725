package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"slidegen/internal/layout"
	"slidegen/internal/metrics"
	"slidegen/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Shapes []layout.Decoration
	Texts  []string
}

// recorder is a Surface that keeps everything drawn on it. Text containing
// failOn sets the surface error; text containing panicOn panics.
type recorder struct {
	pages   []page
	err     error
	failOn  string
	panicOn string
}

func (r *recorder) BeginPage() { r.pages = append(r.pages, page{}) }

func (r *recorder) Shape(d layout.Decoration) {
	p := &r.pages[len(r.pages)-1]
	p.Shapes = append(p.Shapes, d)
}

func (r *recorder) Text(_ layout.Rect, text string, _ TextStyle) {
	if r.panicOn != "" && strings.Contains(text, r.panicOn) {
		panic("cannot draw " + text)
	}
	if r.failOn != "" && strings.Contains(text, r.failOn) {
		r.err = fmt.Errorf("bad glyph in %q", text)
	}
	p := &r.pages[len(r.pages)-1]
	p.Texts = append(p.Texts, text)
}

func (r *recorder) Err() error { return r.err }
func (r *recorder) ClearErr()  { r.err = nil }

func (r *recorder) text(i int) string {
	return strings.Join(r.pages[i].Texts, "\n")
}

func samplePresentation() *model.Presentation {
	p := model.NewPresentation("Renewable Energy", "english", 3, 2)
	p.Summary = "An overview of where clean power stands today."
	p.AddSection(model.Section{Title: "Solar", Slides: []model.Slide{
		{Title: "Panels", Content: "Photovoltaic panels convert sunlight into electricity with no moving parts."},
		{Title: "Adoption", Content: "- Rooftop systems\n- Utility farms\n- Community solar"},
	}})
	p.AddSection(model.Section{Title: "Empty"})
	p.AddSection(model.Section{Title: "Wind", Slides: []model.Slide{
		{Title: "Turbines", Content: "Wind turbines capture kinetic energy from moving air masses."},
	}})
	return p
}

func TestDrawPageStructure(t *testing.T) {
	rec := metrics.New()
	r := New(Options{Seed: 1, Metrics: rec})
	s := &recorder{}

	require.NoError(t, r.Draw(samplePresentation(), s))

	// title, Solar + 2 slides, Wind + 1 slide; the empty section is skipped
	require.Len(t, s.pages, 6)
	assert.Contains(t, s.text(0), "Renewable Energy")
	assert.Contains(t, s.text(0), "An overview of where clean power stands today.")
	assert.Contains(t, s.text(1), "Solar")
	assert.Contains(t, s.text(2), "Panels")
	assert.Contains(t, s.text(3), "Rooftop systems")
	assert.Contains(t, s.text(4), "Wind")
	assert.Contains(t, s.text(5), "Turbines")
	for i := range s.pages {
		assert.NotContains(t, s.text(i), "Empty")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.SlidesRendered.WithLabelValues("title")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.SlidesRendered.WithLabelValues("section")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.SlidesRendered.WithLabelValues("list")))
}

func TestDrawSubtitleFallback(t *testing.T) {
	p := samplePresentation()
	p.Summary = ""
	s := &recorder{}

	require.NoError(t, New(Options{Seed: 1}).Draw(p, s))
	assert.Contains(t, s.text(0), "Created with AI")
}

func TestDrawShortContentUsesDefault(t *testing.T) {
	p := model.NewPresentation("Deck", "english", 1, 1)
	p.AddSection(model.Section{Title: "Intro", Slides: []model.Slide{{Title: "Hello", Content: "tiny"}}})
	s := &recorder{}

	require.NoError(t, New(Options{Seed: 3}).Draw(p, s))
	require.Len(t, s.pages, 3)
	assert.Contains(t, s.text(2), "Content for slide 'Hello'")
	assert.NotContains(t, s.text(2), "tiny")
}

func TestDrawTable(t *testing.T) {
	var b strings.Builder
	b.WriteString("TABLE|h1|h2|h3|h4|h5|h6|h7\n")
	for i := 1; i <= 8; i++ {
		for j := 1; j <= 7; j++ {
			fmt.Fprintf(&b, "r%dc%d|", i, j)
		}
		b.WriteString("\n")
	}
	p := model.NewPresentation("Deck", "english", 1, 1)
	p.AddSection(model.Section{Title: "Data", Slides: []model.Slide{{Title: "Numbers", Content: b.String()}}})
	rec := metrics.New()
	s := &recorder{}

	require.NoError(t, New(Options{Seed: 5, Metrics: rec}).Draw(p, s))
	got := s.text(2)
	assert.Contains(t, got, "Numbers")
	assert.Contains(t, got, "h5")
	assert.NotContains(t, got, "h6")
	assert.Contains(t, got, "r5c5")
	assert.NotContains(t, got, "r6c1")
	assert.NotContains(t, got, "r1c6")
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.SlidesRendered.WithLabelValues("table")))
}

func TestDrawInvalidTableContinues(t *testing.T) {
	p := model.NewPresentation("Deck", "english", 1, 2)
	p.AddSection(model.Section{Title: "Data", Slides: []model.Slide{
		{Title: "Broken", Content: "TABLE|only header|columns"},
		{Title: "After", Content: "The render carries on with the next slide."},
	}})
	rec := metrics.New()
	s := &recorder{}

	require.NoError(t, New(Options{Seed: 2, Metrics: rec}).Draw(p, s))
	require.Len(t, s.pages, 4)
	assert.Contains(t, s.text(2), "Not enough table data to build a table for 'Broken'")
	assert.Contains(t, s.text(3), "The render carries on")
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.SlidesRendered.WithLabelValues("error")))
}

func TestDrawRecoversFailingSlides(t *testing.T) {
	p := model.NewPresentation("Deck", "english", 1, 3)
	p.AddSection(model.Section{Title: "Risky", Slides: []model.Slide{
		{Title: "Fragile", Content: "This paragraph will explode when drawn."},
		{Title: "Glitchy", Content: "This paragraph has a broken glyph inside."},
		{Title: "Fine", Content: "This paragraph draws without any trouble."},
	}})
	rec := metrics.New()
	s := &recorder{panicOn: "explode", failOn: "broken"}

	require.NoError(t, New(Options{Seed: 4, Metrics: rec}).Draw(p, s))
	require.Len(t, s.pages, 5)
	assert.Contains(t, s.text(2), "This slide could not be rendered: Fragile")
	assert.Contains(t, s.text(3), "This slide could not be rendered: Glitchy")
	assert.Contains(t, s.text(4), "without any trouble")
	assert.NotContains(t, s.text(4), "could not be rendered")
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.SlidesRendered.WithLabelValues("error")))

	// the placeholder starts by covering what was drawn before the failure
	shapes := s.pages[2].Shapes
	require.NotEmpty(t, shapes)
	var covered bool
	for _, d := range shapes {
		if d.Bounds == layout.Canvas && d.Fill != nil && *d.Fill == white {
			covered = true
		}
	}
	assert.True(t, covered)
}

func TestDrawIsDeterministicForSeed(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	require.NoError(t, New(Options{Seed: 42}).Draw(samplePresentation(), a))
	require.NoError(t, New(Options{Seed: 42}).Draw(samplePresentation(), b))
	if diff := cmp.Diff(a.pages, b.pages); diff != "" {
		t.Errorf("same seed produced different slides (-first +second):\n%s", diff)
	}
}

func TestDrawNil(t *testing.T) {
	assert.Error(t, New(Options{}).Draw(nil, &recorder{}))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Options{Seed: 9}).Render(samplePresentation(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

// utf16be is how the PDF content stream carries text set in a TTF font.
func utf16be(s string) []byte {
	var out []byte
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

func TestPDFSurfaceKeepsCyrillic(t *testing.T) {
	s, err := NewPDFSurface(FontOptions{}, "Квантовые вычисления")
	require.NoError(t, err)
	s.pdf.SetCompression(false)

	s.BeginPage()
	s.Text(layout.Rect{X: 1, Y: 1, W: 8, H: 2}, "Введение в квантовые вычисления", TextStyle{Size: 24, Bold: true})
	s.Text(layout.Rect{X: 1, Y: 3, W: 8, H: 3}, "Кубиты хранят суперпозицию состояний.", TextStyle{Size: 16})
	s.Text(layout.Rect{X: 1, Y: 6, W: 8, H: 1}, "Итоги 🚀 года", TextStyle{Size: 16})
	require.NoError(t, s.Err())

	var buf bytes.Buffer
	require.NoError(t, s.Output(&buf))
	assert.True(t, bytes.Contains(buf.Bytes(), utf16be("Введение")))
	assert.True(t, bytes.Contains(buf.Bytes(), utf16be("Кубиты")))
	assert.True(t, bytes.Contains(buf.Bytes(), utf16be("Итоги  года")))
	assert.False(t, bytes.Contains(buf.Bytes(), []byte("........")))
}

func TestRenderRussianDeck(t *testing.T) {
	p := model.NewPresentation("квантовые вычисления", "russian", 1, 2)
	p.TitleSlideHeader = "Квантовые вычисления"
	p.AddSection(model.Section{Title: "Основы", Slides: []model.Slide{
		{Title: "Кубиты", Content: "Кубит может находиться в суперпозиции двух состояний."},
		{Title: "Сравнение", Content: "TABLE|Параметр|Значение\nКубиты|127\nОшибки|0,1%"},
	}})

	var buf bytes.Buffer
	require.NoError(t, New(Options{Seed: 3}).Render(p, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFSurfaceMissingFont(t *testing.T) {
	_, err := NewPDFSurface(FontOptions{Regular: filepath.Join(t.TempDir(), "none.ttf")}, "x")
	assert.ErrorContains(t, err, "failed to read font")
}

func TestRenderFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := New(Options{Seed: 9}).RenderFile(samplePresentation(), dir, "")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "Renewable_Energy.pdf", filepath.Base(path))
	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Renewable_Energy.pdf", files[0].Name)
	assert.Positive(t, files[0].Size)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))

	sentence := strings.Repeat("a", 80) + ". " + strings.Repeat("b", 50)
	assert.Equal(t, strings.Repeat("a", 80)+".", Truncate(sentence, 100))

	hard := Truncate(strings.Repeat("x", 150), 100)
	assert.Equal(t, strings.Repeat("x", 97)+"...", hard)

	early := "Hi. " + strings.Repeat("y", 200)
	got := Truncate(early, 100)
	assert.Len(t, []rune(got), 100)
	assert.True(t, strings.HasSuffix(got, "..."))

	cyr := strings.Repeat("ж", 120)
	assert.Equal(t, strings.Repeat("ж", 97)+"...", Truncate(cyr, 100))
}

func TestBudget(t *testing.T) {
	assert.Equal(t, 300, Budget("list"))
	assert.Equal(t, 250, Budget("highlight"))
	assert.Equal(t, 400, Budget("table"))
	assert.Equal(t, 400, Budget("unknown"))
}

func TestSafeStem(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"AI: Trends & Outlook 2025!", "AI_Trends_Outlook_2025"},
		{"!!!", "Presentation"},
		{"", "Presentation"},
		{"The Future of Distributed Systems Engineering", "The_Future_of"},
		{"Будущее энергетики", "Будущее_энергетики"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeStem(tt.title))
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", Filename("report", "ignored", "Title"))
	assert.Equal(t, "deck.PDF", Filename("deck.PDF", "", "Title"))
	assert.Equal(t, "deck.pdf", Filename("../etc/deck.pdf", "", "Title"))
	assert.Equal(t, "AI_trends.pdf", Filename("", "AI_trends", "Title"))
	assert.Equal(t, "My_Deck.pdf", Filename("  ", "", "My Deck"))
	assert.Equal(t, "Presentation.pdf", Filename(strings.Repeat("n", 120), "", "Title"))
}

func TestListAndDeleteFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	for i, name := range []string{"old.pdf", "new.pdf", "notes.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
		mt := now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mt, mt))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0755))

	files, err := ListFiles(dir)
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"new.pdf", "old.pdf"}, names)

	assert.Error(t, DeleteFile(dir, "../old.pdf"))
	assert.Error(t, DeleteFile(dir, "notes.txt"))
	assert.Error(t, DeleteFile(dir, "missing.pdf"))
	require.NoError(t, DeleteFile(dir, "old.pdf"))

	files, err = ListFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.pdf", files[0].Name)

	missing, err := ListFiles(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}
