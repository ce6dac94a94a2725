// Package render draws a presentation outline as a slide document. Every
// slide goes through a Surface; production output is a PDF with one
// landscape page per slide.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"slidegen/internal/classify"
	"slidegen/internal/layout"
	"slidegen/internal/localization"
	"slidegen/internal/logging"
	"slidegen/internal/metrics"
	"slidegen/internal/model"
)

// minContentLength is the shortest body drawn as is; anything shorter is
// replaced by the localized content fallback.
const minContentLength = 10

// Options configures a Renderer.
type Options struct {
	Fonts   FontOptions
	Seed    int64 // 0 seeds from the clock
	Metrics *metrics.Recorder
}

// Renderer turns outlines into documents. A Renderer holds no per-document
// state and may be reused.
type Renderer struct {
	fonts   FontOptions
	seed    int64
	metrics *metrics.Recorder
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{fonts: opts.Fonts, seed: opts.Seed, metrics: opts.Metrics}
}

func (r *Renderer) rng() *rand.Rand {
	seed := r.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Render writes p as a PDF to w.
func (r *Renderer) Render(p *model.Presentation, w io.Writer) error {
	if p == nil {
		return errors.New("no presentation to render")
	}
	surface, err := NewPDFSurface(r.fonts, p.Title)
	if err != nil {
		return err
	}
	if err := r.Draw(p, surface); err != nil {
		return err
	}
	if err := surface.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// RenderFile renders p into dir/filename, creating dir when needed, and
// returns the absolute path of the written file.
func (r *Renderer) RenderFile(p *model.Presentation, dir, filename string) (string, error) {
	timer := logging.StartTimer(logging.CategoryRender, "RenderFile")
	defer timer.Stop()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(dir, Filename(filename, "", p.Title)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	var buf bytes.Buffer
	if err := r.Render(p, &buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Render("Wrote %s (%d bytes)", path, buf.Len())
	return path, nil
}

// Draw lays out every slide of p on s: the title slide, then for each
// section with slides a section break followed by its content slides. A
// slide that fails to draw is replaced by an error slide; only a nil
// presentation is an error.
func (r *Renderer) Draw(p *model.Presentation, s Surface) error {
	if p == nil {
		return errors.New("no presentation to render")
	}
	d := &deck{
		surface: s,
		pass:    layout.NewPass(r.rng(), p.Title),
		cat:     localization.New(localization.Language(p.Language)),
		metrics: r.metrics,
	}
	logging.Render("Rendering %q: %d sections, %d slides, scheme=%s",
		p.Title, len(p.Sections), p.TotalSlides(), d.pass.Scheme().Name)

	d.slide("title", func() string { return d.titleSlide(p) })
	for _, section := range p.Sections {
		if len(section.Slides) == 0 {
			continue
		}
		title := section.Title
		d.slide(title, func() string { return d.sectionSlide(title) })
		for _, sl := range section.Slides {
			d.slide(sl.Title, func() string { return d.contentSlide(sl) })
		}
	}
	return nil
}

// deck is the state of one render pass.
type deck struct {
	surface Surface
	pass    *layout.Pass
	cat     *localization.Catalog
	metrics *metrics.Recorder
	index   int
}

// slide starts a page and runs draw, which returns the layout name it used.
// A panic or a surface error turns the page into an error slide.
func (d *deck) slide(title string, draw func() string) {
	d.surface.ClearErr()
	d.surface.BeginPage()

	kind, err := d.safely(draw)
	if err == nil {
		err = d.surface.Err()
	}
	if err != nil {
		logging.RenderWarn("Slide %d (%q) failed, drawing placeholder: %v", d.index, title, err)
		d.surface.ClearErr()
		d.errorSlide(title, d.cat.T("slide_render_failed", title))
		kind = "error"
	}
	d.metrics.SlideRendered(kind)
	d.index++
}

func (d *deck) safely(draw func() string) (kind string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while drawing: %v", rec)
		}
	}()
	return draw(), nil
}

// fixContent applies the light validity check and the table rules. A
// non-empty msg means the slide must be drawn as an error slide.
func (d *deck) fixContent(s model.Slide) (content string, table classify.TableData, isTable bool, msg string) {
	content = strings.TrimSpace(s.Content)
	if utf8.RuneCountInString(content) < minContentLength {
		content = d.cat.T("slide_content_default", s.Title)
	}
	if !classify.IsTable(content) {
		return content, classify.TableData{}, false, ""
	}
	t, ok := classify.ParseTable(content)
	if !ok {
		return content, classify.TableData{}, false, d.cat.T("insufficient_table_data", s.Title)
	}
	return content, t.Clip(maxTableRows, maxTableCols), true, ""
}
