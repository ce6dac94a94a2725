// Package outline turns a topic into a presentation outline by driving a
// fixed, sequential series of LLM requests. Every step validates the reply,
// retries and finally falls back to localized defaults, so a build always
// yields a complete outline unless the context is cancelled.
package outline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"slidegen/internal/llm"
	"slidegen/internal/localization"
	"slidegen/internal/logging"
	"slidegen/internal/metrics"
	"slidegen/internal/model"
	"slidegen/internal/retry"
)

// Sampling temperatures per step.
const (
	TempSummary  = 0.7
	TempHeader   = 0.8
	TempTitles   = 1.0
	TempContent  = 0.8
	TempEnhance  = 0.7
	TempFilename = 0.5
)

// ErrInvalidRequest is returned for empty topics and non-positive counts.
var ErrInvalidRequest = errors.New("invalid outline request")


// Enricher fetches reference text about a slide title.
type Enricher interface {
	Lookup(ctx context.Context, title, language string) (string, error)
}

// Request describes the outline to build.
type Request struct {
	Topic     string
	Sections  int
	Slides    int
	Language  localization.Language
	WebSearch bool
}

// Validate checks the request shape.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic is empty", ErrInvalidRequest)
	}
	if r.Sections < 1 {
		return fmt.Errorf("%w: sections must be at least 1, got %d", ErrInvalidRequest, r.Sections)
	}
	if r.Slides < 1 {
		return fmt.Errorf("%w: slides must be at least 1, got %d", ErrInvalidRequest, r.Slides)
	}
	return nil
}

// Options configures a Builder. Only the catalog is required; zero values
// get defaults.
type Options struct {
	Catalog  *localization.Catalog
	Enricher Enricher
	Retry    retry.Policy
	Metrics  *metrics.Recorder
	Progress ProgressFunc
	Now      func() time.Time
}

// Builder generates outlines. It is not safe for concurrent Build calls
// when a Progress callback with state is attached.
type Builder struct {
	client   llm.Client
	catalog  *localization.Catalog
	enricher Enricher
	policy   retry.Policy
	metrics  *metrics.Recorder
	progress ProgressFunc
	now      func() time.Time
}

// NewBuilder creates a builder around client.
func NewBuilder(client llm.Client, opts Options) *Builder {
	b := &Builder{
		client:   client,
		catalog:  opts.Catalog,
		enricher: opts.Enricher,
		policy:   opts.Retry,
		metrics:  opts.Metrics,
		progress: opts.Progress,
		now:      opts.Now,
	}
	if b.catalog == nil {
		b.catalog = localization.New(localization.DefaultLanguage)
	}
	if b.policy.MaxAttempts == 0 {
		b.policy = retry.Default()
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

func (b *Builder) catalogFor(lang localization.Language) *localization.Catalog {
	if lang == "" || lang == b.catalog.Language() {
		return b.catalog
	}
	return localization.New(lang)
}

// Build runs the whole pipeline. The result always has exactly
// req.Sections sections of req.Slides slides each; an error is returned
// only for an invalid request or a cancelled context.
func (b *Builder) Build(ctx context.Context, req Request) (*model.Presentation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	timer := logging.StartTimer(logging.CategoryOutline, "Build")
	defer timer.Stop()

	cat := b.catalogFor(req.Language)
	topic := strings.TrimSpace(req.Topic)
	p := model.NewPresentation(topic, string(cat.Language()), req.Sections, req.Slides)
	tr := newTracker(TotalSteps(req.Sections, req.Slides, req.WebSearch), b.now, b.progress)

	logging.Outline("Building %q: %d sections x %d slides, language=%s, web=%v",
		topic, req.Sections, req.Slides, cat.Language(), req.WebSearch)

	tr.emit(cat.T("gen_summary"))
	summary, err := b.summary(ctx, cat, topic)
	if err != nil {
		return nil, err
	}
	header, err := b.header(ctx, cat, topic)
	if err != nil {
		return nil, err
	}
	p.Summary = summary
	p.TitleSlideHeader = header
	tr.advance()

	tr.emit(cat.T("gen_sections"))
	sectionTitles, err := b.sectionTitles(ctx, cat, topic, req.Sections)
	if err != nil {
		return nil, err
	}
	tr.advance()

	for _, sectionTitle := range sectionTitles {
		tr.emit(cat.T("processing_section", shorten(sectionTitle)))
		slideTitles, err := b.slideTitles(ctx, cat, sectionTitle, topic, req.Slides)
		if err != nil {
			return nil, err
		}
		tr.advance()

		section := model.Section{Title: sectionTitle}
		for _, slideTitle := range slideTitles {
			content, err := b.slide(ctx, cat, tr, req.WebSearch, sectionTitle, slideTitle)
			if err != nil {
				return nil, err
			}
			section.AddSlide(model.Slide{Title: slideTitle, Content: content})
		}
		p.AddSection(section)
	}

	p.Generated = true
	p.Touch()
	tr.emit(cat.T("presentation_ready"))
	logging.Outline("Built %q: %d slides", topic, p.TotalSlides())
	return p, nil
}

func (b *Builder) summary(ctx context.Context, cat *localization.Catalog, topic string) (string, error) {
	prompt := cat.Prompt(localization.PromptSummary, map[string]string{"title": topic})
	s, ok, err := ask(ctx, b, "summary", llm.Request{Prompt: prompt, Temperature: TempSummary}, nonEmpty("summary"))
	if err != nil || ok {
		return s, err
	}
	return cat.T("presentation_topic", topic), nil
}

func (b *Builder) header(ctx context.Context, cat *localization.Catalog, topic string) (string, error) {
	prompt := cat.Prompt(localization.PromptTitleHeader, map[string]string{"topic": topic})
	s, ok, err := ask(ctx, b, "header", llm.Request{Prompt: prompt, Temperature: TempHeader}, nonEmpty("title"))
	if err != nil || ok {
		return s, err
	}
	return topic, nil
}

func (b *Builder) sectionTitles(ctx context.Context, cat *localization.Catalog, topic string, count int) ([]string, error) {
	prompt := cat.Prompt(localization.PromptSectionTitles, map[string]string{
		"count": strconv.Itoa(count),
		"title": topic,
	})
	titles, ok, err := ask(ctx, b, "section_titles", llm.Request{Prompt: prompt, Temperature: TempTitles},
		titleList(count, ValidSectionTitle))
	if err != nil || ok {
		return titles, err
	}
	return numbered(cat, "section_default", count), nil
}

func (b *Builder) slideTitles(ctx context.Context, cat *localization.Catalog, sectionTitle, topic string, count int) ([]string, error) {
	prompt := cat.Prompt(localization.PromptSlideTitles, map[string]string{
		"count":              strconv.Itoa(count),
		"section_title":      sectionTitle,
		"presentation_title": topic,
	})
	titles, ok, err := ask(ctx, b, "slide_titles", llm.Request{Prompt: prompt, Temperature: TempTitles},
		titleList(count, ValidSlideTitle))
	if err != nil || ok {
		return titles, err
	}
	return numbered(cat, "slide_default", count), nil
}

// slide produces one slide body, optionally enriched with web content.
// With web search on it accounts for two steps, the lookup step counting
// even when the title is not worth searching.
func (b *Builder) slide(ctx context.Context, cat *localization.Catalog, tr *tracker, webSearch bool, sectionTitle, slideTitle string) (string, error) {
	var reference string
	if webSearch {
		if b.enricher != nil && WorthSearching(slideTitle) {
			tr.emit(cat.T("searching_web", shorten(slideTitle)))
			text, err := b.enricher.Lookup(ctx, slideTitle, string(cat.Language()))
			switch {
			case ctx.Err() != nil:
				return "", ctx.Err()
			case err != nil:
				logging.OutlineWarn("Web lookup for %q failed: %v", slideTitle, err)
			default:
				reference = text
			}
		}
		tr.advance()
	}

	tr.emit(cat.T("generating_slide", shorten(slideTitle)))
	defer tr.advance()

	if reference != "" {
		prompt := cat.Prompt(localization.PromptEnhanceContent, map[string]string{
			"slide_title": slideTitle,
			"web_content": reference,
		})
		content, ok, err := ask(ctx, b, "enhance", llm.Request{Prompt: prompt, Temperature: TempEnhance}, bodyText)
		if err != nil {
			return "", err
		}
		if ok {
			return content, nil
		}
	}

	prompt := cat.Prompt(localization.PromptSlideContent, map[string]string{
		"slide_title":   slideTitle,
		"section_title": sectionTitle,
	})
	content, ok, err := ask(ctx, b, "content", llm.Request{Prompt: prompt, Temperature: TempContent}, bodyText)
	if err != nil || ok {
		return content, err
	}
	return cat.T("slide_content_default", slideTitle), nil
}

// SuggestFilename asks the model for a short file stem. It returns "" when
// no usable suggestion arrives; the error is non-nil only on cancellation.
func (b *Builder) SuggestFilename(ctx context.Context, title string) (string, error) {
	prompt := b.catalog.Prompt(localization.PromptFilename, map[string]string{"title": title})
	name, _, err := ask(ctx, b, "filename", llm.Request{Prompt: prompt, Temperature: TempFilename},
		func(obj map[string]any) (string, bool) {
			s, ok := llm.String(obj, "filename")
			if !ok {
				return "", false
			}
			s = SanitizeFilename(s)
			return s, s != ""
		})
	return name, err
}

// ask runs one pipeline step under the retry policy. ok is false when every
// attempt failed and the caller should use its fallback.
func ask[T any](ctx context.Context, b *Builder, step string, req llm.Request, extract func(map[string]any) (T, bool)) (v T, ok bool, err error) {
	policy := b.policy
	policy.OnRetry = func(attempt int, err error) {
		logging.OutlineDebug("%s attempt %d failed: %v", step, attempt, err)
	}

	v, err = llm.Ask(ctx, b.client, policy, req, extract)
	if err == nil {
		return v, true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return v, false, ctxErr
	}
	logging.OutlineWarn("%s: using fallback after: %v", step, err)
	b.metrics.Fallback(step)
	return v, false, nil
}

func nonEmpty(key string) func(map[string]any) (string, bool) {
	return func(obj map[string]any) (string, bool) {
		s, ok := llm.String(obj, key)
		s = strings.TrimSpace(s)
		return s, ok && s != ""
	}
}

func titleList(count int, valid func(string) bool) func(map[string]any) ([]string, bool) {
	return func(obj map[string]any) ([]string, bool) {
		titles, ok := llm.Strings(obj, "titles")
		if !ok {
			return nil, false
		}
		return pickTitles(titles, count, valid)
	}
}

func bodyText(obj map[string]any) (string, bool) {
	s, ok := llm.String(obj, "content")
	if !ok {
		return "", false
	}
	s = NormalizeContent(s)
	return s, ValidContent(s)
}

func numbered(cat *localization.Catalog, key string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = cat.T(key, i+1)
	}
	return out
}
