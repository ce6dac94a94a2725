// Package correction applies natural-language edit requests to a stored
// presentation. Each request is routed to one scoped LLM revision; any reply
// that fails validation leaves the targeted field untouched.
package correction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"slidegen/internal/llm"
	"slidegen/internal/localization"
	"slidegen/internal/logging"
	"slidegen/internal/metrics"
	"slidegen/internal/model"
	"slidegen/internal/outline"
	"slidegen/internal/retry"
)

// ErrEmptyInstruction is returned when there is nothing to apply.
var ErrEmptyInstruction = errors.New("correction instruction is empty")


const (
	tempTitle     = 0.7
	tempContent   = 0.8
	tempStructure = 0.8
	tempStyle     = 0.7
	tempGeneral   = 0.8
)

// Result reports what a correction did.
type Result struct {
	Kind    Kind
	Changed int
}

// Options configures an Engine.
type Options struct {
	Retry    retry.Policy
	Metrics  *metrics.Recorder
	Progress func(message string)
}

// Engine applies corrections.
type Engine struct {
	client   llm.Client
	policy   retry.Policy
	metrics  *metrics.Recorder
	progress func(string)
}

// NewEngine creates an engine around client.
func NewEngine(client llm.Client, opts Options) *Engine {
	e := &Engine{
		client:   client,
		policy:   opts.Retry,
		metrics:  opts.Metrics,
		progress: opts.Progress,
	}
	if e.policy.MaxAttempts == 0 {
		e.policy = retry.Default()
	}
	return e
}

func (e *Engine) report(msg string) {
	if e.progress != nil {
		e.progress(msg)
	}
}

// Correct classifies instruction and revises p in place. Section and slide
// counts never change. The error is non-nil only for an empty instruction,
// a nil presentation or a cancelled context.
func (e *Engine) Correct(ctx context.Context, p *model.Presentation, instruction string) (Result, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return Result{}, ErrEmptyInstruction
	}
	if p == nil {
		return Result{}, errors.New("no presentation to correct")
	}

	cat := localization.New(localization.Language(p.Language))
	e.report(cat.T("analyzing_request"))
	kind := Classify(instruction)
	e.report(cat.T("applying_correction", kind))
	logging.Correction("Correcting presentation %d (%q) as %s: %q", p.ID, p.Title, kind, instruction)

	var (
		changed int
		err     error
	)
	switch kind {
	case KindTitle:
		changed, err = e.title(ctx, cat, p, instruction)
	case KindContent:
		changed, err = e.eachSlide(ctx, cat, p, func(s model.Slide) (localization.PromptKind, map[string]string, float64) {
			return localization.PromptCorrectContent, map[string]string{
				"slide_title":   s.Title,
				"slide_content": s.Content,
				"user_request":  instruction,
			}, tempContent
		})
	case KindStructure:
		changed, err = e.structure(ctx, cat, p, instruction)
	case KindStyle:
		changed, err = e.eachSlide(ctx, cat, p, func(s model.Slide) (localization.PromptKind, map[string]string, float64) {
			return localization.PromptCorrectStyle, map[string]string{
				"slide_content": s.Content,
				"user_request":  instruction,
			}, tempStyle
		})
	default:
		changed, err = e.general(ctx, cat, p, instruction)
	}
	if err != nil {
		return Result{Kind: kind}, err
	}

	if changed > 0 {
		p.Touch()
	}
	logging.Correction("Correction %s changed %d field(s)", kind, changed)
	return Result{Kind: kind, Changed: changed}, nil
}

func (e *Engine) title(ctx context.Context, cat *localization.Catalog, p *model.Presentation, instruction string) (int, error) {
	prompt := cat.Prompt(localization.PromptCorrectTitle, map[string]string{
		"current_title": p.Title,
		"user_request":  instruction,
	})
	title, ok, err := ask(ctx, e, "correct_title", llm.Request{Prompt: prompt, Temperature: tempTitle}, nonEmpty("title"))
	if err != nil || !ok {
		return 0, err
	}
	return set(&p.Title, title), nil
}

// eachSlide revises every slide body with a prompt built by promptFor.
func (e *Engine) eachSlide(ctx context.Context, cat *localization.Catalog, p *model.Presentation,
	promptFor func(model.Slide) (localization.PromptKind, map[string]string, float64)) (int, error) {
	total := p.TotalSlides()
	n, changed := 0, 0
	for si := range p.Sections {
		slides := p.Sections[si].Slides
		for i := range slides {
			n++
			e.report(cat.T("correcting_slide", n, total, slides[i].Title))
			kind, vars, temp := promptFor(slides[i])
			content, ok, err := ask(ctx, e, string(kind), llm.Request{Prompt: cat.Prompt(kind, vars), Temperature: temp}, slideBody)
			if err != nil {
				return changed, err
			}
			if ok {
				changed += set(&slides[i].Content, content)
			}
		}
	}
	return changed, nil
}

func (e *Engine) structure(ctx context.Context, cat *localization.Catalog, p *model.Presentation, instruction string) (int, error) {
	current := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		current[i] = s.Title
	}
	list, err := json.Marshal(current)
	if err != nil {
		return 0, fmt.Errorf("failed to encode section titles: %w", err)
	}
	prompt := cat.Prompt(localization.PromptCorrectStructure, map[string]string{
		"presentation_title": p.Title,
		"sections_list":      string(list),
		"user_request":       instruction,
	})
	titles, ok, err := ask(ctx, e, "correct_structure", llm.Request{Prompt: prompt, Temperature: tempStructure},
		func(obj map[string]any) ([]string, bool) {
			titles, ok := llm.Strings(obj, "sections")
			return titles, ok && len(titles) > 0
		})
	if err != nil || !ok {
		return 0, err
	}

	changed := 0
	for i := range p.Sections {
		if i >= len(titles) {
			break
		}
		if t := strings.TrimSpace(titles[i]); t != "" {
			changed += set(&p.Sections[i].Title, t)
		}
	}
	return changed, nil
}

func (e *Engine) general(ctx context.Context, cat *localization.Catalog, p *model.Presentation, instruction string) (int, error) {
	prompt := cat.Prompt(localization.PromptCorrectGeneral, map[string]string{
		"presentation_title":   p.Title,
		"presentation_summary": p.Summary,
		"user_request":         instruction,
	})
	type update struct{ title, summary string }
	u, ok, err := ask(ctx, e, "correct_general", llm.Request{Prompt: prompt, Temperature: tempGeneral},
		func(obj map[string]any) (update, bool) {
			title, _ := llm.String(obj, "title")
			summary, _ := llm.String(obj, "summary")
			u := update{strings.TrimSpace(title), strings.TrimSpace(summary)}
			return u, u.title != "" || u.summary != ""
		})
	if err != nil || !ok {
		return 0, err
	}

	changed := 0
	if u.title != "" {
		changed += set(&p.Title, u.title)
	}
	if u.summary != "" {
		changed += set(&p.Summary, u.summary)
	}
	return changed, nil
}

// set assigns v to *field and reports 1 if the value changed.
func set(field *string, v string) int {
	if *field == v {
		return 0
	}
	*field = v
	return 1
}

func nonEmpty(key string) func(map[string]any) (string, bool) {
	return func(obj map[string]any) (string, bool) {
		s, _ := llm.String(obj, key)
		s = strings.TrimSpace(s)
		return s, s != ""
	}
}

func slideBody(obj map[string]any) (string, bool) {
	s, ok := llm.String(obj, "content")
	if !ok {
		return "", false
	}
	s = outline.NormalizeContent(s)
	return s, outline.ValidContent(s)
}

// ask requests, parses and validates one revision under the retry policy.
// ok is false when the field should stay as it is.
func ask[T any](ctx context.Context, e *Engine, step string, req llm.Request, extract func(map[string]any) (T, bool)) (v T, ok bool, err error) {
	policy := e.policy
	policy.OnRetry = func(attempt int, err error) {
		logging.CorrectionDebug("%s attempt %d failed: %v", step, attempt, err)
	}

	v, err = llm.Ask(ctx, e.client, policy, req, extract)
	if err == nil {
		return v, true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return v, false, ctxErr
	}
	logging.Get(logging.CategoryCorrection).Warn("%s left unchanged: %v", step, err)
	e.metrics.Fallback(step)
	return v, false, nil
}
