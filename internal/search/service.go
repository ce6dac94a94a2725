package search

import (
	"context"
	"strings"
	"time"

	"slidegen/internal/logging"
	"slidegen/internal/metrics"
)

// Options configures a Service. Zero values take the defaults below.
type Options struct {
	Region    string        // empty picks by language
	Results   int           // 5
	PageChars int           // 800
	MaxChars  int           // 2500
	Delay     time.Duration // pause before each page fetch after the first
	CacheTTL  time.Duration
	Metrics   *metrics.Recorder

	// Sleep waits between fetches; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Service searches for a slide title and condenses the hits and their pages
// into one reference text.
type Service struct {
	searcher Searcher
	fetcher  Fetcher
	opts     Options
	cache    *Cache
}

// NewService creates a Service. fetcher may be nil to use snippets only.
func NewService(searcher Searcher, fetcher Fetcher, opts Options) *Service {
	if opts.Results <= 0 {
		opts.Results = 5
	}
	if opts.PageChars <= 0 {
		opts.PageChars = 800
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = 2500
	}
	if opts.Sleep == nil {
		opts.Sleep = sleep
	}
	return &Service{
		searcher: searcher,
		fetcher:  fetcher,
		opts:     opts,
		cache:    NewCache(256, opts.CacheTTL),
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// querySuffix steers results towards factual pages.
var querySuffix = map[string]string{
	"english": "facts information",
	"russian": "информация факты",
}

func region(configured, language string) string {
	if configured != "" {
		return configured
	}
	if language == "russian" {
		return "ru-ru"
	}
	return "us-en"
}

// Lookup returns reference text about title, at most MaxChars characters.
// No hits yield an empty string. Failed page fetches are skipped; only a
// failed search or cancellation is an error.
func (s *Service) Lookup(ctx context.Context, title, language string) (string, error) {
	key := language + "\x00" + strings.ToLower(strings.TrimSpace(title))
	if text, ok := s.cache.Get(key); ok {
		s.opts.Metrics.Cache(true)
		logging.SearchDebug("Cache hit for %q", title)
		return text, nil
	}
	s.opts.Metrics.Cache(false)

	timer := logging.StartTimer(logging.CategorySearch, "Lookup")
	defer timer.Stop()

	q := Query{Text: strings.TrimSpace(title), Region: region(s.opts.Region, language), Count: s.opts.Results}
	if suffix := querySuffix[language]; suffix != "" {
		q.Text += " " + suffix
	}
	results, err := s.searcher.Search(ctx, q)
	s.opts.Metrics.Search(err)
	if err != nil {
		return "", err
	}
	logging.Search("Search for %q returned %d results", title, len(results))

	var parts []string
	fetched := 0
	for _, r := range results {
		if r.Snippet != "" {
			parts = append(parts, r.Snippet)
		}
		if s.fetcher == nil || r.URL == "" {
			continue
		}
		if fetched > 0 {
			if err := s.opts.Sleep(ctx, s.opts.Delay); err != nil {
				return "", err
			}
		}
		fetched++
		page, err := s.fetcher.Fetch(ctx, r.URL)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logging.SearchDebug("Skipping %s: %v", r.URL, err)
			continue
		}
		if page = clip(page, s.opts.PageChars); page != "" {
			parts = append(parts, page)
		}
	}

	text := Condense(strings.Join(parts, " "), s.opts.MaxChars)
	s.cache.Set(key, text)
	return text, nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Condense cuts text to limit characters, ending at the last period when
// that keeps more than 80% of the budget.
func Condense(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	r = r[:limit]
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == '.' {
			if float64(i) > float64(limit)*0.8 {
				return string(r[:i+1])
			}
			break
		}
	}
	return string(r)
}
