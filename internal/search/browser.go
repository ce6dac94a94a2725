package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"slidegen/internal/logging"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

// BrowserConfig configures the headless browser fetcher.
type BrowserConfig struct {
	Bin      string // empty lets rod find or download a browser
	Headless bool
	Timeout  time.Duration
}

// BrowserFetcher renders pages in a headless Chrome before extracting their
// text, for sites that build their content with JavaScript. The browser is
// launched on first use and shared until Close.
type BrowserFetcher struct {
	cfg BrowserConfig

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserFetcher creates a fetcher; nothing is launched yet.
func NewBrowserFetcher(cfg BrowserConfig) *BrowserFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &BrowserFetcher{cfg: cfg}
}

func (f *BrowserFetcher) start(ctx context.Context) (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		if _, err := f.browser.Version(); err == nil {
			return f.browser, nil
		}
		logging.SearchWarn("Stale browser connection, relaunching")
		_ = f.browser.Close()
		f.browser = nil
	}

	l := launcher.New().Headless(f.cfg.Headless)
	if f.cfg.Bin != "" {
		l = l.Bin(f.cfg.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	f.browser = b
	return b, nil
}

// Fetch opens url in a fresh incognito context, waits for it to load and
// returns the page text.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	b, err := f.start(ctx)
	if err != nil {
		return "", err
	}
	session := uuid.NewString()
	logging.SearchDebug("[%s] browser fetch %s", session, url)

	incognito, err := b.Incognito()
	if err != nil {
		return "", fmt.Errorf("incognito context: %w", err)
	}
	defer incognito.Close()

	page, err := incognito.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.cfg.Timeout)
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("[%s] load %s: %w", session, url, err)
	}
	doc, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("[%s] read %s: %w", session, url, err)
	}
	return PageText(doc)
}

// Close shuts the browser down if it was started.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
