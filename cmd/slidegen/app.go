package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"slidegen/cmd/slidegen/ui"
	"slidegen/internal/config"
	"slidegen/internal/llm"
	"slidegen/internal/localization"
	"slidegen/internal/logging"
	"slidegen/internal/metrics"
	"slidegen/internal/render"
	"slidegen/internal/retry"
	"slidegen/internal/search"
	"slidegen/internal/store"

	"go.uber.org/zap"
)

// worldwideRegion is the DuckDuckGo "no region" code. It is the stored
// default and means "pick the region from the content language".
const worldwideRegion = "wt-wt"

// newLLMClient builds the LLM client; tests replace it.
var newLLMClient = func(ctx context.Context, cfg *config.Config, rec *metrics.Recorder) (llm.Client, error) {
	return llm.NewClientFromConfig(ctx, cfg, rec)
}

// openFile shows a rendered file in the system viewer; tests replace it.
var openFile = openWithSystem

// app is the per-command runtime: the settings database, the lazily
// opened presentations store, metrics and the interface catalog.
type app struct {
	cfg      *config.Config
	settings *store.Settings
	pres     *store.Presentations
	metrics  *metrics.Recorder
	catalog  *localization.Catalog
	styles   ui.Styles
	devMode  bool
}

func newApp() (*app, error) {
	settings, err := store.OpenSettings(cfg.Store.SettingsPath)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	a := &app{
		cfg:      cfg,
		settings: settings,
		metrics:  metrics.New(),
		styles:   ui.DefaultStyles(),
		devMode:  cfg.Logging.DebugMode || settings.Bool(ctx, store.KeyDeveloperMode),
	}

	if err := logging.Initialize(logging.Options{
		Dir:        cfg.Logging.Dir,
		DebugMode:  a.devMode,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat(),
		Categories: cfg.Logging.Categories,
	}); err != nil {
		settings.Close()
		return nil, err
	}

	lang, err := localization.ParseLanguage(settings.String(ctx, store.KeyInterfaceLanguage))
	if err != nil {
		logger.Warn("Ignoring interface language setting", zap.Error(err))
		lang = localization.DefaultLanguage
	}
	a.catalog = localization.New(lang)

	if m := settings.String(ctx, store.KeyAIModel); m != "" && m != store.Defaults[store.KeyAIModel] {
		cfg.LLM.Model = m
	}
	logging.Boot("Command runtime ready: interface=%s developer=%v model=%s", lang, a.devMode, cfg.LLM.Model)
	return a, nil
}

// Close releases the databases and log files.
func (a *app) Close() {
	if a.pres != nil {
		if err := a.pres.Close(); err != nil {
			logger.Warn("Failed to close presentations store", zap.Error(err))
		}
	}
	if err := a.settings.Close(); err != nil {
		logger.Warn("Failed to close settings store", zap.Error(err))
	}
	logging.CloseAll()
}

func (a *app) presentations() (*store.Presentations, error) {
	if a.pres != nil {
		return a.pres, nil
	}
	p, err := store.OpenPresentations(a.cfg.Store.Path, a.metrics)
	if err != nil {
		return nil, err
	}
	a.pres = p
	return p, nil
}

func (a *app) client(ctx context.Context) (llm.Client, error) {
	if err := a.cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	return newLLMClient(ctx, a.cfg, a.metrics)
}

func (a *app) retryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: a.cfg.LLM.MaxAttempts,
		Backoff:     retry.Linear(a.cfg.GetRetryDelay()),
	}
}

func (a *app) renderer() *render.Renderer {
	return render.New(render.Options{
		Fonts: render.FontOptions{
			Regular: a.cfg.Render.FontPath,
			Bold:    a.cfg.Render.BoldFontPath,
		},
		Seed:    a.cfg.Render.Seed,
		Metrics: a.metrics,
	})
}

// contentLanguage resolves the language outlines are written in: the
// flag, then a non-default interface language, then the config default.
func (a *app) contentLanguage(ctx context.Context, flag string) (localization.Language, error) {
	if flag != "" {
		return localization.ParseLanguage(flag)
	}
	if l := a.settings.String(ctx, store.KeyInterfaceLanguage); l != store.Defaults[store.KeyInterfaceLanguage] {
		if lang, err := localization.ParseLanguage(l); err == nil {
			return lang, nil
		}
	}
	return localization.ParseLanguage(a.cfg.Generation.Language)
}

// searchRegion is the explicitly chosen region, or "" to pick by language.
func (a *app) searchRegion(ctx context.Context) string {
	for _, r := range []string{a.settings.String(ctx, store.KeySearchRegion), a.cfg.Search.Region} {
		if r != "" && r != worldwideRegion {
			return r
		}
	}
	return ""
}

func (a *app) searchResults(ctx context.Context) int {
	if n := a.settings.Int(ctx, store.KeySearchResults); n != store.Defaults[store.KeySearchResults] {
		return n
	}
	return a.cfg.Search.Results
}

// enricher builds the web search service. The returned close function
// shuts down a launched browser.
func (a *app) enricher(ctx context.Context) (*search.Service, func(), error) {
	client := &http.Client{Timeout: a.cfg.GetSearchTimeout()}
	searcher := search.NewDuckDuckGo(a.cfg.Search.EndpointURL, client)

	closeFn := func() {}
	var fetcher search.Fetcher
	switch a.cfg.Search.Fetcher {
	case "browser":
		bf := search.NewBrowserFetcher(search.BrowserConfig{
			Bin:      a.cfg.Search.BrowserBin,
			Headless: a.cfg.Search.Headless,
			Timeout:  a.cfg.GetSearchTimeout(),
		})
		fetcher = bf
		closeFn = func() {
			if err := bf.Close(); err != nil {
				logger.Warn("Failed to close browser", zap.Error(err))
			}
		}
	case "", "http":
		fetcher = search.NewHTTPFetcher(client)
	default:
		return nil, nil, fmt.Errorf("unknown search fetcher %q", a.cfg.Search.Fetcher)
	}

	svc := search.NewService(searcher, fetcher, search.Options{
		Region:    a.searchRegion(ctx),
		Results:   a.searchResults(ctx),
		PageChars: a.cfg.Search.PageChars,
		MaxChars:  a.cfg.Search.MaxChars,
		Delay:     a.cfg.GetSearchDelay(),
		CacheTTL:  a.cfg.GetSearchCacheTTL(),
		Metrics:   a.metrics,
	})
	return svc, closeFn, nil
}

// commandContext bounds a command by --timeout and cancels it on SIGINT
// or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func openWithSystem(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
