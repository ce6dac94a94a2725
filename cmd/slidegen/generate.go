package main

import (
	"context"
	"fmt"
	"strings"

	"slidegen/cmd/slidegen/ui"
	"slidegen/internal/localization"
	"slidegen/internal/model"
	"slidegen/internal/outline"
	"slidegen/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var genFlags struct {
	sections  int
	slides    int
	language  string
	webSearch bool
	filename  string
	noOpen    bool
	noSave    bool
	plain     bool
}

// generateCmd builds, stores and renders a presentation.
var generateCmd = &cobra.Command{
	Use:   "generate <topic...>",
	Short: "Generate a presentation about a topic",
	Long: `Generates a presentation outline with the configured LLM, stores it and
renders it to the output directory.

Example:
  slidegen generate --sections 4 --slides 3 --web-search "History of aviation"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func registerGenerateFlags() {
	f := generateCmd.Flags()
	f.IntVar(&genFlags.sections, "sections", 0, "Number of sections (default from config)")
	f.IntVar(&genFlags.slides, "slides", 0, "Slides per section (default from config)")
	f.StringVar(&genFlags.language, "language", "", "Content language: "+strings.Join(localization.Supported(), ", "))
	f.BoolVar(&genFlags.webSearch, "web-search", false, "Enrich slides with web search results")
	f.StringVar(&genFlags.filename, "filename", "", "Output file name (default: suggested by the model)")
	f.BoolVar(&genFlags.noOpen, "no-open", false, "Do not open the rendered file")
	f.BoolVar(&genFlags.noSave, "no-save", false, "Do not store the outline")
	f.BoolVar(&genFlags.plain, "plain", false, "Print progress lines instead of the interactive view")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := commandContext()
	defer cancel()

	topic := strings.TrimSpace(strings.Join(args, " "))
	lang, err := a.contentLanguage(ctx, genFlags.language)
	if err != nil {
		return err
	}
	req := outline.Request{
		Topic:     topic,
		Sections:  orDefault(genFlags.sections, a.cfg.Generation.Sections),
		Slides:    orDefault(genFlags.slides, a.cfg.Generation.Slides),
		Language:  lang,
		WebSearch: a.cfg.Search.Enabled || a.settings.Bool(ctx, store.KeyWebSearch),
	}
	if cmd.Flags().Changed("web-search") {
		req.WebSearch = genFlags.webSearch
	}
	if err := req.Validate(); err != nil {
		return err
	}

	client, err := a.client(ctx)
	if err != nil {
		return err
	}
	contentCat := localization.New(lang)
	opts := outline.Options{
		Catalog: contentCat,
		Retry:   a.retryPolicy(),
		Metrics: a.metrics,
	}
	if req.WebSearch {
		svc, closeSearch, err := a.enricher(ctx)
		if err != nil {
			return err
		}
		defer closeSearch()
		opts.Enricher = svc
	}

	logger.Info("Generating presentation",
		zap.String("topic", topic),
		zap.Int("sections", req.Sections),
		zap.Int("slides", req.Slides),
		zap.String("language", string(lang)),
		zap.Bool("web_search", req.WebSearch))

	var (
		p         *model.Presentation
		suggested string
	)
	err = runWithProgress(ctx, cmd.ErrOrStderr(), plainOutput(genFlags.plain), topic, true, a.styles,
		func(ctx context.Context, report reporter) error {
			opts.Progress = func(s outline.Step) { report(stepUpdate(contentCat, s)) }
			b := outline.NewBuilder(client, opts)

			built, err := b.Build(ctx, req)
			if err != nil {
				return err
			}
			p = built
			if genFlags.filename == "" {
				suggested, err = b.SuggestFilename(ctx, p.Title)
			}
			return err
		})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if !genFlags.noSave {
		pres, err := a.presentations()
		if err != nil {
			return err
		}
		if err := pres.Save(ctx, p); err != nil {
			return err
		}
		fmt.Fprintln(out, a.styles.Success.Render(a.catalog.T("saved_db", p.ID)))
	}

	path, err := a.renderer().RenderFile(p, a.cfg.Render.OutputDir, pickFilename(genFlags.filename, suggested))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, a.catalog.T("saved_file", a.styles.Path.Render(path)))

	if a.devMode {
		printStats(out, a, p)
	}
	if !genFlags.noOpen && a.autoOpen(ctx) {
		if err := openFile(path); err != nil {
			logger.Warn("Failed to open rendered file", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

func (a *app) autoOpen(ctx context.Context) bool {
	return a.cfg.Render.AutoOpen && a.settings.Bool(ctx, store.KeyAutoOpen)
}

func stepUpdate(cat *localization.Catalog, s outline.Step) ui.Update {
	u := ui.Update{Text: s.Description, Current: s.Current, Total: s.Total}
	if s.Remaining > 0 {
		u.ETA = cat.T("remaining_time", outline.FormatRemaining(cat, s.Remaining))
	}
	return u
}

func pickFilename(explicit, suggested string) string {
	if explicit != "" {
		return explicit
	}
	return suggested
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
