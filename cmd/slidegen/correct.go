package main

import (
	"context"
	"fmt"
	"strings"

	"slidegen/cmd/slidegen/ui"
	"slidegen/internal/correction"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var correctFlags struct {
	filename string
	noRender bool
	noOpen   bool
	plain    bool
}

// correctCmd revises a stored presentation from a plain-language instruction.
var correctCmd = &cobra.Command{
	Use:   "correct <id> <instruction...>",
	Short: "Apply a correction to a stored presentation",
	Long: `Classifies the instruction (title, content, structure, style or general),
revises the stored outline with the LLM, saves it and renders it again.

Example:
  slidegen correct 3 "make the text more concise"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCorrect,
}

func registerCorrectFlags() {
	f := correctCmd.Flags()
	f.StringVar(&correctFlags.filename, "filename", "", "Output file name (default: derived from the title)")
	f.BoolVar(&correctFlags.noRender, "no-render", false, "Only update the stored outline")
	f.BoolVar(&correctFlags.noOpen, "no-open", false, "Do not open the rendered file")
	f.BoolVar(&correctFlags.plain, "plain", false, "Print progress lines instead of the interactive view")
}

func runCorrect(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	instruction := strings.TrimSpace(strings.Join(args[1:], " "))

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := commandContext()
	defer cancel()

	pres, err := a.presentations()
	if err != nil {
		return err
	}
	p, err := pres.Get(ctx, id)
	if err != nil {
		return err
	}
	client, err := a.client(ctx)
	if err != nil {
		return err
	}

	var result correction.Result
	err = runWithProgress(ctx, cmd.ErrOrStderr(), plainOutput(correctFlags.plain), p.Title, false, a.styles,
		func(ctx context.Context, report reporter) error {
			engine := correction.NewEngine(client, correction.Options{
				Retry:    a.retryPolicy(),
				Metrics:  a.metrics,
				Progress: func(msg string) { report(ui.Update{Text: msg}) },
			})
			r, err := engine.Correct(ctx, p, instruction)
			result = r
			return err
		})
	if err != nil {
		return fmt.Errorf("correction failed: %w", err)
	}
	logger.Info("Correction applied", zap.Int64("id", id), zap.String("kind", string(result.Kind)), zap.Int("changed", result.Changed))

	out := cmd.OutOrStdout()
	if result.Changed == 0 {
		fmt.Fprintln(out, a.styles.Warning.Render(a.catalog.T("correction_noop", result.Kind)))
		return nil
	}
	if err := pres.Update(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(out, a.styles.Success.Render(a.catalog.T("correction_applied", result.Kind, result.Changed)))

	if correctFlags.noRender {
		return nil
	}
	path, err := a.renderer().RenderFile(p, a.cfg.Render.OutputDir, correctFlags.filename)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, a.catalog.T("saved_file", a.styles.Path.Render(path)))
	if a.devMode {
		printStats(out, a, p)
	}
	if !correctFlags.noOpen && a.autoOpen(ctx) {
		if err := openFile(path); err != nil {
			logger.Warn("Failed to open rendered file", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}
