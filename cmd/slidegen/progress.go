package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"slidegen/cmd/slidegen/ui"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// reporter receives progress updates from a running pipeline.
type reporter func(ui.Update)

// runWithProgress runs work while showing its progress. In plain mode
// every update is printed as a line to out. Otherwise a bubbletea view
// runs beside work; work's completion closes the view and Ctrl+C in the
// view cancels work.
func runWithProgress(ctx context.Context, out io.Writer, plain bool, title string, showBar bool, styles ui.Styles,
	work func(ctx context.Context, report reporter) error) error {
	if plain {
		fmt.Fprintln(out, title)
		return work(ctx, func(u ui.Update) { fmt.Fprintln(out, u.Line()) })
	}

	g, gctx := errgroup.WithContext(ctx)
	prog := tea.NewProgram(
		ui.NewProgressModel(title, showBar, styles),
		tea.WithContext(gctx),
		tea.WithOutput(out),
	)

	g.Go(func() error {
		err := work(gctx, func(u ui.Update) { prog.Send(u) })
		prog.Send(ui.DoneMsg{Err: err})
		return err
	})
	g.Go(func() error {
		final, err := prog.Run()
		if err != nil {
			return fmt.Errorf("progress view failed: %w", err)
		}
		if m, ok := final.(ui.ProgressModel); ok && m.Aborted() {
			return context.Canceled
		}
		return nil
	})
	return g.Wait()
}

// plainOutput reports whether progress should be printed as lines: on
// request, or when stderr is not a terminal.
func plainOutput(requested bool) bool {
	if requested {
		return true
	}
	fi, err := os.Stderr.Stat()
	if err != nil {
		return true
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
