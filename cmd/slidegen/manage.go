package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"slidegen/cmd/slidegen/ui"
	"slidegen/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	showRaw        bool
	renderFilename string
	renderOpen     bool
	clearYes       bool
)

// listCmd lists stored presentations.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presentations",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// showCmd prints a stored outline.
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored outline as markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// renderCmd renders a stored presentation again.
var renderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Render a stored presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored presentation (requires --yes)",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

// filesCmd lists rendered documents in the output directory.
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List rendered files",
	Args:  cobra.NoArgs,
	RunE:  runFiles,
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a rendered file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilesDelete,
}

func registerManageFlags() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown without terminal styling")
	renderCmd.Flags().StringVar(&renderFilename, "filename", "", "Output file name (default: derived from the title)")
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "Open the rendered file")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deleting all presentations")
	filesCmd.AddCommand(filesDeleteCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid presentation id %q", s)
	}
	return id, nil
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pres, err := a.presentations()
	if err != nil {
		return err
	}
	list, err := pres.List(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, a.catalog.T("no_saved"))
		return nil
	}
	t := ui.NewTable(a.catalog.T("saved_presentations"),
		a.catalog.T("col_id"), a.catalog.T("col_title"), a.catalog.T("col_language"),
		a.catalog.T("col_sections"), a.catalog.T("col_slides"), a.catalog.T("col_updated"))
	for _, s := range list {
		t.AddRow(strconv.FormatInt(s.ID, 10), s.Title, s.Language,
			strconv.Itoa(s.Sections), strconv.Itoa(s.Slides), formatTime(s.UpdatedAt))
	}
	fmt.Fprint(out, t.View(a.styles))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pres, err := a.presentations()
	if err != nil {
		return err
	}
	p, err := pres.Get(context.Background(), id)
	if err != nil {
		return err
	}
	text, err := ui.RenderMarkdown(ui.OutlineMarkdown(p), 80, showRaw)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pres, err := a.presentations()
	if err != nil {
		return err
	}
	p, err := pres.Get(context.Background(), id)
	if err != nil {
		return err
	}
	path, err := a.renderer().RenderFile(p, a.cfg.Render.OutputDir, renderFilename)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T("saved_file", a.styles.Path.Render(path)))
	if renderOpen {
		if err := openFile(path); err != nil {
			logger.Warn("Failed to open rendered file", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pres, err := a.presentations()
	if err != nil {
		return err
	}
	if err := pres.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T("deleted", id))
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return errors.New("refusing to delete all presentations without --yes")
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pres, err := a.presentations()
	if err != nil {
		return err
	}
	n, err := pres.ClearAll(context.Background())
	if err != nil {
		return err
	}
	logger.Info("Cleared presentations", zap.Int64("count", n))
	fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T("cleared"))
	return nil
}

func runFiles(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	files, err := render.ListFiles(a.cfg.Render.OutputDir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, a.catalog.T("no_files"))
		return nil
	}
	t := ui.NewTable(a.catalog.T("rendered_files"),
		a.catalog.T("col_file"), a.catalog.T("col_size"), a.catalog.T("col_updated"))
	for _, f := range files {
		t.AddRow(f.Name, formatSize(f.Size), formatTime(f.ModTime))
	}
	fmt.Fprint(out, t.View(a.styles))
	return nil
}

func runFilesDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := render.DeleteFile(a.cfg.Render.OutputDir, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.styles.Success.Render("Deleted "+args[0]))
	return nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
