package ui

import (
	"fmt"
	"strings"

	"slidegen/internal/classify"
	"slidegen/internal/model"

	"github.com/charmbracelet/glamour"
)

// OutlineMarkdown writes p as markdown: title, summary, then one heading
// per section and slide. Table slides become markdown tables.
func OutlineMarkdown(p *model.Presentation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.DisplayTitle())
	if p.TitleSlideHeader != "" && p.TitleSlideHeader != p.Title {
		fmt.Fprintf(&sb, "*%s*\n\n", p.Title)
	}
	if p.Summary != "" {
		fmt.Fprintf(&sb, "> %s\n\n", p.Summary)
	}
	for i, s := range p.Sections {
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, s.Title)
		for j, slide := range s.Slides {
			fmt.Fprintf(&sb, "### %d.%d %s\n\n", i+1, j+1, slide.Title)
			sb.WriteString(slideMarkdown(slide.Content))
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func slideMarkdown(content string) string {
	t, ok := classify.ParseTable(content)
	if !ok {
		return strings.TrimSpace(content)
	}
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(t.Header, " | ") + " |\n")
	sb.WriteString(strings.Repeat("|---", t.Cols()) + "|\n")
	for _, row := range t.Rows {
		cells := make([]string, t.Cols())
		copy(cells, row)
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderMarkdown renders md for the terminal. plain skips styling and
// returns md as is.
func RenderMarkdown(md string, width int, plain bool) (string, error) {
	if plain {
		return md, nil
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(md)
}
