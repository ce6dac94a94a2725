package main

import (
	"fmt"
	"io"
	"strconv"

	"slidegen/cmd/slidegen/ui"
	"slidegen/internal/model"

	"go.uber.org/zap"
)

// printStats writes the outline shape and the non-zero metrics of this run.
func printStats(w io.Writer, a *app, p *model.Presentation) {
	st := p.Stats()
	shape := ui.NewTable(st.Title, a.catalog.T("col_sections"), a.catalog.T("col_slides"), a.catalog.T("col_language"))
	shape.AddRow(strconv.Itoa(st.Sections), strconv.Itoa(st.Slides), st.Language)
	fmt.Fprintln(w)
	fmt.Fprint(w, shape.View(a.styles))

	samples, err := a.metrics.Snapshot()
	if err != nil {
		logger.Warn("Failed to gather metrics", zap.Error(err))
		return
	}
	t := ui.NewTable("", a.catalog.T("col_metric"), a.catalog.T("col_value"))
	for _, s := range samples {
		name := s.Name
		if s.Labels != "" {
			name += "{" + s.Labels + "}"
		}
		t.AddRow(name, strconv.FormatFloat(s.Value, 'f', -1, 64))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, t.View(a.styles))
}
