package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TableData is parsed tabular content. Header holds the column titles.
type TableData struct {
	Header []string
	Rows   [][]string
}

// ParseTable parses TABLE| markup. The first line carries the headers;
// later non-empty lines with at least two cells become rows. Empty cells
// are dropped. The result is valid only with at least one data row and at
// least two header columns.
func ParseTable(content string) (TableData, bool) {
	if !IsTable(content) {
		return TableData{}, false
	}

	var t TableData
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, TablePrefix) && t.Header == nil {
			t.Header = splitCells(strings.TrimPrefix(line, TablePrefix))
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			continue
		}
		t.Rows = append(t.Rows, splitCells(line))
	}

	if len(t.Header) < 2 || len(t.Rows) < 1 {
		return TableData{}, false
	}
	return t, true
}

func splitCells(line string) []string {
	var cells []string
	for _, c := range strings.Split(line, "|") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// Clip limits the table to maxRows rows (header included) and maxCols
// columns. Every row is padded or cut to the resulting column count.
func (t TableData) Clip(maxRows, maxCols int) TableData {
	cols := len(t.Header)
	if cols > maxCols {
		cols = maxCols
	}
	rows := t.Rows
	if len(rows) > maxRows-1 {
		rows = rows[:maxRows-1]
	}

	out := TableData{Header: fit(t.Header, cols), Rows: make([][]string, len(rows))}
	for i, r := range rows {
		out.Rows[i] = fit(r, cols)
	}
	return out
}

func fit(cells []string, n int) []string {
	out := make([]string, n)
	copy(out, cells)
	return out
}

// Cols returns the column count.
func (t TableData) Cols() int { return len(t.Header) }

var listMarker = regexp.MustCompile(`^(?:[•\-*–]|\d+[.)])\s*`)

// ListItems splits content into at most six list items. Continuation lines
// are joined onto the preceding item. Content without any lines falls back
// to sentences.
func ListItems(content string) []string {
	var items []string
	current := ""
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if listMarker.MatchString(line) {
			if current != "" {
				items = append(items, current)
			}
			current = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
			continue
		}
		if current != "" {
			current += " " + line
		} else {
			current = line
		}
	}
	if current != "" {
		items = append(items, current)
	}

	if len(items) == 0 {
		for _, s := range strings.Split(content, ".") {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
	}
	if len(items) > 6 {
		items = items[:6]
	}
	return items
}

var comparisonPairs = [][2]*regexp.Regexp{
	{regexp.MustCompile(`(?i)преимущества`), regexp.MustCompile(`(?i)недостатки`)},
	{regexp.MustCompile(`(?i)плюсы`), regexp.MustCompile(`(?i)минусы`)},
	{regexp.MustCompile(`(?i)\badvantages\b`), regexp.MustCompile(`(?i)\bdisadvantages\b`)},
	{regexp.MustCompile(`(?i)\bpros\b`), regexp.MustCompile(`(?i)\bcons\b`)},
}

// SplitComparison divides content into two columns. A known pair of
// headings splits at the second heading; otherwise the text is split at
// the first space after its midpoint.
func SplitComparison(content string) (left, right string) {
	for _, pair := range comparisonPairs {
		first, second := pair[0], pair[1]
		if !first.MatchString(content) {
			continue
		}
		loc := second.FindStringIndex(content)
		if loc == nil {
			continue
		}
		left = first.ReplaceAllLiteralString(content[:loc[0]], "")
		right = content[loc[1]:]
		return trimHeading(left), trimHeading(right)
	}

	runes := []rune(content)
	mid := len(runes) / 2
	for mid < len(runes) && !unicode.IsSpace(runes[mid]) {
		mid++
	}
	return strings.TrimSpace(string(runes[:mid])), strings.TrimSpace(string(runes[mid:]))
}

func trimHeading(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), ":-–"))
}

// ProcessSteps returns up to five sentences longer than ten characters.
func ProcessSteps(content string) []string {
	var steps []string
	for _, s := range strings.Split(content, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > 10 {
			steps = append(steps, s)
		}
		if len(steps) == 5 {
			break
		}
	}
	return steps
}
