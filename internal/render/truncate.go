package render

import (
	"strings"

	"slidegen/internal/classify"
)

const ellipsis = "..."

// budgets caps the text of a content slide, title included, per layout.
var budgets = map[classify.Kind]int{
	classify.Plain:      400,
	classify.List:       300,
	classify.Comparison: 350,
	classify.Highlight:  250,
	classify.Process:    400,
}

// Budget returns the character budget for kind.
func Budget(kind classify.Kind) int {
	if b, ok := budgets[kind]; ok {
		return b
	}
	return budgets[classify.Plain]
}

// Truncate shortens text to at most limit characters. It cuts after the last
// sentence end when that lies beyond 70% of limit, otherwise it cuts hard and
// appends "..." within the budget.
func Truncate(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	end := -1
	for i, c := range r[:limit] {
		if c == '.' || c == '!' || c == '?' {
			end = i
		}
	}
	if end >= 0 && float64(end) > float64(limit)*0.7 {
		return string(r[:end+1])
	}
	cut := limit - len(ellipsis)
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRight(string(r[:cut]), " ") + ellipsis
}
