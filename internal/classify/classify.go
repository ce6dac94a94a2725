// Package classify picks a slide layout from the text of a slide and parses
// the small in-band markup slide content may carry.
package classify

import (
	"regexp"
	"strings"
	"unicode"
)

// Kind is a slide layout category.
type Kind string

const (
	Plain      Kind = "plain"
	List       Kind = "list"
	Comparison Kind = "comparison"
	Highlight  Kind = "highlight"
	Process    Kind = "process"
	Table      Kind = "table"
)

// Kinds lists every layout in classification priority order, table first.
var Kinds = []Kind{Table, List, Comparison, Highlight, Process, Plain}

// TablePrefix marks tabular slide content.
const TablePrefix = "TABLE|"

// IsTable reports whether content carries the table marker.
func IsTable(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), TablePrefix)
}

type rule struct {
	kind  Kind
	match func(lower string) bool
}

var (
	bulletLine = regexp.MustCompile(`(?m)^\s*(?:[•\-*–]|\d+[.)])`)
	vsPattern  = regexp.MustCompile(`\bvs\.?\b|\bversus\b`)
)

// rules are evaluated in order over lowercased content; the first match wins.
var rules = []rule{
	{List, func(s string) bool {
		return bulletLine.MatchString(s) ||
			containsAny(s, "steps:", "шаги:", "этапы:", "list:", "список:")
	}},
	{Comparison, func(s string) bool {
		return both(s, "pros", "cons") ||
			both(s, "advantages", "disadvantages") ||
			both(s, "плюсы", "минусы") ||
			both(s, "преимущества", "недостатки") ||
			vsPattern.MatchString(s)
	}},
	{Highlight, func(s string) bool {
		return containsAny(s, "important", "важно", "ключев", "главн") || hasWord(s, "key")
	}},
	{Process, func(s string) bool {
		return hasWord(s, "first", "then") ||
			containsAny(s, "algorithm", "сначала", "затем", "алгоритм", "процесс")
	}},
}

// Classify maps slide content to a layout. It is total: empty or
// unrecognised content yields Plain.
func Classify(content string) Kind {
	if IsTable(content) {
		return Table
	}
	lower := strings.ToLower(content)
	if strings.TrimSpace(lower) == "" {
		return Plain
	}
	for _, r := range rules {
		if r.match(lower) {
			return r.kind
		}
	}
	return Plain
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func both(s, a, b string) bool {
	return hasWord(s, a) && hasWord(s, b)
}

// hasWord matches whole words only, so "cons" does not fire on "consider".
func hasWord(s string, words ...string) bool {
	for _, tok := range tokenize(s) {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '_' || unicode.IsDigit(r) || unicode.IsLetter(r))
	})
}
