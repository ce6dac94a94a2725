package correction

import (
	"strings"
	"unicode"
)

// Kind is the part of a presentation an instruction targets.
type Kind string

const (
	KindTitle     Kind = "title"
	KindContent   Kind = "content"
	KindStructure Kind = "structure"
	KindStyle     Kind = "style"
	KindGeneral   Kind = "general"
)

// Checked in order; the first rule with a matching keyword wins.
var rules = []struct {
	kind     Kind
	keywords []string
}{
	{KindTitle, []string{"заголовок", "название", "тему", "переименуй", "title", "rename"}},
	{KindContent, []string{"содержание", "текст", "информацию", "добавь", "убери", "content", "text"}},
	{KindStructure, []string{"структуру", "слайды", "секции", "разделы", "structure", "sections", "slides"}},
	{KindStyle, []string{"стиль", "оформление", "дизайн", "формат", "style", "design", "tone"}},
}

// Classify maps an instruction to the kind of correction it asks for.
// A keyword matches the start of a word, so "текст" fires on "текста"
// while "tone" stays silent on "milestone".
func Classify(instruction string) Kind {
	words := strings.FieldsFunc(strings.ToLower(instruction), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, r := range rules {
		for _, kw := range r.keywords {
			for _, w := range words {
				if strings.HasPrefix(w, kw) {
					return r.kind
				}
			}
		}
	}
	return KindGeneral
}
