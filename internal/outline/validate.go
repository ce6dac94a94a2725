package outline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	sectionNouns = []string{"секция", "section", "раздел", "часть", "part"}
	slideNouns   = []string{"слайд", "slide", "страница", "page", "раздел", "section"}

	placeholderPhrases = []string{
		"содержимое для слайда",
		"content for slide",
		"placeholder",
		"заглушка",
		"введите текст",
		"добавьте контент",
	}

	// Slide titles matching any of these gain nothing from a web lookup.
	lowValueTitles = []string{
		"introduction", "conclusion", "summary", "thank you", "questions", "agenda",
		"введение", "заключение", "итоги", "спасибо", "вопросы", "план",
	}
)

// MinContentLength is the shortest body accepted from the model.
const MinContentLength = 20

// ValidSectionTitle rejects short titles and generic ones like "Section 2".
func ValidSectionTitle(title string) bool {
	return validTitle(title, sectionNouns)
}

// ValidSlideTitle rejects short titles and generic ones like "Slide 3".
func ValidSlideTitle(title string) bool {
	return validTitle(title, slideNouns)
}

func validTitle(title string, generic []string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if utf8.RuneCountInString(t) < 3 {
		return false
	}
	for _, noun := range generic {
		if strings.HasPrefix(t, noun) && strings.IndexFunc(t, unicode.IsDigit) >= 0 {
			return false
		}
	}
	return true
}

// ValidContent reports whether a slide body is long enough and free of
// placeholder phrasing.
func ValidContent(content string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinContentLength {
		return false
	}
	return !IsPlaceholder(content)
}

// IsPlaceholder reports whether content contains a known filler phrase.
func IsPlaceholder(content string) bool {
	lower := strings.ToLower(content)
	for _, p := range placeholderPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// WorthSearching decides whether a slide title is specific enough to
// benefit from web enrichment.
func WorthSearching(title string) bool {
	t := strings.TrimSpace(title)
	if utf8.RuneCountInString(t) < 5 {
		return false
	}
	words := titleWords(t)
	for _, p := range lowValueTitles {
		if containsPhrase(words, titleWords(p)) {
			return false
		}
	}
	return true
}

func titleWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsPhrase reports whether phrase occurs in words as a run of whole words.
func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// pickTitles keeps valid titles and truncates to count. It returns false
// when fewer than count survive.
func pickTitles(titles []string, count int, valid func(string) bool) ([]string, bool) {
	out := make([]string, 0, count)
	for _, t := range titles {
		if valid(t) {
			out = append(out, strings.TrimSpace(t))
		}
	}
	if len(out) < count {
		return nil, false
	}
	return out[:count], true
}
