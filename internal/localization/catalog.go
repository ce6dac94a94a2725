// Package localization holds user-facing strings and LLM prompt templates
// for every supported language. A Catalog is created once and passed to the
// components that need it.
package localization

import (
	"fmt"
	"sort"
	"strings"
)

// Language identifies a supported content/interface language.
type Language string

const (
	English Language = "english"
	Russian Language = "russian"
)

// DefaultLanguage is used when nothing else is configured.
const DefaultLanguage = English

var aliases = map[string]Language{
	"english": English,
	"en":      English,
	"eng":     English,
	"russian": Russian,
	"ru":      Russian,
	"rus":     Russian,
	"русский": Russian,
}

// ParseLanguage resolves a user-supplied language name.
func ParseLanguage(s string) (Language, error) {
	if l, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return "", fmt.Errorf("unsupported language %q (supported: %s)", s, strings.Join(Supported(), ", "))
}

// Supported lists canonical language names.
func Supported() []string {
	out := make([]string, 0, len(texts))
	for l := range texts {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}

// PromptKind names an LLM prompt template.
type PromptKind string

const (
	PromptSectionTitles    PromptKind = "section_titles"
	PromptSlideTitles      PromptKind = "slide_titles"
	PromptSlideContent     PromptKind = "slide_content"
	PromptSummary          PromptKind = "presentation_summary"
	PromptTitleHeader      PromptKind = "title_slide_header"
	PromptEnhanceContent   PromptKind = "enhance_content"
	PromptFilename         PromptKind = "filename"
	PromptCorrectTitle     PromptKind = "correct_title"
	PromptCorrectContent   PromptKind = "correct_content"
	PromptCorrectStructure PromptKind = "correct_structure"
	PromptCorrectStyle     PromptKind = "correct_style"
	PromptCorrectGeneral   PromptKind = "correct_general"
)

// Catalog resolves strings and prompts for one language.
type Catalog struct {
	lang    Language
	strings map[string]string
	prompts map[PromptKind]string
}

// New returns the catalog for lang. Unknown languages get the default.
func New(lang Language) *Catalog {
	if _, ok := texts[lang]; !ok {
		lang = DefaultLanguage
	}
	return &Catalog{lang: lang, strings: texts[lang], prompts: prompts[lang]}
}

// Language reports the catalog language.
func (c *Catalog) Language() Language { return c.lang }

// T formats the string stored under key. Missing keys fall back to English,
// then to the key itself.
func (c *Catalog) T(key string, args ...any) string {
	text, ok := c.strings[key]
	if !ok {
		text, ok = texts[English][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// Prompt fills the {placeholders} of a prompt template. Unknown kinds return
// an empty string.
func (c *Catalog) Prompt(kind PromptKind, vars map[string]string) string {
	tmpl, ok := c.prompts[kind]
	if !ok {
		return ""
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(tmpl))
}
