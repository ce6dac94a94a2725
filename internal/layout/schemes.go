package layout

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// Color is an sRGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scheme is a named five-color palette applied to a whole deck.
type Scheme struct {
	Name       string
	Primary    Color
	Secondary  Color
	Accent     Color
	Background Color
	Text       Color
}

func rgb(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

var schemes = []Scheme{
	{"modern_blue", rgb(41, 98, 255), rgb(116, 185, 255), rgb(255, 107, 107), rgb(248, 250, 252), rgb(30, 41, 59)},
	{"elegant_purple", rgb(139, 69, 255), rgb(196, 181, 253), rgb(255, 154, 0), rgb(250, 249, 255), rgb(55, 48, 163)},
	{"warm_orange", rgb(255, 107, 0), rgb(255, 183, 77), rgb(34, 197, 94), rgb(255, 251, 235), rgb(124, 45, 18)},
	{"forest_green", rgb(34, 197, 94), rgb(134, 239, 172), rgb(239, 68, 68), rgb(240, 253, 244), rgb(20, 83, 45)},
	{"ocean_teal", rgb(20, 184, 166), rgb(153, 246, 228), rgb(251, 146, 60), rgb(240, 253, 250), rgb(19, 78, 74)},
	{"sunset_pink", rgb(236, 72, 153), rgb(251, 207, 232), rgb(59, 130, 246), rgb(253, 242, 248), rgb(131, 24, 67)},
	{"corporate_navy", rgb(30, 58, 138), rgb(147, 197, 253), rgb(245, 158, 11), rgb(248, 250, 252), rgb(30, 41, 59)},
	{"creative_magenta", rgb(192, 38, 211), rgb(233, 213, 255), rgb(16, 185, 129), rgb(253, 244, 255), rgb(112, 26, 117)},
	{"deep_crimson", rgb(220, 38, 127), rgb(252, 165, 165), rgb(34, 197, 94), rgb(254, 242, 242), rgb(127, 29, 29)},
	{"royal_indigo", rgb(79, 70, 229), rgb(165, 180, 252), rgb(251, 191, 36), rgb(238, 242, 255), rgb(30, 27, 75)},
	{"emerald_mint", rgb(5, 150, 105), rgb(110, 231, 183), rgb(249, 115, 22), rgb(236, 253, 245), rgb(6, 78, 59)},
	{"golden_amber", rgb(217, 119, 6), rgb(254, 215, 170), rgb(168, 85, 247), rgb(255, 251, 235), rgb(120, 53, 15)},
	{"steel_slate", rgb(71, 85, 105), rgb(203, 213, 225), rgb(239, 68, 68), rgb(248, 250, 252), rgb(15, 23, 42)},
	{"cosmic_violet", rgb(124, 58, 237), rgb(196, 181, 253), rgb(34, 197, 94), rgb(245, 243, 255), rgb(46, 16, 101)},
	{"cherry_blossom", rgb(244, 63, 94), rgb(252, 231, 243), rgb(59, 130, 246), rgb(255, 241, 242), rgb(136, 19, 55)},
	{"arctic_cyan", rgb(6, 182, 212), rgb(165, 243, 252), rgb(251, 146, 60), rgb(236, 254, 255), rgb(22, 78, 99)},
	{"sunset_coral", rgb(251, 113, 133), rgb(254, 205, 211), rgb(16, 185, 129), rgb(255, 228, 230), rgb(159, 18, 57)},
	{"midnight_blue", rgb(30, 64, 175), rgb(147, 197, 253), rgb(245, 158, 11), rgb(239, 246, 255), rgb(23, 37, 84)},
	{"forest_moss", rgb(22, 101, 52), rgb(187, 247, 208), rgb(239, 68, 68), rgb(240, 253, 244), rgb(14, 59, 30)},
	{"lavender_dream", rgb(147, 51, 234), rgb(221, 214, 254), rgb(251, 146, 60), rgb(250, 245, 255), rgb(88, 28, 135)},
	{"bronze_gold", rgb(180, 83, 9), rgb(253, 186, 116), rgb(168, 85, 247), rgb(255, 247, 237), rgb(154, 52, 18)},
	{"ocean_depth", rgb(15, 118, 110), rgb(153, 246, 228), rgb(251, 113, 133), rgb(240, 253, 250), rgb(19, 78, 74)},
	{"ruby_wine", rgb(190, 18, 60), rgb(252, 165, 165), rgb(34, 197, 94), rgb(255, 228, 230), rgb(127, 29, 29)},
}

// Schemes returns every palette.
func Schemes() []Scheme {
	return append([]Scheme(nil), schemes...)
}

// SchemeByName looks a palette up by name.
func SchemeByName(name string) (Scheme, bool) {
	for _, s := range schemes {
		if s.Name == name {
			return s, true
		}
	}
	return Scheme{}, false
}

type category struct {
	name     string
	keywords []string
	palettes []string
}

// categories are checked in order; a keyword matches the start of any word
// of the title.
var categories = []category{
	{"business",
		[]string{"business", "corporate", "finance", "company", "econom", "бизнес", "финанс", "компани", "корпорат", "эконом"},
		[]string{"corporate_navy", "steel_slate", "midnight_blue"}},
	{"creative",
		[]string{"creative", "design", "art", "творч", "дизайн", "искусств"},
		[]string{"creative_magenta", "lavender_dream", "cherry_blossom"}},
	{"nature",
		[]string{"nature", "eco", "green", "forest", "plant", "природ", "эколог", "лес", "растен"},
		[]string{"forest_green", "emerald_mint", "forest_moss"}},
	{"tech",
		[]string{"tech", "digital", "computer", "internet", "software", "технолог", "цифров", "компьютер", "интернет", "программ"},
		[]string{"modern_blue", "arctic_cyan", "cosmic_violet"}},
	{"medical",
		[]string{"medicine", "medical", "health", "treatment", "doctor", "медицин", "здоров", "лечени", "врач"},
		[]string{"ocean_teal", "arctic_cyan", "emerald_mint"}},
	{"education",
		[]string{"education", "science", "study", "research", "образован", "наук", "учеб", "исследован"},
		[]string{"royal_indigo", "elegant_purple", "cosmic_violet"}},
	{"energy",
		[]string{"energy", "industry", "production", "factory", "энерг", "промышлен", "производств", "завод"},
		[]string{"golden_amber", "bronze_gold", "warm_orange"}},
	{"beauty",
		[]string{"love", "beauty", "fashion", "style", "любов", "красот", "мода", "стиль"},
		[]string{"sunset_pink", "cherry_blossom", "sunset_coral"}},
	{"sport",
		[]string{"sport", "fitness", "active", "training", "спорт", "фитнес", "трениров"},
		[]string{"deep_crimson", "ruby_wine", "warm_orange"}},
	{"travel",
		[]string{"ocean", "sea", "travel", "vacation", "океан", "море", "путешеств", "отпуск"},
		[]string{"ocean_depth", "ocean_teal", "arctic_cyan"}},
}

// Category returns the name of the first category whose keywords match
// title, or "" when none does.
func Category(title string) string {
	if c, ok := matchCategory(title); ok {
		return c.name
	}
	return ""
}

func matchCategory(title string) (category, bool) {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, c := range categories {
		for _, kw := range c.keywords {
			for _, w := range words {
				if strings.HasPrefix(w, kw) {
					return c, true
				}
			}
		}
	}
	return category{}, false
}

// ChooseScheme picks uniformly among the first matching category's
// palettes, or among all palettes when no category matches.
func ChooseScheme(rng *rand.Rand, title string) Scheme {
	if c, ok := matchCategory(title); ok {
		name := c.palettes[rng.Intn(len(c.palettes))]
		if s, ok := SchemeByName(name); ok {
			return s
		}
	}
	return schemes[rng.Intn(len(schemes))]
}
