package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// turkishCase handles dotted/dotless i correctly when case-folding
// Turkish UI labels.
var turkishCase = unicode.TurkishCase

// bylinePattern matches publisher bylines of the form "Name | DD.MM.YYYY".
// The name part allows Turkish letters, dots, and spaces.
var bylinePattern = regexp.MustCompile(`([\p{L}][\p{L}.\s]{1,60}?)\s*\|\s*(\d{2}\.\d{2}\.\d{4})`)

// navigationWords are all-caps UI labels that leak into scraped bodies
// from menus and share widgets.
var navigationWords = map[string]bool{
	"ANASAYFA":        true,
	"SON DAKİKA":      true,
	"GÜNDEM":          true,
	"EKONOMİ":         true,
	"SPOR":            true,
	"DÜNYA":           true,
	"TEKNOLOJİ":       true,
	"MAGAZİN":         true,
	"FOTO GALERİ":     true,
	"VİDEO":           true,
	"VİDEO GALERİ":    true,
	"PAYLAŞ":          true,
	"İLGİLİ HABERLER": true,
	"ETİKETLER":       true,
	"TÜMÜ":            true,
}

// IsByline reports whether the text is a "Name | DD.MM.YYYY" byline. Used
// to drop byline lines from content blocks.
func IsByline(text string) bool {
	trimmed := strings.TrimSpace(text)
	loc := bylinePattern.FindStringIndex(trimmed)
	return loc != nil && loc[0] == 0
}

// FindByline scans free text for a byline and returns the author name and
// publication date (DD.MM.YYYY). Both are empty when no byline is found.
func FindByline(text string) (author, date string) {
	match := bylinePattern.FindStringSubmatch(text)
	if match == nil {
		return "", ""
	}
	return strings.TrimSpace(match[1]), match[2]
}

// IsNavigationText reports whether the text is a known all-caps UI label
// rather than article prose.
func IsNavigationText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if navigationWords[trimmed] {
		return true
	}
	// Short all-caps fragments are menu leakage even when not in the
	// known set.
	const maxNavigationLength = 30
	if len([]rune(trimmed)) <= maxNavigationLength &&
		trimmed == strings.ToUpperSpecial(turkishCase, trimmed) &&
		trimmed != strings.ToLowerSpecial(turkishCase, trimmed) {
		words := strings.Fields(trimmed)
		return len(words) <= 3
	}
	return false
}
