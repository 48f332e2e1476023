package ingest

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

// slugSuffixMax bounds the random numeric disambiguator appended to every
// slug so that articles with identical titles never collide.
const slugSuffixMax = 100000

// turkishReplacer transliterates Turkish characters before slugification.
var turkishReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// GenerateSlug derives a URL slug from a title and appends a random
// numeric suffix.
func GenerateSlug(title string) string {
	slug := slugify(title)
	if slug == "" {
		slug = "haber"
	}
	return fmt.Sprintf("%s-%d", slug, rand.IntN(slugSuffixMax))
}

// slugify lowercases, transliterates, and collapses non-alphanumerics
// into single hyphens.
func slugify(title string) string {
	title = turkishReplacer.Replace(title)
	title = strings.ToLower(title)

	var builder strings.Builder
	lastHyphen := true
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			builder.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				builder.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(builder.String(), "-")
}
