package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MetaProperty returns the content of a <meta property="..."> tag, or
// empty when absent.
func MetaProperty(doc *goquery.Document, property string) string {
	value, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(value)
}

// MetaName returns the content of a <meta name="..."> tag, or empty when
// absent.
func MetaName(doc *goquery.Document, name string) string {
	value, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return strings.TrimSpace(value)
}

// PageTitle extracts a title by trying the given selectors in order,
// falling back to the <title> tag. Returns empty when nothing matches;
// title absence is the article's validity gate.
func PageTitle(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if selector == "" {
			continue
		}
		title := normalizeSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	return normalizeSpace(doc.Find("title").First().Text())
}

// FirstParagraph returns the first qualifying paragraph in the container,
// used as a summary fallback when the meta description is missing. The
// same noise filters as the block walk apply.
func FirstParagraph(container *goquery.Selection) string {
	var found string
	container.Find("p").EachWithBreak(func(_ int, node *goquery.Selection) bool {
		text := normalizeSpace(node.Text())
		if text == "" || IsByline(text) || IsNavigationText(text) {
			return true
		}
		if len([]rune(text)) < minParagraphLength {
			return true
		}
		found = text
		return false
	})
	return found
}
