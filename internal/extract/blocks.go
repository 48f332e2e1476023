package extract

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// minParagraphLength is the minimum character count for a text block.
	minParagraphLength = 20
	// maxAnchorRatio is the largest share of a block's characters allowed
	// inside anchor tags before it is treated as related/tags noise.
	maxAnchorRatio = 0.6
	// maxTrailingGarbageLength is the longest stray tail fragment trimmed
	// after the walk.
	maxTrailingGarbageLength = 25
	// maxTrailingGarbageWords is the most words a stray tail fragment may
	// contain.
	maxTrailingGarbageWords = 2
)

// videoEmbedHosts are the iframe hosts kept in content. Everything else
// is discarded.
var videoEmbedHosts = []string{
	"youtube.com",
	"youtube-nocookie.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
}

// Options parameterizes the shared block-building algorithm per
// publisher.
type Options struct {
	// ContainerSelectors is an ordered list of candidate selectors for
	// the primary content container. The first non-empty match wins.
	ContainerSelectors []string
	// NoiseSelectors are removed from the container before the walk
	// (scripts, share widgets, tag lists, related-content blocks).
	NoiseSelectors []string
	// ImageBlocklist holds publisher-specific blocklist substrings in
	// addition to the default set.
	ImageBlocklist []string
	// BaseURL resolves relative image URLs.
	BaseURL *url.URL
}

// defaultNoiseSelectors are stripped from every container regardless of
// publisher.
var defaultNoiseSelectors = []string{
	"script",
	"style",
	"noscript",
	"form",
	".share",
	".social",
	".tags",
	".related",
	".advertisement",
}

// FindContainer locates the primary content container by trying the
// candidate selectors in order. Returns nil when none match.
func FindContainer(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if selector == "" {
			continue
		}
		container := doc.Find(selector).First()
		if container.Length() > 0 && strings.TrimSpace(container.Text()) != "" {
			return container
		}
	}
	return nil
}

// BuildContentBlocks walks the container in document order and emits one
// normalized HTML fragment per surviving node. The container is mutated
// (noise nodes are removed).
func BuildContentBlocks(container *goquery.Selection, opts Options) []string {
	if container == nil || container.Length() == 0 {
		return nil
	}

	for _, selector := range defaultNoiseSelectors {
		container.Find(selector).Remove()
	}
	for _, selector := range opts.NoiseSelectors {
		if selector != "" {
			container.Find(selector).Remove()
		}
	}

	var blocks []string
	container.Find("p, h2, h3, h4, img, iframe").Each(func(_ int, node *goquery.Selection) {
		if block := buildBlock(node, opts); block != "" {
			blocks = append(blocks, block)
		}
	})

	return trimTrailingGarbage(blocks)
}

// buildBlock converts one walked node into a normalized fragment, or
// returns empty when the node is noise.
func buildBlock(node *goquery.Selection, opts Options) string {
	nodeName := goquery.NodeName(node)
	switch nodeName {
	case "img":
		return buildImageBlock(node, opts)
	case "iframe":
		return buildVideoBlock(node)
	case "h2", "h3", "h4":
		text := normalizeSpace(node.Text())
		if text == "" || IsNavigationText(text) {
			return ""
		}
		return fmt.Sprintf("<%s>%s</%s>", nodeName, html.EscapeString(text), nodeName)
	case "p":
		return buildParagraphBlock(node)
	default:
		return ""
	}
}

// buildParagraphBlock emits a paragraph unless it looks like byline,
// navigation, or link-list noise.
func buildParagraphBlock(node *goquery.Selection) string {
	// Paragraphs that wrap an image are handled by the img walk.
	if node.Find("img").Length() > 0 && strings.TrimSpace(node.Text()) == "" {
		return ""
	}

	text := normalizeSpace(node.Text())
	if text == "" || IsByline(text) || IsNavigationText(text) {
		return ""
	}
	if len([]rune(text)) < minParagraphLength {
		return ""
	}

	anchorText := normalizeSpace(node.Find("a").Text())
	if anchorText != "" {
		ratio := float64(len([]rune(anchorText))) / float64(len([]rune(text)))
		if ratio > maxAnchorRatio {
			return ""
		}
	}

	return "<p>" + html.EscapeString(text) + "</p>"
}

// buildImageBlock emits a figure for an in-body image that survives
// normalization and the blocklist.
func buildImageBlock(node *goquery.Selection, opts Options) string {
	candidate := firstImageAttr(node)
	resolved := NormalizeImageURL(candidate, opts.BaseURL, opts.ImageBlocklist)
	if resolved == "" {
		return ""
	}

	alt := normalizeSpace(node.AttrOr("alt", ""))
	return fmt.Sprintf(`<figure><img src="%s" alt="%s"></figure>`,
		html.EscapeString(resolved), html.EscapeString(alt))
}

// firstImageAttr returns the first populated image source attribute,
// preferring lazy-load attributes which carry the real asset.
func firstImageAttr(node *goquery.Selection) string {
	for _, attr := range []string{"data-src", "data-original", "src"} {
		if value, exists := node.Attr(attr); exists && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// buildVideoBlock keeps iframes pointing at known video-embed hosts.
func buildVideoBlock(node *goquery.Selection) string {
	src := strings.TrimSpace(node.AttrOr("src", ""))
	if src == "" {
		return ""
	}

	parsed, err := url.Parse(src)
	if err != nil || parsed.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	for _, allowed := range videoEmbedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return fmt.Sprintf(
				`<iframe src="%s" frameborder="0" allowfullscreen></iframe>`,
				html.EscapeString(src))
		}
	}

	return ""
}

// trimTrailingGarbage pops stray short tail fragments (tag names, social
// labels) left over from incomplete noise stripping.
func trimTrailingGarbage(blocks []string) []string {
	for len(blocks) > 0 {
		last := blocks[len(blocks)-1]
		if !isTrailingGarbage(last) {
			break
		}
		blocks = blocks[:len(blocks)-1]
	}
	return blocks
}

// isTrailingGarbage matches short word-only paragraph fragments with no
// sentence punctuation.
func isTrailingGarbage(block string) bool {
	if !strings.HasPrefix(block, "<p>") {
		return false
	}
	text := strings.TrimSuffix(strings.TrimPrefix(block, "<p>"), "</p>")
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	if len([]rune(text)) > maxTrailingGarbageLength {
		return false
	}
	if strings.ContainsAny(text, ".!?:,") {
		return false
	}
	return len(strings.Fields(text)) <= maxTrailingGarbageWords
}

// JoinBlocks concatenates the surviving fragments. An empty result falls
// back to wrapping the summary in a single paragraph.
func JoinBlocks(blocks []string, fallbackSummary string) string {
	if len(blocks) == 0 {
		summary := normalizeSpace(fallbackSummary)
		if summary == "" {
			return ""
		}
		return "<p>" + html.EscapeString(summary) + "</p>"
	}
	return strings.Join(blocks, "\n")
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
