// Package feed provides RSS and Atom feed parsing for article discovery.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// httpPrefix is the scheme prefix used to decide if a GUID is a usable URL.
const httpPrefix = "http"

// Item represents a single entry extracted from an RSS or Atom feed.
type Item struct {
	URL         string
	Title       string
	Summary     string
	ImageURL    string
	Keywords    string
	PublishedAt *time.Time
}

// Parse parses an RSS or Atom feed body and returns the discovered items.
// Entries without a usable link are silently skipped. An empty feed
// returns a non-nil empty slice.
func Parse(ctx context.Context, body string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	parser := gofeed.NewParser()

	parsed, err := parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))

	for _, entry := range parsed.Items {
		link := extractLink(entry)
		if link == "" {
			continue
		}

		items = append(items, Item{
			URL:         link,
			Title:       strings.TrimSpace(entry.Title),
			Summary:     strings.TrimSpace(entry.Description),
			ImageURL:    extractImage(entry),
			Keywords:    strings.Join(entry.Categories, ", "),
			PublishedAt: entry.PublishedParsed,
		})
	}

	return items, nil
}

// extractLink returns the best available URL from a feed entry. It
// prefers the explicit Link field, falling back to the GUID if it looks
// like an HTTP URL.
func extractLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return strings.TrimSpace(entry.Link)
	}

	if strings.HasPrefix(entry.GUID, httpPrefix) {
		return entry.GUID
	}

	return ""
}

// extractImage returns the entry's image from the image element or the
// first image enclosure. Feed stubs frequently carry neither; the article
// page's og:image fills the gap later.
func extractImage(entry *gofeed.Item) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return strings.TrimSpace(entry.Image.URL)
	}

	for _, enclosure := range entry.Enclosures {
		if strings.HasPrefix(enclosure.Type, "image/") && enclosure.URL != "" {
			return strings.TrimSpace(enclosure.URL)
		}
	}

	return ""
}
