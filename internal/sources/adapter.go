package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/haberhub/scraper/internal/config"
	"github.com/haberhub/scraper/internal/domain"
	"github.com/haberhub/scraper/internal/extract"
	"github.com/haberhub/scraper/internal/feed"
	"github.com/haberhub/scraper/internal/logger"
)

// ErrNoTitle marks a fetched page with no recoverable title. Such pages
// are rejected, not treated as failures.
var ErrNoTitle = errors.New("article has no title")

// Candidate is one discovered article URL, optionally seeded with feed
// metadata when the index was an RSS feed.
type Candidate struct {
	URL  string
	Seed *feed.Item
}

// Adapter discovers and fetches articles for one publisher. Fetching is
// strictly sequential; the collector's limit rule enforces the
// inter-request delay and its request timeout bounds each fetch.
type Adapter struct {
	profile   Profile
	collector *colly.Collector
	log       logger.Interface
	maxLinks  int

	// Per-visit state. Safe because the collector is synchronous and the
	// adapter is driven by a single run at a time.
	lastDoc  *goquery.Document
	lastBody []byte
	lastErr  error
}

// New creates an adapter for the given publisher profile.
func New(profile Profile, cfg config.ScraperConfig, log logger.Interface) (*Adapter, error) {
	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(cfg.RequestTimeout)

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob: "*",
		Delay:      cfg.FetchDelay,
	}); err != nil {
		return nil, fmt.Errorf("failed to set collector limit: %w", err)
	}

	adapter := &Adapter{
		profile:  profile,
		log:      log.WithComponent("adapter." + profile.Name),
		maxLinks: cfg.MaxLinksPerPage,
	}

	collector.OnResponse(func(r *colly.Response) {
		adapter.lastBody = r.Body
		doc, parseErr := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if parseErr != nil {
			adapter.lastErr = fmt.Errorf("parse response: %w", parseErr)
			return
		}
		adapter.lastDoc = doc
	})
	collector.OnError(func(r *colly.Response, err error) {
		adapter.lastErr = err
	})

	adapter.collector = collector
	return adapter, nil
}

// Source returns the publisher identifier.
func (a *Adapter) Source() string {
	return a.profile.Name
}

// fetchDocument visits a URL and returns the parsed document.
func (a *Adapter) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	a.lastDoc = nil
	a.lastBody = nil
	a.lastErr = nil

	visitErr := a.collector.Visit(pageURL)

	if a.lastErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, a.lastErr)
	}
	if visitErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, visitErr)
	}
	if a.lastDoc == nil {
		return nil, fmt.Errorf("fetch %s: empty response", pageURL)
	}

	return a.lastDoc, nil
}

// Discover resolves an index URL into a capped, deduplicated, ordered set
// of article candidates. RSS indexes are parsed directly into metadata;
// HTML indexes are mined for links matching the profile's shape rules.
func (a *Adapter) Discover(ctx context.Context, indexURL string) ([]Candidate, error) {
	if a.profile.IndexKind == IndexRSS {
		return a.discoverFromFeed(ctx, indexURL)
	}
	return a.discoverFromPage(ctx, indexURL)
}

// discoverFromFeed parses an RSS/Atom index. The raw response body goes
// to the feed parser untouched; the HTML document view is not usable for
// XML.
func (a *Adapter) discoverFromFeed(ctx context.Context, feedURL string) ([]Candidate, error) {
	if _, err := a.fetchDocument(ctx, feedURL); err != nil {
		return nil, err
	}

	items, err := feed.Parse(ctx, string(a.lastBody))
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", feedURL, err)
	}

	candidates := make([]Candidate, 0, len(items))
	seen := make(map[string]bool)
	for i := range items {
		item := items[i]
		if seen[item.URL] || !a.profile.AllowsURL(item.URL) {
			continue
		}
		seen[item.URL] = true
		candidates = append(candidates, Candidate{URL: item.URL, Seed: &item})
		if len(candidates) >= a.maxLinks {
			break
		}
	}

	return candidates, nil
}

// discoverFromPage mines an HTML category page for article links.
func (a *Adapter) discoverFromPage(ctx context.Context, pageURL string) ([]Candidate, error) {
	doc, err := a.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", pageURL, err)
	}

	var candidates []Candidate
	seen := make(map[string]bool)

	for _, selector := range a.profile.LinkSelectors {
		if selector == "" || len(candidates) >= a.maxLinks {
			continue
		}
		doc.Find(selector).EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
			href, exists := anchor.Attr("href")
			if !exists {
				return true
			}
			resolved := resolveLink(base, href)
			if resolved == "" || seen[resolved] || !a.profile.AllowsURL(resolved) {
				return true
			}
			seen[resolved] = true
			candidates = append(candidates, Candidate{URL: resolved})
			return len(candidates) < a.maxLinks
		})
	}

	return candidates, nil
}

// resolveLink resolves an anchor href against the index page URL and
// drops fragments and non-HTTP links.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""

	return resolved.String()
}

// Fetch retrieves and extracts one article. Returns ErrNoTitle when the
// page has no recoverable title; other errors indicate fetch or parse
// failures the caller logs and skips.
func (a *Adapter) Fetch(ctx context.Context, candidate Candidate) (*domain.RawArticle, error) {
	doc, err := a.fetchDocument(ctx, candidate.URL)
	if err != nil {
		return nil, err
	}

	title := extract.PageTitle(doc, a.profile.TitleSelectors)
	if title == "" && candidate.Seed != nil {
		title = candidate.Seed.Title
	}
	if title == "" {
		return nil, fmt.Errorf("fetch %s: %w", candidate.URL, ErrNoTitle)
	}

	base, err := url.Parse(candidate.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", candidate.URL, err)
	}

	article := &domain.RawArticle{
		Title:       title,
		Source:      a.profile.Name,
		OriginalURL: candidate.URL,
	}

	container := extract.FindContainer(doc, a.profile.ContainerSelectors)

	article.Summary = a.extractSummary(doc, container, candidate.Seed)
	article.ImageURL = a.extractImage(doc, container, base, candidate.Seed)
	article.Author = extractAuthor(doc, container)
	article.Keywords = extractKeywords(doc, candidate.Seed)

	blocks := extract.BuildContentBlocks(container, extract.Options{
		NoiseSelectors: a.profile.NoiseSelectors,
		ImageBlocklist: a.profile.ImageBlocklist,
		BaseURL:        base,
	})
	article.Content = extract.JoinBlocks(blocks, article.Summary)

	return article, nil
}

// extractSummary prefers the meta description, then the feed stub, then
// the first qualifying paragraph.
func (a *Adapter) extractSummary(doc *goquery.Document, container *goquery.Selection, seed *feed.Item) string {
	if summary := extract.MetaName(doc, "description"); summary != "" {
		return summary
	}
	if summary := extract.MetaProperty(doc, "og:description"); summary != "" {
		return summary
	}
	if seed != nil && seed.Summary != "" {
		return seed.Summary
	}
	if container != nil {
		return extract.FirstParagraph(container)
	}
	return ""
}

// extractImage prefers og:image, then the first in-body image, then the
// feed enclosure, all subject to the blocklist.
func (a *Adapter) extractImage(
	doc *goquery.Document,
	container *goquery.Selection,
	base *url.URL,
	seed *feed.Item,
) string {
	if img := extract.NormalizeImageURL(
		extract.MetaProperty(doc, "og:image"), base, a.profile.ImageBlocklist); img != "" {
		return img
	}

	if container != nil {
		var found string
		container.Find("img").EachWithBreak(func(_ int, node *goquery.Selection) bool {
			candidate, _ := node.Attr("src")
			if candidate == "" {
				candidate, _ = node.Attr("data-src")
			}
			if img := extract.NormalizeImageURL(candidate, base, a.profile.ImageBlocklist); img != "" {
				found = img
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	if seed != nil && seed.ImageURL != "" {
		return extract.NormalizeImageURL(seed.ImageURL, base, a.profile.ImageBlocklist)
	}

	return ""
}

// extractAuthor prefers the meta author tag, falling back to a byline
// pattern scanned across the body text.
func extractAuthor(doc *goquery.Document, container *goquery.Selection) string {
	if author := extract.MetaName(doc, "author"); author != "" {
		return author
	}
	if container != nil {
		if author, _ := extract.FindByline(container.Text()); author != "" {
			return author
		}
	}
	return ""
}

// extractKeywords prefers meta keywords, falling back to feed categories.
func extractKeywords(doc *goquery.Document, seed *feed.Item) string {
	if keywords := extract.MetaName(doc, "keywords"); keywords != "" {
		return keywords
	}
	if seed != nil {
		return seed.Keywords
	}
	return ""
}
