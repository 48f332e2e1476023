// Package sources implements the per-publisher adapters that discover and
// fetch articles. One shared algorithm is parameterized by a Profile per
// publisher.
package sources

import "strings"

// IndexKind describes how a source's index URLs are shaped.
type IndexKind int

const (
	// IndexRSS indexes are RSS/Atom feeds parsed directly into metadata.
	IndexRSS IndexKind = iota
	// IndexHTML indexes are category pages mined for article links.
	IndexHTML
)

// Profile holds the publisher-specific tuning for the shared adapter
// algorithm: selector lists, link-shape rules, and blocklist extras.
type Profile struct {
	// Name is the source identifier stored on articles (e.g. "aa").
	Name string
	// IndexKind selects RSS or HTML link discovery.
	IndexKind IndexKind
	// LinkSelectors locate candidate article anchors on HTML index pages.
	LinkSelectors []string
	// AllowPatterns, when non-empty, require a candidate URL to contain
	// at least one of the substrings.
	AllowPatterns []string
	// ExcludePatterns reject candidate URLs containing any substring
	// (galleries, videos, infographics).
	ExcludePatterns []string
	// TitleSelectors locate the article heading, tried in order before
	// the page <title> fallback.
	TitleSelectors []string
	// ContainerSelectors locate the article body, tried in order.
	ContainerSelectors []string
	// NoiseSelectors are publisher-specific noise removed before the
	// block walk.
	NoiseSelectors []string
	// ImageBlocklist holds publisher-specific blocklist substrings.
	ImageBlocklist []string
}

// AllowsURL applies the profile's link-shape rules to a candidate URL.
func (p *Profile) AllowsURL(candidate string) bool {
	lower := strings.ToLower(candidate)

	for _, pattern := range p.ExcludePatterns {
		if pattern != "" && strings.Contains(lower, strings.ToLower(pattern)) {
			return false
		}
	}

	if len(p.AllowPatterns) == 0 {
		return true
	}
	for _, pattern := range p.AllowPatterns {
		if pattern != "" && strings.Contains(lower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
