// Package extract provides stateless content-extraction helpers shared by
// all source adapters: content-block building, image filtering, byline
// recovery, and noise trimming.
package extract

import (
	"net/url"
	"strings"
)

// minImageURLLength is the shortest candidate URL worth keeping. Anything
// shorter is a fragment or a tracking pixel.
const minImageURLLength = 15

// defaultImageBlocklist lists substrings of known placeholder, logo, and
// watermark assets. A candidate URL containing any of these is treated as
// absent.
var defaultImageBlocklist = []string{
	"logo",
	"no-image",
	"noimage",
	"no_image",
	"placeholder",
	"default.jpg",
	"default.png",
	"favicon",
	"watermark",
	"bip.ly",
	"spacer.gif",
	"blank.gif",
	"1x1.",
}

// IsBlockedImage reports whether the candidate URL matches the default
// blocklist or any of the extra substrings, case-insensitively.
func IsBlockedImage(candidate string, extra []string) bool {
	lower := strings.ToLower(candidate)
	for _, needle := range defaultImageBlocklist {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	for _, needle := range extra {
		if needle != "" && strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// NormalizeImageURL resolves a candidate image URL against the page URL,
// decodes percent-encoding, and applies the blocklist. Returns an empty
// string when the candidate is unusable.
func NormalizeImageURL(candidate string, base *url.URL, extraBlocklist []string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}

	if decoded, err := url.QueryUnescape(candidate); err == nil {
		candidate = decoded
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}

	resolved := parsed.String()
	if len(resolved) < minImageURLLength {
		return ""
	}
	if IsBlockedImage(resolved, extraBlocklist) {
		return ""
	}

	return resolved
}
