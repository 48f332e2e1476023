package extract_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haberhub/scraper/internal/extract"
)

func TestIsBlockedImage_DefaultBlocklist(t *testing.T) {
	t.Parallel()

	blocked := []string{
		"https://cdn.example.com/assets/logo.png",
		"https://cdn.example.com/img/no-image.jpg",
		"https://cdn.example.com/img/NoImage.jpg",
		"https://cdn.example.com/uploads/default.jpg",
		"https://cdn.example.com/PLACEHOLDER/banner.png",
		"https://cdn.example.com/watermark/photo.jpg",
	}
	for _, candidate := range blocked {
		assert.True(t, extract.IsBlockedImage(candidate, nil), candidate)
	}

	assert.False(t, extract.IsBlockedImage("https://cdn.example.com/2024/01/photo.jpg", nil))
}

func TestIsBlockedImage_ExtraSubstrings(t *testing.T) {
	t.Parallel()

	extra := []string{"aa_logo"}

	assert.True(t, extract.IsBlockedImage("https://cdn.aa.com.tr/AA_Logo/share.jpg", extra))
	assert.False(t, extract.IsBlockedImage("https://cdn.aa.com.tr/2024/photo.jpg", extra))
}

func TestNormalizeImageURL_ResolvesRelative(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://www.example.com/haber/deprem-123.html")
	require.NoError(t, err)

	resolved := extract.NormalizeImageURL("/uploads/2024/deprem.jpg", base, nil)
	assert.Equal(t, "https://www.example.com/uploads/2024/deprem.jpg", resolved)
}

func TestNormalizeImageURL_DecodesPercentEncoding(t *testing.T) {
	t.Parallel()

	// Lazy-load attributes sometimes carry fully escaped URLs.
	resolved := extract.NormalizeImageURL("https%3A%2F%2Fcdn.example.com%2F2024%2Ffoto.jpg", nil, nil)
	assert.Equal(t, "https://cdn.example.com/2024/foto.jpg", resolved)
}

func TestNormalizeImageURL_RejectsUnusable(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":         "",
		"too short":     "https://a.b/x",
		"blocklisted":   "https://cdn.example.com/assets/logo.png",
		"non-http":      "data:image/png;base64,AAAA",
		"relative-only": "/uploads/photo.jpg", // no base to resolve against
	}

	for name, candidate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, extract.NormalizeImageURL(candidate, nil, nil))
		})
	}
}
