package sources

// SourceTRTHaber identifies TRT Haber.
const SourceTRTHaber = "trthaber"

// TRTHaberProfile returns the adapter profile for TRT Haber. Indexes are
// HTML category pages mined for article links.
func TRTHaberProfile() Profile {
	return Profile{
		Name:      SourceTRTHaber,
		IndexKind: IndexHTML,
		LinkSelectors: []string{
			"div.standard-card a.site-url",
			"div.col-lg-8 a[href*='.html']",
		},
		AllowPatterns: []string{
			".html",
		},
		ExcludePatterns: []string{
			"/foto-galeri/",
			"/video/",
			"/infografik/",
			"/canli-yayin",
		},
		TitleSelectors: []string{
			"h1.site-headline",
			"div.news-detail h1",
			"h1",
		},
		ContainerSelectors: []string{
			"div.news-content",
			"div.news-detail-content",
			"article",
		},
		NoiseSelectors: []string{
			"div.news-share",
			"div.tag-list",
			"div.related-news",
			"div.banner",
		},
		ImageBlocklist: []string{
			"trt-logo",
			"trthaber-logo",
		},
	}
}
