package sources

// SourceMynet identifies Mynet Haber.
const SourceMynet = "mynet"

// MynetProfile returns the adapter profile for Mynet Haber. Indexes are
// HTML category pages mined for article links.
func MynetProfile() Profile {
	return Profile{
		Name:      SourceMynet,
		IndexKind: IndexHTML,
		LinkSelectors: []string{
			"div.card-text-warp a",
			"a.card-news-img",
		},
		AllowPatterns: []string{
			"-haberi-",
			"/haber/",
		},
		ExcludePatterns: []string{
			"/galeri/",
			"/video/",
			"/canli-skor",
			"foto-analiz",
		},
		TitleSelectors: []string{
			"h1.detail-title",
			"div.detail-content-inner h1",
			"h1",
		},
		ContainerSelectors: []string{
			"div.detail-content-inner",
			"div.medyanet-content",
			"article",
		},
		NoiseSelectors: []string{
			"div.detail-share",
			"div.detail-tags",
			"div.similar-news",
			"div.adv",
		},
		ImageBlocklist: []string{
			"mynet-logo",
			"mnet-logo",
		},
	}
}
