package sources

// SourceAA identifies Anadolu Ajansı.
const SourceAA = "aa"

// AAProfile returns the adapter profile for Anadolu Ajansı. AA indexes
// are RSS feeds, so link discovery is skipped.
func AAProfile() Profile {
	return Profile{
		Name:      SourceAA,
		IndexKind: IndexRSS,
		ExcludePatterns: []string{
			"/galeri",
			"/video",
			"/infografik",
		},
		TitleSelectors: []string{
			"h1.detay-spot-category",
			"div.detay-baslik h1",
			"h1",
		},
		ContainerSelectors: []string{
			"div.detay-icerik",
			"div.detay-paylas-alt",
			"article",
		},
		NoiseSelectors: []string{
			"div.detay-paylas",
			"div.detay-bg-image",
			"div.sticky-social",
			"ul.detay-paylas-list",
		},
		ImageBlocklist: []string{
			"aa_logo",
			"anadolu-ajansi",
		},
	}
}
