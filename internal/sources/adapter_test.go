package sources_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haberhub/scraper/internal/config"
	"github.com/haberhub/scraper/internal/feed"
	"github.com/haberhub/scraper/internal/logger"
	"github.com/haberhub/scraper/internal/sources"
)

func seedItem(title, summary string) *feed.Item {
	return &feed.Item{Title: title, Summary: summary}
}

const indexPage = `<!DOCTYPE html>
<html><head><title>Gündem Haberleri</title></head>
<body>
  <div class="news-list">
    <a href="/ekonomi/faiz-karari-haberi-101">Faiz kararı</a>
    <a href="/ekonomi/faiz-karari-haberi-101">Faiz kararı (tekrar)</a>
    <a href="/gundem/deprem-bolgesi-haberi-102">Deprem bölgesi</a>
    <a href="/foto-galeri/gunun-kareleri-103">Günün kareleri</a>
    <a href="#">Yukarı çık</a>
    <a href="javascript:void(0)">Paylaş</a>
  </div>
</body></html>`

const articlePage = `<!DOCTYPE html>
<html>
<head>
  <title>Faiz kararı açıklandı - Örnek Haber</title>
  <meta name="description" content="Merkez bankası faiz kararını açıkladı.">
  <meta name="keywords" content="ekonomi, faiz, merkez bankası">
  <meta name="author" content="Ayşe Demir">
  <meta property="og:image" content="https://cdn.example.com/2024/faiz-karari-kapak.jpg">
</head>
<body>
  <h1 class="article-title">Faiz kararı açıklandı</h1>
  <div class="article-body">
    <p>Merkez bankası bugün beklenen faiz kararını kamuoyu ile paylaştı.</p>
    <h2>Piyasaların tepkisi</h2>
    <p>Karar sonrası piyasalarda hareketlilik gözlendi, uzmanlar değerlendirme yaptı.</p>
    <img src="/uploads/2024/merkez-bankasi-binasi.jpg" alt="Merkez Bankası">
  </div>
</body></html>`

const titlelessPage = `<!DOCTYPE html>
<html><head></head>
<body>
  <div class="article-body">
    <p>Başlıksız bir sayfa ama içinde yeterince uzun bir paragraf var.</p>
  </div>
</body></html>`

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		RequestTimeout:  5 * time.Second,
		FetchDelay:      time.Millisecond,
		RunTimeout:      time.Minute,
		MaxLinksPerPage: 10,
		UserAgent:       "scraper-test/1.0",
	}
}

func htmlProfile() sources.Profile {
	return sources.Profile{
		Name:               "testkaynak",
		IndexKind:          sources.IndexHTML,
		LinkSelectors:      []string{".news-list a"},
		AllowPatterns:      []string{"-haberi-"},
		ExcludePatterns:    []string{"/foto-galeri/"},
		TitleSelectors:     []string{"h1.article-title"},
		ContainerSelectors: []string{".article-body"},
	}
}

func rssProfile() sources.Profile {
	return sources.Profile{
		Name:               "testrss",
		IndexKind:          sources.IndexRSS,
		ExcludePatterns:    []string{"/video/"},
		TitleSelectors:     []string{"h1.article-title"},
		ContainerSelectors: []string{".article-body"},
	}
}

func newTestAdapter(t *testing.T, profile sources.Profile, cfg config.ScraperConfig) *sources.Adapter {
	t.Helper()

	adapter, err := sources.New(profile, cfg, logger.NewNoop())
	require.NoError(t, err)
	return adapter
}

func TestDiscover_HTMLIndex(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, indexPage)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, htmlProfile(), testScraperConfig())

	candidates, err := adapter.Discover(context.Background(), server.URL+"/kategori/ekonomi")
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, server.URL+"/ekonomi/faiz-karari-haberi-101", candidates[0].URL)
	assert.Equal(t, server.URL+"/gundem/deprem-bolgesi-haberi-102", candidates[1].URL)
	assert.Nil(t, candidates[0].Seed)
}

func TestDiscover_HTMLIndexCapped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><div class="news-list">`)
		for i := range 25 {
			fmt.Fprintf(w, `<a href="/gundem/konu-%d-haberi-%d">Haber %d</a>`, i, i, i)
		}
		fmt.Fprint(w, `</div></body></html>`)
	}))
	defer server.Close()

	cfg := testScraperConfig()
	cfg.MaxLinksPerPage = 3

	adapter := newTestAdapter(t, htmlProfile(), cfg)

	candidates, err := adapter.Discover(context.Background(), server.URL+"/kategori/gundem")
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
}

func TestDiscover_RSSIndex(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test</title>
<item><title>Birinci haber</title><link>%[1]s/gundem/birinci-haber</link><description>Birinci özet.</description></item>
<item><title>Tekrar</title><link>%[1]s/gundem/birinci-haber</link></item>
<item><title>Video haber</title><link>%[1]s/video/klip-123</link></item>
<item><title>İkinci haber</title><link>%[1]s/gundem/ikinci-haber</link></item>
</channel></rss>`, server.URL)
	})

	adapter := newTestAdapter(t, rssProfile(), testScraperConfig())

	candidates, err := adapter.Discover(context.Background(), server.URL+"/rss.xml")
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, server.URL+"/gundem/birinci-haber", candidates[0].URL)
	require.NotNil(t, candidates[0].Seed)
	assert.Equal(t, "Birinci haber", candidates[0].Seed.Title)
	assert.Equal(t, "Birinci özet.", candidates[0].Seed.Summary)
	assert.Equal(t, server.URL+"/gundem/ikinci-haber", candidates[1].URL)
}

func TestDiscover_IndexUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, htmlProfile(), testScraperConfig())

	_, err := adapter.Discover(context.Background(), server.URL+"/kategori/gundem")
	assert.Error(t, err)
}

func TestFetch_Article(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, articlePage)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, htmlProfile(), testScraperConfig())

	articleURL := server.URL + "/ekonomi/faiz-karari-haberi-101"
	article, err := adapter.Fetch(context.Background(), sources.Candidate{URL: articleURL})
	require.NoError(t, err)

	assert.Equal(t, "Faiz kararı açıklandı", article.Title)
	assert.Equal(t, "Merkez bankası faiz kararını açıkladı.", article.Summary)
	assert.Equal(t, "ekonomi, faiz, merkez bankası", article.Keywords)
	assert.Equal(t, "Ayşe Demir", article.Author)
	assert.Equal(t, "testkaynak", article.Source)
	assert.Equal(t, articleURL, article.OriginalURL)

	// og:image wins over the in-body image.
	assert.Equal(t, "https://cdn.example.com/2024/faiz-karari-kapak.jpg", article.ImageURL)

	assert.Contains(t, article.Content, "<p>Merkez bankası bugün beklenen faiz kararını kamuoyu ile paylaştı.</p>")
	assert.Contains(t, article.Content, "<h2>Piyasaların tepkisi</h2>")
	assert.Contains(t, article.Content, server.URL+"/uploads/2024/merkez-bankasi-binasi.jpg")
}

func TestFetch_InBodyImageFallback(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>Görselli haber</title></head><body>
<div class="article-body">
<img src="https://cdn.example.com/statics/site-logo.png" alt="logo">
<img src="/uploads/2024/olay-yerinden-kareler.jpg" alt="Olay yeri">
<p>Olay yerine çok sayıda ekip sevk edildi, çalışmalar sürüyor.</p>
</div></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, htmlProfile(), testScraperConfig())

	article, err := adapter.Fetch(context.Background(), sources.Candidate{URL: server.URL + "/gundem/olay-haberi-5"})
	require.NoError(t, err)

	// The logo is blocklisted; the first real body image wins.
	assert.Equal(t, server.URL+"/uploads/2024/olay-yerinden-kareler.jpg", article.ImageURL)
}

func TestFetch_TitleFromSeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, titlelessPage)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, rssProfile(), testScraperConfig())

	seed := seedItem("Feed başlığı", "Feed özeti.")
	article, err := adapter.Fetch(context.Background(), sources.Candidate{
		URL:  server.URL + "/gundem/bassiz-haber",
		Seed: seed,
	})
	require.NoError(t, err)

	assert.Equal(t, "Feed başlığı", article.Title)
}

func TestFetch_NoTitle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, titlelessPage)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, htmlProfile(), testScraperConfig())

	_, err := adapter.Fetch(context.Background(), sources.Candidate{URL: server.URL + "/gundem/bassiz-haber"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sources.ErrNoTitle)
}

func TestFetch_ContentFallsBackToSummary(t *testing.T) {
	t.Parallel()

	page := `<html><head>
<title>Kısa haber</title>
<meta name="description" content="Sadece özetten ibaret kısa bir haber.">
</head><body><div class="article-body"><p>kısa</p></div></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, htmlProfile(), testScraperConfig())

	article, err := adapter.Fetch(context.Background(), sources.Candidate{URL: server.URL + "/gundem/kisa-haberi-9"})
	require.NoError(t, err)

	assert.Equal(t, "Kısa haber", article.Title)
	assert.Equal(t, "<p>Sadece özetten ibaret kısa bir haber.</p>", article.Content)
}

func TestFetch_CancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, articlePage)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, htmlProfile(), testScraperConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Fetch(ctx, sources.Candidate{URL: server.URL + "/gundem/haberi-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProfileAllowsURL(t *testing.T) {
	t.Parallel()

	profile := htmlProfile()

	assert.True(t, profile.AllowsURL("https://www.example.com/gundem/deprem-haberi-12"))
	assert.False(t, profile.AllowsURL("https://www.example.com/gundem/deprem"))
	assert.False(t, profile.AllowsURL("https://www.example.com/foto-galeri/kareler-haberi-3"))
}

func TestRegistryProfiles(t *testing.T) {
	t.Parallel()

	profiles := sources.Profiles()
	require.Len(t, profiles, 3)

	assert.Equal(t, sources.SourceAA, profiles[0].Name)
	assert.Equal(t, sources.SourceTRTHaber, profiles[1].Name)
	assert.Equal(t, sources.SourceMynet, profiles[2].Name)

	assert.Equal(t, sources.IndexRSS, profiles[0].IndexKind)
	assert.Equal(t, sources.IndexHTML, profiles[1].IndexKind)
	assert.Equal(t, sources.IndexHTML, profiles[2].IndexKind)
}
