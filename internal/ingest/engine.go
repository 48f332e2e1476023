// Package ingest implements the dedup/update/insert decisions that merge
// normalized articles into the content store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haberhub/scraper/internal/database"
	"github.com/haberhub/scraper/internal/domain"
	"github.com/haberhub/scraper/internal/logger"
)

// thinContentThreshold is the character count under which stored content
// is considered a provisional stub eligible for upgrade.
const thinContentThreshold = 400

// Outcome classifies the result of ingesting one article.
type Outcome int

const (
	// OutcomeSkipped means the article was a duplicate, its source was
	// inactive, or an insert race was lost.
	OutcomeSkipped Outcome = iota
	// OutcomeInserted means a new article row was created.
	OutcomeInserted
	// OutcomeUpdated means an existing thin or imageless row was
	// upgraded in place.
	OutcomeUpdated
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ArticleStore is the persistence surface the engine writes articles
// through.
type ArticleStore interface {
	FindByURL(ctx context.Context, originalURL string) (*domain.Article, error)
	Insert(ctx context.Context, article *domain.Article) error
	UpdatePartial(ctx context.Context, id int64, update database.ArticleUpdate) error
}

// SettingStore reads per-source ingestion policy.
type SettingStore interface {
	GetBySource(ctx context.Context, sourceName string) (*domain.SourceSetting, error)
}

// CategoryResolver resolves category slugs to ids.
type CategoryResolver interface {
	ResolveID(ctx context.Context, slug string) (*int64, error)
}

// Engine merges raw articles into the store without duplication.
type Engine struct {
	articles   ArticleStore
	settings   SettingStore
	categories CategoryResolver
	log        logger.Interface
	now        func() time.Time
}

// NewEngine creates an ingestion engine.
func NewEngine(
	articles ArticleStore,
	settings SettingStore,
	categories CategoryResolver,
	log logger.Interface,
) *Engine {
	return &Engine{
		articles:   articles,
		settings:   settings,
		categories: categories,
		log:        log.WithComponent("ingest"),
		now:        time.Now,
	}
}

// Ingest decides whether the raw article is new, an upgrade of an
// existing thin row, or a duplicate. The original URL uniquely identifies
// an article across all time: a second observation of the same URL
// resolves to update-or-skip, never a second row.
func (e *Engine) Ingest(ctx context.Context, raw *domain.RawArticle) (Outcome, error) {
	existing, err := e.articles.FindByURL(ctx, raw.OriginalURL)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return OutcomeSkipped, fmt.Errorf("ingest lookup: %w", err)
	}

	if existing == nil {
		return e.insert(ctx, raw)
	}

	return e.upgrade(ctx, existing, raw)
}

// insert creates a new article row, honoring the source's active and
// auto-publish settings.
func (e *Engine) insert(ctx context.Context, raw *domain.RawArticle) (Outcome, error) {
	setting, err := e.settings.GetBySource(ctx, raw.Source)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return OutcomeSkipped, fmt.Errorf("ingest settings: %w", err)
	}
	if setting != nil && !setting.IsActive {
		e.log.Debug("Source inactive, discarding article",
			"source", raw.Source, "url", raw.OriginalURL)
		return OutcomeSkipped, nil
	}

	categoryID, err := e.categories.ResolveID(ctx, raw.TargetCategory)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("ingest category: %w", err)
	}

	article := &domain.Article{
		Title:       raw.Title,
		Slug:        GenerateSlug(raw.Title),
		Summary:     raw.Summary,
		Content:     raw.Content,
		Category:    raw.TargetCategory,
		CategoryID:  categoryID,
		Source:      raw.Source,
		OriginalURL: raw.OriginalURL,
		IsActive:    true,
	}
	if raw.ImageURL != "" {
		article.ImageURL = &raw.ImageURL
	}
	if raw.Author != "" {
		article.Author = &raw.Author
	}
	if setting != nil && setting.AutoPublish {
		now := e.now()
		article.PublishedAt = &now
	}

	if insertErr := e.articles.Insert(ctx, article); insertErr != nil {
		// A concurrent run won the insert race. The row exists, which is
		// all the dedup invariant asks for.
		if database.IsUniqueViolation(insertErr) {
			e.log.Debug("Lost insert race, skipping", "url", raw.OriginalURL)
			return OutcomeSkipped, nil
		}
		return OutcomeSkipped, fmt.Errorf("ingest insert: %w", insertErr)
	}

	return OutcomeInserted, nil
}

// upgrade applies the thin-content and missing-image backfill rules to an
// existing row. A full duplicate needs no write.
func (e *Engine) upgrade(ctx context.Context, existing *domain.Article, raw *domain.RawArticle) (Outcome, error) {
	var update database.ArticleUpdate

	thinUpgrade := existing.ContentLength() < thinContentThreshold &&
		raw.ContentLength() >= thinContentThreshold
	if thinUpgrade {
		update.Content = &raw.Content
		if raw.Summary != "" {
			update.Summary = &raw.Summary
		}
	}

	if !existing.HasImage() && raw.ImageURL != "" {
		update.ImageURL = &raw.ImageURL
	}

	if update.Content == nil && update.ImageURL == nil {
		return OutcomeSkipped, nil
	}

	if err := e.articles.UpdatePartial(ctx, existing.ID, update); err != nil {
		return OutcomeSkipped, fmt.Errorf("ingest update: %w", err)
	}

	e.log.Info("Upgraded existing article",
		"url", raw.OriginalURL,
		"thin_upgrade", thinUpgrade,
		"image_backfill", update.ImageURL != nil)

	return OutcomeUpdated, nil
}
