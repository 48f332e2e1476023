package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/haberhub/scraper/internal/domain"
)

// articleColumns lists the columns selected for article rows.
const articleColumns = `id, title, slug, summary, content, image_url, category, category_id,
       source, author, original_url, is_active, published_at, created_at, updated_at`

// ArticleRepository handles database operations for articles.
type ArticleRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindByURL retrieves an article by its original URL. Returns ErrNotFound
// when no row exists.
func (r *ArticleRepository) FindByURL(ctx context.Context, originalURL string) (*domain.Article, error) {
	var article domain.Article
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE original_url = $1
	`

	err := r.db.GetContext(ctx, &article, query, originalURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find article by url: %w", err)
	}

	return &article, nil
}

// Insert creates a new article row and fills in the generated id and
// timestamps. Unique violations on original_url propagate to the caller
// unchanged so it can classify them with IsUniqueViolation.
func (r *ArticleRepository) Insert(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (title, slug, summary, content, image_url, category,
		                      category_id, source, author, original_url, is_active, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		article.Title,
		article.Slug,
		article.Summary,
		article.Content,
		article.ImageURL,
		article.Category,
		article.CategoryID,
		article.Source,
		article.Author,
		article.OriginalURL,
		article.IsActive,
		article.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// ArticleUpdate describes a partial update applied during a thin-content
// upgrade. Nil fields are left untouched.
type ArticleUpdate struct {
	Summary  *string
	Content  *string
	ImageURL *string
}

// UpdatePartial applies the non-nil fields of the update to the article
// row. A no-op update (all fields nil) returns without touching the
// database.
func (r *ArticleRepository) UpdatePartial(ctx context.Context, id int64, update ArticleUpdate) error {
	builder := r.builder.Update("articles").Set("updated_at", sq.Expr("now()"))

	changed := false
	if update.Summary != nil {
		builder = builder.Set("summary", *update.Summary)
		changed = true
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
		changed = true
	}
	if update.ImageURL != nil {
		builder = builder.Set("image_url", *update.ImageURL)
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build article update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("article not found: %d", id)
	}

	return nil
}
