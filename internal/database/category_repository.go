package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository resolves category slugs to ids. Categories themselves
// are managed by the site layer; the scraper only reads them.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ResolveID returns the id of the category with the given slug, or nil
// when the slug is unknown. An unknown category is not an error; the
// article is stored without a category foreign key.
func (r *CategoryRepository) ResolveID(ctx context.Context, slug string) (*int64, error) {
	var id int64
	query := `SELECT id FROM categories WHERE slug = $1`

	err := r.db.GetContext(ctx, &id, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	return &id, nil
}
