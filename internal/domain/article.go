// Package domain provides domain models used across the application.
package domain

import (
	"strings"
	"time"
)

// RawArticle is the normalized output of a source adapter. It has no
// identity of its own; the ingestion engine consumes it and discards it.
type RawArticle struct {
	// Title of the article. An adapter never produces a RawArticle
	// without one.
	Title string
	// Summary is the short description, usually from the meta description.
	Summary string
	// Content is a sanitized HTML fragment built from normalized blocks.
	Content string
	// ImageURL is the lead image, empty when none survived the blocklist.
	ImageURL string
	// OriginalURL is the publisher's canonical URL. It is the dedup key.
	OriginalURL string
	// Author of the article, empty when not recoverable.
	Author string
	// Source identifies the publisher (e.g. "aa", "trthaber").
	Source string
	// TargetCategory is the destination category slug from the mapping.
	TargetCategory string
	// Keywords is free text from meta keywords or feed categories.
	Keywords string
}

// ContentLength returns the number of characters in the content fragment.
func (a *RawArticle) ContentLength() int {
	return len([]rune(a.Content))
}

// Article is a persisted article row in the content store.
type Article struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Summary     string     `db:"summary" json:"summary"`
	Content     string     `db:"content" json:"content"`
	ImageURL    *string    `db:"image_url" json:"image_url,omitempty"`
	Category    string     `db:"category" json:"category"`
	CategoryID  *int64     `db:"category_id" json:"category_id,omitempty"`
	Source      string     `db:"source" json:"source"`
	Author      *string    `db:"author" json:"author,omitempty"`
	OriginalURL string     `db:"original_url" json:"original_url"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// HasImage reports whether the article has a non-empty image URL.
func (a *Article) HasImage() bool {
	return a.ImageURL != nil && strings.TrimSpace(*a.ImageURL) != ""
}

// ContentLength returns the number of characters in the stored content.
func (a *Article) ContentLength() int {
	return len([]rune(a.Content))
}
