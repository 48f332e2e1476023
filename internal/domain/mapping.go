package domain

import "time"

// Mapping run statuses recorded after each index scrape.
const (
	MappingStatusSuccess = "Success"
	MappingStatusFailed  = "Failed"
)

// SourceMapping pairs one source index URL with a destination category.
// Operators create and edit mappings; adapters consume them read-only and
// the run layer writes back per-run telemetry.
type SourceMapping struct {
	ID             int64      `db:"id" json:"id"`
	SourceName     string     `db:"source_name" json:"source_name"`
	SourceURL      string     `db:"source_url" json:"source_url"`
	TargetCategory string     `db:"target_category" json:"target_category"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	LastScrapedAt  *time.Time `db:"last_scraped_at" json:"last_scraped_at,omitempty"`
	LastStatus     *string    `db:"last_status" json:"last_status,omitempty"`
	LastItemCount  *int       `db:"last_item_count" json:"last_item_count,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// SourceSetting holds per-publisher ingestion policy. When IsActive is
// false the ingestion engine silently discards articles from the source.
// When AutoPublish is true new articles are published immediately,
// otherwise they are stored as drafts for manual review.
type SourceSetting struct {
	ID          int64     `db:"id" json:"id"`
	SourceName  string    `db:"source_name" json:"source_name"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	AutoPublish bool      `db:"auto_publish" json:"auto_publish"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
