package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/haberhub/scraper/internal/database"
)

func newSettingRepo(t *testing.T) (*database.SettingRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	db := sqlx.NewDb(mockDB, "postgres")
	repo := database.NewSettingRepository(db)

	return repo, mock, func() { mockDB.Close() }
}

func TestSettingRepository_GetBySource(t *testing.T) {
	repo, mock, cleanup := newSettingRepo(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "source_name", "is_active", "auto_publish", "created_at", "updated_at"}).
		AddRow(int64(1), "aa", true, false, now, now)

	mock.ExpectQuery("SELECT (.+) FROM source_settings").
		WithArgs("aa").
		WillReturnRows(rows)

	setting, err := repo.GetBySource(context.Background(), "aa")
	if err != nil {
		t.Fatalf("GetBySource() error = %v", err)
	}

	if !setting.IsActive {
		t.Error("IsActive = false, want true")
	}
	if setting.AutoPublish {
		t.Error("AutoPublish = true, want false")
	}

	expectationsMet(t, mock)
}

func TestSettingRepository_GetBySource_NotFound(t *testing.T) {
	repo, mock, cleanup := newSettingRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM source_settings").
		WithArgs("bilinmeyen").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySource(context.Background(), "bilinmeyen")
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("GetBySource() error = %v, want ErrNotFound", err)
	}

	expectationsMet(t, mock)
}
