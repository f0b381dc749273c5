// Package testutil provides shared helpers for service and repository tests.
package testutil

import (
	"path/filepath"
	"testing"

	"go-shop-pos/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated SQLite database backed by a file in the test's
// temp dir. The single-connection limit keeps SQLite happy under the
// transactional tests.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.User{},
		&model.Sale{},
		&model.Purchase{},
		&model.JournalEntry{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}
