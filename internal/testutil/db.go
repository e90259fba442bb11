package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"blogapp/internal/db"
	"blogapp/internal/logger"
)

// NewTestDB opens a migrated sqlite database inside t.TempDir and closes it on cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"), logger.Noop())
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("db migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(gormDB)
	})
	return gormDB
}
