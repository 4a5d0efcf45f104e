// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/housekeep/core/internal/infrastructure/config"
	"github.com/housekeep/core/internal/infrastructure/database"
)

// Seeded catalog rows installed by the migrations.
var (
	KitchenWipeCounters = uuid.MustParse("a1000000-0000-4000-8000-000000000001")
	KitchenCleanFridge  = uuid.MustParse("a1000000-0000-4000-8000-000000000002")
	BathroomToilet      = uuid.MustParse("a1000000-0000-4000-8000-000000000005")
)

// NewDB returns a migrated SQLite database living in a temp dir. It is
// closed when the test ends.
func NewDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "housekeep.db"),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.MigrateUp(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// Date builds a UTC instant, a shorthand for table-driven tests.
func Date(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}
