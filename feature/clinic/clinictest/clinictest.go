// Package clinictest provides database fixtures for route group tests.
package clinictest

import (
	"testing"

	"nemoris-api/core/database"
	"nemoris-api/feature/clinic"

	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite database closed at the end of the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := clinic.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
