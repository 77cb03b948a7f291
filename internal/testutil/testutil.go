package testutil

import (
	"context"
	"log/slog"
	"testing"

	"businessCard/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The database is closed via t.Cleanup. Use a distinct name per test.
func OpenInMemoryDB(t *testing.T, name string) *db.DB {
	t.Helper()
	// Shared cache so every pooled connection sees the same database.
	d, err := db.Open(context.Background(), slog.Default(), db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SeedEditor inserts an editor row directly, bypassing the API rules so
// tests can create super-admins and inactive accounts.
func SeedEditor(t *testing.T, d *db.DB, username, passwordHash string, superAdmin, active bool) int64 {
	t.Helper()
	var id int64
	err := d.QueryRowContext(context.Background(), d.Rebind(`
		INSERT INTO editors (username, password_hash, full_name, is_super_admin, is_active)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`), username, passwordHash, username, superAdmin, active).Scan(&id)
	if err != nil {
		t.Fatalf("seed editor %s: %v", username, err)
	}
	return id
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, d *db.DB, table string) int {
	t.Helper()
	var n int
	if err := d.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
