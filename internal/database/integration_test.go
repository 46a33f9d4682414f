package database

import (
	"os"
	"path/filepath"
	"testing"
)

func openMigratedDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	if err := db.RunMigrations(filepath.Join("..", "..", "migrations", "sqlite")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigratedDB(t)

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	tables := []string{"users", "auth_sessions", "worksheets", "game_sessions", "word_attempts"}
	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRow(query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Migrations are tracked and safe to re-run.
	if err := db.RunMigrations(filepath.Join("..", "..", "migrations", "sqlite")); err != nil {
		t.Fatalf("Re-running migrations failed: %v", err)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigratedDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	_, err = tx.Exec("INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"teacher@example.com", "hashedpass", "Test Teacher")
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", "teacher@example.com").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}

	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}
	_, err = tx2.Exec("INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"other@example.com", "hashedpass", "Other Teacher")
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	err = db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", "other@example.com").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}
}

// TestExecReturningID verifies insert id plumbing against SQLite
func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigratedDB(t)

	id1, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"a@example.com", "x", "A")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	id2, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"b@example.com", "x", "B")
	if err != nil {
		t.Fatalf("ExecReturningID failed: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("Expected increasing ids, got %d then %d", id1, id2)
	}
}
