//go:build integration

package data

import (
	"context"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new in-memory SQLite database with the full schema
// and returns it with a teardown function to be deferred.
func setupTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	// A fresh in-memory database per test for complete isolation.
	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}

	// A non-shared in-memory database lives on a single connection; a
	// second pooled connection would see an empty schema.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	// Build the schema from the embedded up migrations so the tests run
	// against exactly what production gets.
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("Failed to read embedded migrations: %v", err)
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		script, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", entry.Name(), err)
		}
		db.MustExec(string(script))
	}

	teardown := func() {
		db.Close()
	}

	return db, teardown
}

// seedUser inserts a user directly and returns its ID.
func seedUser(t *testing.T, db *sqlx.DB, name, email string, role Role) int64 {
	t.Helper()
	res := db.MustExec(
		`INSERT INTO users (ad_soyad, email, sifre, rol) VALUES (?, ?, ?, ?)`,
		name, email, "hash", role)
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get seeded user id: %v", err)
	}
	return id
}

// seedPost inserts a post via the repository and returns its ID.
func seedPost(t *testing.T, repo *PostRepository, authorID int64, title, category string, state PostState) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &Post{
		AuthorID: authorID,
		Title:    title,
		Body:     "içerik: " + title,
		Category: category,
		State:    state,
	})
	if err != nil {
		t.Fatalf("Failed to seed post '%s': %v", title, err)
	}
	return id
}
