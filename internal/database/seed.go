package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: one user per
// role so every permission path is exercisable locally. No-op if any users
// exist already.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// All dev users share the same throwaway password.
	hash, err := bcrypt.GenerateFromPassword([]byte("quillpress"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	users := []struct {
		email, name, slug, role string
	}{
		{"owner@quillpress.local", "Owner", "owner", "owner"},
		{"admin@quillpress.local", "Admin", "admin", "admin"},
		{"editor@quillpress.local", "Editor", "editor", "editor"},
		{"author@quillpress.local", "Author", "author", "author"},
		{"contributor@quillpress.local", "Contributor", "contributor", "contributor"},
	}
	for _, u := range users {
		_, err := db.Exec(`
			INSERT INTO users (email, password_hash, display_name, slug, role)
			VALUES ($1, $2, $3, $4, $5)
		`, u.email, string(hash), u.name, u.slug, u.role)
		if err != nil {
			return fmt.Errorf("seed insert %s: %w", u.role, err)
		}
	}

	slog.Info("database seeded with development users",
		"count", len(users),
		"password", "quillpress",
	)

	return nil
}
