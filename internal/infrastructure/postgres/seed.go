package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedUser is the demo account written by cmd/seed.
type SeedUser struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

// UpsertSeedUser inserts the user or refreshes its name and hash when the
// email already exists, returning the stored id.
func UpsertSeedUser(ctx context.Context, db *sql.DB, u SeedUser) (string, error) {
	var id string
	err := db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id
	`, u.ID, u.Email, u.PasswordHash, u.Name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("seed user: %w", err)
	}
	return id, nil
}
