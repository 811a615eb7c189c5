package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/config"
	pginfra "github.com/oksasatya/go-credential-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Seeds a demo account. SEED_PASSWORD is required so no well-known
// credential ever lands in a database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		logger.Fatal("SEED_PASSWORD is required")
	}
	if len(password) > helpers.MaxPasswordBytes {
		logger.Fatalf("SEED_PASSWORD must be at most %d bytes", helpers.MaxPasswordBytes)
	}

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		logger.WithError(err).Fatal("failed to open db")
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(password)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u := pginfra.SeedUser{
		ID:           uuid.NewString(),
		Email:        getenv("SEED_EMAIL", "demo@example.com"),
		Name:         getenv("SEED_NAME", "Demo User"),
		PasswordHash: hash,
	}
	id, err := pginfra.UpsertSeedUser(ctx, db, u)
	if err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
	logger.WithFields(logrus.Fields{"id": id, "email": u.Email, "name": u.Name}).Info("seeded user")
}
