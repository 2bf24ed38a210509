package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/adapters/persistence"
	"github.com/khoahotran/skillmatch/internal/config"
	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/pkg/auth"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

// Seeds one account with a password for local testing.
// SEED_LEGACY=1 stores name and role in the first-schema columns instead.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	log := logger.NewZapLogger(cfg.App.Env, logger.WithLevel(cfg.App.LogLevel), logger.WithService("seed"))
	defer log.Sync()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	name := os.Getenv("SEED_NAME")
	role, err := account.ParseRole(os.Getenv("SEED_ROLE"))
	if err != nil {
		log.Fatal("SEED_ROLE must be freelancer or company", err)
	}
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required", nil)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal("cannot hash password", err)
	}

	ctx := context.Background()
	pool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect DB", err)
	}
	defer pool.Close()

	id, err := upsertAccount(ctx, pool, email, name, role, os.Getenv("SEED_LEGACY") == "1")
	if err != nil {
		log.Fatal("cannot add account", err)
	}

	creds := persistence.NewPostgresCredentialRepo(pool)
	if err := creds.SetPasswordHash(ctx, id, hash, time.Now().UTC()); err != nil {
		log.Fatal("cannot set password", err)
	}

	log.Info("Seeded account", zap.String("account_id", id.String()), zap.String("email", email), zap.String("role", string(role)))
	fmt.Println(id)
}

func upsertAccount(ctx context.Context, pool *pgxpool.Pool, email, name string, role account.Role, legacy bool) (uuid.UUID, error) {
	query := `
		INSERT INTO accounts (id, email, full_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`
	if legacy {
		query = `
			INSERT INTO accounts (id, email, role, name_user, type_user)
			VALUES ($1, $2, $4, $3, CASE WHEN $4 = 'company' THEN 'empresa' ELSE $4 END)
			ON CONFLICT (email) DO UPDATE SET name_user = EXCLUDED.name_user, full_name = ''
			RETURNING id
		`
	}
	var id uuid.UUID
	err := pool.QueryRow(ctx, query, uuid.New(), email, name, string(role)).Scan(&id)
	return id, err
}
