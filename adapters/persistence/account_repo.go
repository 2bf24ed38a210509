package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/alias"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

const uniqueViolation = "23505"

// Columns of rows imported from the first schema. Writes null them out.
var accountLegacyColumns = []string{
	"name_user", "email_user", "phone_user", "city_user", "state_user",
	"linkedin_link_user", "insta_link_user", "bio_user", "type_user",
}

type postgresAccountRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAccountRepo(db *pgxpool.Pool, logger logger.Logger) account.Repository {
	return &postgresAccountRepo{db: db, logger: logger}
}

func (r *postgresAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	rec, err := queryRecord(ctx, r.db, `SELECT * FROM accounts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, apperror.NewInternal("failed to query account", err)
	}

	a := &account.Account{
		ID:           id,
		FullName:     recordText(rec, alias.FullName),
		Email:        recordText(rec, alias.Email),
		Phone:        recordText(rec, alias.Phone),
		City:         recordText(rec, alias.City),
		State:        recordText(rec, alias.State),
		LinkedInURL:  recordText(rec, alias.LinkedInURL),
		InstagramURL: recordText(rec, alias.InstagramURL),
		Bio:          recordText(rec, alias.Bio),
		UpdatedAt:    recordTime(rec, "updated_at"),
	}

	role, err := account.ParseRole(recordText(rec, alias.Role))
	if err != nil {
		r.logger.Warn("Account row has an unknown role", zap.String("account_id", id.String()), zap.Error(err))
		return nil, apperror.NewInternal("account role is invalid", err)
	}
	a.Role = role
	return a, nil
}

func (r *postgresAccountRepo) Update(ctx context.Context, a *account.Account) error {
	set := clearColumns(map[string]any{
		"full_name":     a.FullName,
		"email":         a.Email,
		"phone":         nullIfEmpty(a.Phone),
		"city":          nullIfEmpty(a.City),
		"state":         nullIfEmpty(a.State),
		"linkedin_url":  nullIfEmpty(a.LinkedInURL),
		"instagram_url": nullIfEmpty(a.InstagramURL),
		"bio":           nullIfEmpty(a.Bio),
		"updated_at":    a.UpdatedAt,
	}, legacyExcept(accountLegacyColumns, "type_user"))

	sql, args, err := psql.Update("accounts").SetMap(set).Where("id = ?", a.ID).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update account query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewConflict("account", "email", a.Email)
		}
		return apperror.NewInternal("failed to update account", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func legacyExcept(columns []string, keep ...string) []string {
	out := make([]string, 0, len(columns))
outer:
	for _, c := range columns {
		for _, k := range keep {
			if c == k {
				continue outer
			}
		}
		out = append(out, c)
	}
	return out
}
