package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillmatch/internal/domain/alias"
	"github.com/khoahotran/skillmatch/internal/domain/company"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

var companyLegacyColumns = []string{"cnpj_company"}

type postgresCompanyRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCompanyRepo(db *pgxpool.Pool, logger logger.Logger) company.Repository {
	return &postgresCompanyRepo{db: db, logger: logger}
}

func (r *postgresCompanyRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*company.Profile, error) {
	rec, err := queryRecord(ctx, r.db, `SELECT * FROM company_profiles WHERE account_id = $1`, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, apperror.NewInternal("failed to query company profile", err)
	}

	id, err := recordUUID(rec, "id")
	if err != nil {
		return nil, apperror.NewInternal("failed to decode company profile id", err)
	}
	return &company.Profile{
		ID:        id,
		AccountID: accountID,
		TaxID:     profile.DigitsOnly(recordText(rec, alias.TaxID)),
		UpdatedAt: recordTime(rec, "updated_at"),
	}, nil
}

func (r *postgresCompanyRepo) Insert(ctx context.Context, p *company.Profile) error {
	query := `
		INSERT INTO company_profiles (id, account_id, tax_id, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, p.ID, p.AccountID, nullIfEmpty(p.TaxID), p.UpdatedAt); err != nil {
		return apperror.NewInternal("failed to insert company profile", err)
	}
	return nil
}

func (r *postgresCompanyRepo) Update(ctx context.Context, p *company.Profile) error {
	set := clearColumns(map[string]any{
		"tax_id":     nullIfEmpty(p.TaxID),
		"updated_at": p.UpdatedAt,
	}, companyLegacyColumns)

	sql, args, err := psql.Update("company_profiles").SetMap(set).Where("id = ?", p.ID).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update company profile query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewInternal("failed to update company profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("company profile", p.ID.String())
	}
	return nil
}
