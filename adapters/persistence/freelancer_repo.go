package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/internal/domain/alias"
	"github.com/khoahotran/skillmatch/internal/domain/freelancer"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

var freelancerLegacyColumns = []string{
	"cpf_freelancer", "birthday_freelancer",
	"occupation_freelancer", "ocupation_freelancer", "ocuppation_freelancer",
	"link_portfolio_freelancer",
}

type postgresFreelancerRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresFreelancerRepo(db *pgxpool.Pool, logger logger.Logger) freelancer.Repository {
	return &postgresFreelancerRepo{db: db, logger: logger}
}

func (r *postgresFreelancerRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*freelancer.Profile, error) {
	rec, err := queryRecord(ctx, r.db, `SELECT * FROM freelancer_profiles WHERE account_id = $1`, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, freelancer.ErrFreelancerNotFound
		}
		return nil, apperror.NewInternal("failed to query freelancer profile", err)
	}

	id, err := recordUUID(rec, "id")
	if err != nil {
		return nil, apperror.NewInternal("failed to decode freelancer profile id", err)
	}

	p := &freelancer.Profile{
		ID:           id,
		AccountID:    accountID,
		NationalID:   profile.DigitsOnly(recordText(rec, alias.NationalID)),
		BirthDate:    recordDate(rec, alias.BirthDate),
		Occupation:   recordText(rec, alias.Occupation),
		PortfolioURL: recordText(rec, alias.PortfolioURL),
		UpdatedAt:    recordTime(rec, "updated_at"),
	}
	if p.BirthDate == nil && alias.Default.Has(rec, alias.BirthDate) {
		r.logger.Warn("Unreadable birth date on freelancer profile", zap.String("freelancer_id", id.String()))
	}
	return p, nil
}

func (r *postgresFreelancerRepo) Insert(ctx context.Context, p *freelancer.Profile) error {
	query := `
		INSERT INTO freelancer_profiles (id, account_id, national_id, birth_date, occupation, portfolio_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.AccountID, nullIfEmpty(p.NationalID), p.BirthDate,
		nullIfEmpty(p.Occupation), nullIfEmpty(p.PortfolioURL), p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to insert freelancer profile", err)
	}
	return nil
}

func (r *postgresFreelancerRepo) Update(ctx context.Context, p *freelancer.Profile) error {
	set := clearColumns(map[string]any{
		"national_id":   nullIfEmpty(p.NationalID),
		"birth_date":    p.BirthDate,
		"occupation":    nullIfEmpty(p.Occupation),
		"portfolio_url": nullIfEmpty(p.PortfolioURL),
		"updated_at":    p.UpdatedAt,
	}, freelancerLegacyColumns)

	sql, args, err := psql.Update("freelancer_profiles").SetMap(set).Where("id = ?", p.ID).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update freelancer profile query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewInternal("failed to update freelancer profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("freelancer profile", p.ID.String())
	}
	return nil
}
