package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillmatch/internal/domain/alias"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

func (r *postgresSkillRepo) FindByFreelancerID(ctx context.Context, freelancerID uuid.UUID) (*skill.SkillSet, error) {
	rec, err := queryRecord(ctx, r.db, `SELECT * FROM skill_sets WHERE freelancer_id = $1`, freelancerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, skill.ErrSkillSetNotFound
		}
		return nil, apperror.NewInternal("failed to query skill set", err)
	}

	id, err := recordUUID(rec, "id")
	if err != nil {
		return nil, apperror.NewInternal("failed to decode skill set id", err)
	}

	set := &skill.SkillSet{ID: id, FreelancerID: freelancerID, UpdatedAt: recordTime(rec, "updated_at")}
	for i := range set.Slots {
		set.Slots[i] = recordText(rec, alias.SkillSlot(i))
	}
	return set, nil
}

func (r *postgresSkillRepo) Insert(ctx context.Context, s *skill.SkillSet) error {
	query := `
		INSERT INTO skill_sets (id, freelancer_id, skill_1, skill_2, skill_3, skill_4, skill_5, skill_6, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.FreelancerID,
		s.Slots[0], s.Slots[1], s.Slots[2], s.Slots[3], s.Slots[4], s.Slots[5],
		s.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to insert skill set", err)
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.SkillSet) error {
	set := map[string]any{"updated_at": s.UpdatedAt}
	for i, v := range s.Slots {
		set[string(alias.SkillSlot(i))] = v
	}

	sql, args, err := psql.Update("skill_sets").SetMap(set).Where("id = ?", s.ID).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build update skill set query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewInternal("failed to update skill set", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill set", s.ID.String())
	}
	return nil
}
