package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

type postgresIntentRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresIntentRepo(db *pgxpool.Pool, logger logger.Logger) profile.IntentRepository {
	return &postgresIntentRepo{db: db, logger: logger}
}

func (r *postgresIntentRepo) Begin(ctx context.Context, w *profile.WriteIntent) error {
	payload, err := json.Marshal(w.Payload)
	if err != nil {
		return apperror.NewInternal("failed to marshal write intent payload", err)
	}
	steps, err := json.Marshal(w.Steps)
	if err != nil {
		return apperror.NewInternal("failed to marshal write intent steps", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin write intent transaction", err)
	}
	defer tx.Rollback(ctx)

	supersede := `UPDATE profile_write_intents SET status = $2, updated_at = NOW() WHERE account_id = $1 AND status = $3`
	if _, err := tx.Exec(ctx, supersede, w.AccountID, profile.IntentSuperseded, profile.IntentOpen); err != nil {
		return apperror.NewInternal("failed to supersede open write intents", err)
	}

	insert := `
		INSERT INTO profile_write_intents (id, account_id, role, payload, steps, done, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, $6, $7, $8)
	`
	if _, err := tx.Exec(ctx, insert, w.ID, w.AccountID, w.Role, payload, steps, w.Status, w.CreatedAt, w.UpdatedAt); err != nil {
		return apperror.NewInternal("failed to insert write intent", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit write intent", err)
	}
	return nil
}

func (r *postgresIntentRepo) MarkDone(ctx context.Context, id uuid.UUID, step profile.Step) error {
	query := `
		UPDATE profile_write_intents
		SET done = CASE WHEN done @> to_jsonb($2::text) THEN done ELSE done || to_jsonb($2::text) END,
			updated_at = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, "mark write intent step done", id, query, id, string(step))
}

func (r *postgresIntentRepo) MarkFailed(ctx context.Context, id uuid.UUID, step profile.Step, cause string) error {
	query := `UPDATE profile_write_intents SET failed_step = $2, last_error = $3, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "mark write intent failed", id, query, id, string(step), cause)
}

func (r *postgresIntentRepo) Complete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE profile_write_intents SET status = $2, failed_step = NULL, last_error = NULL, updated_at = NOW() WHERE id = $1`
	return r.exec(ctx, "complete write intent", id, query, id, profile.IntentCompleted)
}

func (r *postgresIntentRepo) exec(ctx context.Context, what string, id uuid.UUID, query string, args ...any) error {
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to "+what, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrIntentNotFound
	}
	return nil
}

func (r *postgresIntentRepo) FindOpenByAccountID(ctx context.Context, accountID uuid.UUID) (*profile.WriteIntent, error) {
	query := `
		SELECT id, account_id, role, payload, steps, done, COALESCE(failed_step, ''), COALESCE(last_error, ''), status, created_at, updated_at
		FROM profile_write_intents
		WHERE account_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	w := &profile.WriteIntent{}
	var (
		role                 string
		payload, steps, done []byte
		failedStep, status   string
	)
	err := r.db.QueryRow(ctx, query, accountID, profile.IntentOpen).Scan(
		&w.ID, &w.AccountID, &role, &payload, &steps, &done,
		&failedStep, &w.LastError, &status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrIntentNotFound
		}
		return nil, apperror.NewInternal("failed to query write intent", err)
	}

	w.Role = account.Role(role)
	w.FailedStep = profile.Step(failedStep)
	w.Status = profile.IntentStatus(status)

	if err := json.Unmarshal(payload, &w.Payload); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal write intent payload", err)
	}
	if err := json.Unmarshal(steps, &w.Steps); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal write intent steps", err)
	}
	if err := json.Unmarshal(done, &w.Done); err != nil {
		r.logger.Warn("Failed to unmarshal write intent done steps", zap.String("intent_id", w.ID.String()), zap.Error(err))
		w.Done = []profile.Step{}
	}
	return w, nil
}
