package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/alias"
	"github.com/khoahotran/skillmatch/internal/domain/credential"
	"github.com/khoahotran/skillmatch/pkg/apperror"
)

type postgresCredentialRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCredentialRepo(db *pgxpool.Pool) credential.Repository {
	return &postgresCredentialRepo{db: db}
}

// Account columns come back raw so the role goes through the same alias
// chain as every other account read.
const credentialSelect = `
	SELECT a.*, c.password_hash, c.updated_at AS credential_updated_at
	FROM accounts a
	JOIN credentials c ON c.account_id = a.id
`

func (r *postgresCredentialRepo) FindByEmail(ctx context.Context, email string) (*credential.Credential, error) {
	return r.findOne(ctx, credentialSelect+` WHERE lower(a.email) = lower($1)`, strings.TrimSpace(email))
}

func (r *postgresCredentialRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*credential.Credential, error) {
	return r.findOne(ctx, credentialSelect+` WHERE a.id = $1`, accountID)
}

func (r *postgresCredentialRepo) findOne(ctx context.Context, query string, arg any) (*credential.Credential, error) {
	rec, err := queryRecord(ctx, r.db, query, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credential.ErrCredentialNotFound
		}
		return nil, apperror.NewInternal("failed to query credential", err)
	}

	id, err := recordUUID(rec, "id")
	if err != nil {
		return nil, apperror.NewInternal("credential account id is invalid", err)
	}
	hash, _ := rec["password_hash"].(string)
	c := &credential.Credential{
		AccountID:    id,
		Email:        recordText(rec, alias.Email),
		PasswordHash: hash,
		UpdatedAt:    recordTime(rec, "credential_updated_at"),
	}
	c.Role, err = account.ParseRole(recordText(rec, alias.Role))
	if err != nil {
		return nil, apperror.NewInternal("credential account role is invalid", err)
	}
	return c, nil
}

func (r *postgresCredentialRepo) SetPasswordHash(ctx context.Context, accountID uuid.UUID, hash string, at time.Time) error {
	query := `
		INSERT INTO credentials (account_id, password_hash, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, accountID, hash, at); err != nil {
		return apperror.NewInternal("failed to save credential", err)
	}
	return nil
}
