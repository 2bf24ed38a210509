package credential

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillmatch/internal/domain/account"
)

var ErrCredentialNotFound = errors.New("credential not found")

// Credential is the sign-in secret of an account. The hash never leaves the auth layer.
type Credential struct {
	AccountID    uuid.UUID    `json:"account_id"`
	Email        string       `json:"email"`
	Role         account.Role `json:"role"`
	PasswordHash string       `json:"-"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*Credential, error)
	// SetPasswordHash creates the credential row when the account has none yet.
	SetPasswordHash(ctx context.Context, accountID uuid.UUID, hash string, at time.Time) error
}
