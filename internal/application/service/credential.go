package service

import (
	"context"

	"github.com/google/uuid"
)

// CredentialUpdater changes an account's password at the auth provider.
// Setting the password it already has must succeed without effect.
type CredentialUpdater interface {
	UpdatePassword(ctx context.Context, accountID uuid.UUID, newSecret string) error
}
