package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/internal/domain/credential"
	"github.com/khoahotran/skillmatch/pkg/auth"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

// PasswordService is the credential provider used by the profile save sequence.
type PasswordService struct {
	credentials credential.Repository
	logger      logger.Logger
	now         func() time.Time
}

func NewPasswordService(repo credential.Repository, log logger.Logger) *PasswordService {
	return &PasswordService{credentials: repo, logger: log, now: time.Now}
}

// UpdatePassword is a no-op when the account already uses newSecret, so replays are safe.
func (s *PasswordService) UpdatePassword(ctx context.Context, accountID uuid.UUID, newSecret string) error {
	ctx, span := tracer.Start(ctx, "UpdatePassword")
	defer span.End()

	cur, err := s.credentials.FindByAccountID(ctx, accountID)
	switch {
	case err == nil:
		if auth.CheckPasswordHash(newSecret, cur.PasswordHash) {
			s.logger.Debug("Password unchanged, skipping", zap.String("account_id", accountID.String()))
			return nil
		}
	case !errors.Is(err, credential.ErrCredentialNotFound):
		span.RecordError(err)
		return err
	}

	hash, err := auth.HashPassword(newSecret)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.credentials.SetPasswordHash(ctx, accountID, hash, s.now().UTC()); err != nil {
		span.RecordError(err)
		return err
	}
	s.logger.Info("Password changed", zap.String("account_id", accountID.String()))
	return nil
}
