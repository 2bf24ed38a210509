package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/auth"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

type LogoutUseCase struct {
	sessions *auth.SessionService
	logger   logger.Logger
}

func NewLogoutUseCase(sessions *auth.SessionService, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, logger: log}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, sess *auth.Session) error {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	if sess == nil {
		return apperror.NewNotAuthenticated("no session")
	}
	if err := uc.sessions.SignOut(ctx, sess); err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to revoke session", err, zap.String("account_id", sess.AccountID.String()))
		return apperror.NewInternal("failed to sign out", err)
	}
	uc.logger.Info("Signed out", zap.String("account_id", sess.AccountID.String()))
	return nil
}
