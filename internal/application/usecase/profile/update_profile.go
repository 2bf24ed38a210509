package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

type UpdateProfileUseCase struct {
	writer *writer
	policy profile.Policy
	now    Clock
}

// UpdateProfileDeps lists the collaborators of a save. Everything but Repos may be nil.
type UpdateProfileDeps struct {
	Repos       Repositories
	Credentials service.CredentialUpdater
	Intents     profile.IntentRepository
	Cache       service.ProfileCache
	Events      service.EventPublisher
}

func NewUpdateProfileUseCase(deps UpdateProfileDeps, policy profile.Policy, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		writer: &writer{
			repos:       deps.Repos,
			credentials: deps.Credentials,
			intents:     deps.Intents,
			cache:       deps.Cache,
			events:      deps.Events,
			logger:      log,
		},
		policy: policy,
		now:    utcNow,
	}
}

// WithClock replaces the time source used for age checks and timestamps.
func (uc *UpdateProfileUseCase) WithClock(c Clock) *UpdateProfileUseCase {
	uc.now = c
	return uc
}

type UpdateProfileInput struct {
	AccountID uuid.UUID
	Role      account.Role
	Form      profile.FormState
}

type UpdateProfileOutput struct {
	Profile  *profile.View
	IntentID uuid.UUID
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	if input.AccountID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("no session account")
	}
	span.SetAttributes(
		attribute.String("account_id", input.AccountID.String()),
		attribute.String("role", string(input.Role)),
	)

	now := uc.now()
	edit := input.Form.Normalize()
	if err := edit.Validate(input.Role, uc.policy, now); err != nil {
		var fields profile.ValidationErrors
		if errors.As(err, &fields) {
			return nil, apperror.NewValidation(fields)
		}
		return nil, apperror.NewInvalidInput("profile validation failed", err)
	}

	r := &saveRun{
		accountID: input.AccountID,
		role:      input.Role,
		edit:      edit,
		now:       now,
		steps:     profile.Plan(input.Role, edit),
	}

	if uc.writer.intents != nil {
		intent := profile.NewWriteIntent(input.AccountID, input.Role, input.Form, r.steps, now)
		if err := uc.writer.intents.Begin(ctx, intent); err != nil {
			uc.writer.logger.Warn("Failed to record write intent", zap.String("account_id", input.AccountID.String()), zap.Error(err))
		} else {
			r.intent = intent
		}
	}

	view, err := uc.writer.run(ctx, r)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := &UpdateProfileOutput{Profile: view}
	if r.intent != nil {
		out.IntentID = r.intent.ID
	}
	return out, nil
}
