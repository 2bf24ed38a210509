package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/apperror"
)

// ResumeProfileUseCase finishes the most recent interrupted save of an account,
// running only the steps its write intent has not recorded as done.
type ResumeProfileUseCase struct {
	writer *writer
	policy profile.Policy
	now    Clock
}

func NewResumeProfileUseCase(update *UpdateProfileUseCase) *ResumeProfileUseCase {
	return &ResumeProfileUseCase{writer: update.writer, policy: update.policy, now: update.now}
}

type ResumeProfileInput struct {
	AccountID uuid.UUID
	// The intent never stores passwords, so a pending credential step needs them again.
	NewPassword     string
	ConfirmPassword string
}

type ResumeProfileOutput struct {
	Profile  *profile.View
	IntentID uuid.UUID
	Resumed  []profile.Step
}

func (uc *ResumeProfileUseCase) Execute(ctx context.Context, input ResumeProfileInput) (*ResumeProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ResumeProfile")
	defer span.End()

	if input.AccountID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("no session account")
	}
	if uc.writer.intents == nil {
		return nil, apperror.NewNotFound("write intent", input.AccountID.String())
	}

	intent, err := uc.writer.intents.FindOpenByAccountID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, profile.ErrIntentNotFound) {
			return nil, apperror.NewNotFound("write intent", input.AccountID.String())
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("intent_id", intent.ID.String()))

	form := intent.Payload
	form.NewPassword = input.NewPassword
	form.ConfirmPassword = input.ConfirmPassword
	edit := form.Normalize()

	pending := intent.Pending()
	credentialPending := !intent.IsDone(profile.StepCredential) && containsStep(intent.Steps, profile.StepCredential)
	if credentialPending && !edit.ChangesPassword() {
		return nil, apperror.NewValidation(map[string]string{"password": "password must be submitted again to finish saving"})
	}
	if !credentialPending {
		edit.NewPassword, edit.ConfirmPassword = "", ""
	}

	now := uc.now()
	if err := edit.Validate(intent.Role, uc.policy, now); err != nil {
		var fields profile.ValidationErrors
		if errors.As(err, &fields) {
			return nil, apperror.NewValidation(fields)
		}
		return nil, apperror.NewInvalidInput("profile validation failed", err)
	}

	r := &saveRun{
		accountID: intent.AccountID,
		role:      intent.Role,
		edit:      edit,
		now:       now,
		intent:    intent,
		steps:     intent.Steps,
	}
	view, err := uc.writer.run(ctx, r)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ResumeProfileOutput{Profile: view, IntentID: intent.ID, Resumed: pending}, nil
}

func containsStep(steps []profile.Step, s profile.Step) bool {
	for _, x := range steps {
		if x == s {
			return true
		}
	}
	return false
}
