package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/company"
	"github.com/khoahotran/skillmatch/internal/domain/freelancer"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

type GetProfileUseCase struct {
	repos  Repositories
	cache  service.ProfileCache
	logger logger.Logger
}

// NewGetProfileUseCase builds the reader. cache may be nil.
func NewGetProfileUseCase(repos Repositories, cache service.ProfileCache, log logger.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{repos: repos, cache: cache, logger: log}
}

type GetProfileInput struct {
	AccountID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.View
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	if input.AccountID == uuid.Nil {
		return nil, apperror.NewNotAuthenticated("no session account")
	}
	span.SetAttributes(attribute.String("account_id", input.AccountID.String()))

	log := uc.logger.With(zap.String("account_id", input.AccountID.String()))

	// The generation is taken before the rows are read, so a save that
	// commits in between makes the fill below a no-op.
	gen, cacheable := int64(0), false
	if uc.cache != nil {
		view, err := uc.cache.Get(ctx, input.AccountID)
		if err == nil {
			return &GetProfileOutput{Profile: view}, nil
		}
		if !errors.Is(err, service.ErrCacheMiss) {
			log.Warn("Profile cache read failed", zap.Error(err))
		}
		if gen, err = uc.cache.Generation(ctx, input.AccountID); err != nil {
			log.Warn("Profile cache generation read failed", zap.Error(err))
		} else {
			cacheable = true
		}
	}

	view, err := uc.load(ctx, input.AccountID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if cacheable {
		stored, err := uc.cache.SetIfGeneration(ctx, view, gen)
		switch {
		case err != nil:
			log.Warn("Profile cache write failed", zap.Error(err))
		case !stored:
			log.Debug("Profile changed while loading, view not cached", zap.Int64("generation", gen))
		}
	}
	return &GetProfileOutput{Profile: view}, nil
}

func (uc *GetProfileUseCase) load(ctx context.Context, id uuid.UUID) (*profile.View, error) {
	a, err := uc.repos.Accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, apperror.NewNotFound("account", id.String())
		}
		return nil, err
	}

	var (
		fp  *freelancer.Profile
		cp  *company.Profile
		set *skill.SkillSet
	)
	switch a.Role {
	case account.RoleFreelancer:
		fp, err = uc.repos.Freelancers.FindByAccountID(ctx, id)
		if err != nil && !errors.Is(err, freelancer.ErrFreelancerNotFound) {
			return nil, err
		}
		if fp != nil {
			set, err = uc.repos.Skills.FindByFreelancerID(ctx, fp.ID)
			if err != nil && !errors.Is(err, skill.ErrSkillSetNotFound) {
				return nil, err
			}
		}
	case account.RoleCompany:
		cp, err = uc.repos.Companies.FindByAccountID(ctx, id)
		if err != nil && !errors.Is(err, company.ErrCompanyNotFound) {
			return nil, err
		}
	default:
		return nil, apperror.NewInternal("account has no valid role", account.ErrInvalidRole)
	}

	return profile.Merge(a, fp, cp, set), nil
}
