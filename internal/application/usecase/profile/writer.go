package profile

import (
	"context"
	"errors"
	"time"

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

// writer runs the ordered save sequence shared by update and resume.
// Steps are committed one by one; nothing is rolled back when a later step fails.
type writer struct {
	repos       Repositories
	credentials service.CredentialUpdater
	intents     profile.IntentRepository
	cache       service.ProfileCache
	events      service.EventPublisher
	logger      logger.Logger
}

// saveRun carries the state one sequence builds up; later steps need ids from earlier ones.
type saveRun struct {
	accountID uuid.UUID
	role      account.Role
	edit      profile.Edit
	now       time.Time
	intent    *profile.WriteIntent
	steps     []profile.Step

	acct *account.Account
	fp   *freelancer.Profile
	cp   *company.Profile
	set  *skill.SkillSet
}

func (r *saveRun) done(s profile.Step) bool {
	return r.intent != nil && r.intent.IsDone(s)
}

func (w *writer) run(ctx context.Context, r *saveRun) (*profile.View, error) {
	log := w.logger.With(zap.String("account_id", r.accountID.String()), zap.String("role", string(r.role)))

	w.invalidate(ctx, r.accountID, log)

	for _, step := range r.steps {
		if err := w.runStep(ctx, r, step, log); err != nil {
			w.markFailed(ctx, r, step, err, log)
			w.invalidate(ctx, r.accountID, log)
			return nil, err
		}
		w.markDone(ctx, r, step, log)
	}

	if r.intent != nil && w.intents != nil {
		if err := w.intents.Complete(ctx, r.intent.ID); err != nil {
			log.Warn("Failed to complete write intent", zap.String("intent_id", r.intent.ID.String()), zap.Error(err))
		}
	}

	view := profile.Merge(r.acct, r.fp, r.cp, r.set)

	// Readers that loaded before the commit hold an older generation and
	// cannot store their view; the next read (or the worker) refills it.
	w.invalidate(ctx, r.accountID, log)

	if w.events != nil {
		err := w.events.PublishProfileEvent(ctx, service.ProfileEvent{
			EventType:  service.EventTypeProfileUpdated,
			AccountID:  r.accountID,
			Role:       r.role,
			Steps:      r.steps,
			OccurredAt: r.now,
		})
		if err != nil {
			log.Error("Failed to publish profile event", err)
		}
	}

	log.Info("Profile saved", zap.Int("steps", len(r.steps)))
	return view, nil
}

func (w *writer) runStep(ctx context.Context, r *saveRun, step profile.Step, log logger.Logger) error {
	ctx, span := tracer.Start(ctx, "SaveStep")
	defer span.End()
	span.SetAttributes(attribute.String("profile.step", string(step)), attribute.Bool("profile.step.resumed", r.done(step)))

	var err error
	switch step {
	case profile.StepAccount:
		err = w.saveAccount(ctx, r)
	case profile.StepRoleProfile:
		err = w.saveRoleProfile(ctx, r)
	case profile.StepSkillSet:
		err = w.saveSkillSet(ctx, r)
	case profile.StepCredential:
		err = w.changeCredential(ctx, r)
	default:
		err = apperror.NewInternal("unknown write step "+string(step), nil)
	}
	if err == nil {
		return nil
	}

	span.RecordError(err)
	log.Error("Profile write step failed", err, zap.String("step", string(step)))

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Step != "" {
		return err
	}
	return apperror.NewStorageStep(string(step), step.Label(r.role), err)
}

func (w *writer) saveAccount(ctx context.Context, r *saveRun) error {
	r.acct = r.edit.Account(r.accountID, r.role, r.now)
	if r.done(profile.StepAccount) {
		return nil
	}
	err := w.repos.Accounts.Update(ctx, r.acct)
	if errors.Is(err, account.ErrAccountNotFound) {
		nf := apperror.NewNotFound("account", r.accountID.String())
		nf.Step = string(profile.StepAccount)
		return nf
	}
	return err
}

func (w *writer) saveRoleProfile(ctx context.Context, r *saveRun) error {
	switch r.role {
	case account.RoleFreelancer:
		return w.saveFreelancer(ctx, r)
	case account.RoleCompany:
		return w.saveCompany(ctx, r)
	}
	return account.ErrInvalidRole
}

func (w *writer) saveFreelancer(ctx context.Context, r *saveRun) error {
	fp, err := w.repos.Freelancers.FindByAccountID(ctx, r.accountID)
	found := err == nil
	if err != nil && !errors.Is(err, freelancer.ErrFreelancerNotFound) {
		return err
	}
	if !found {
		fp = &freelancer.Profile{ID: uuid.New(), AccountID: r.accountID}
	}

	fp.NationalID = r.edit.NationalID
	fp.BirthDate = r.edit.BirthDate
	fp.Occupation = r.edit.Occupation
	fp.PortfolioURL = r.edit.PortfolioURL
	fp.UpdatedAt = r.now
	r.fp = fp

	switch {
	case found && r.done(profile.StepRoleProfile):
		return nil
	case found:
		return w.repos.Freelancers.Update(ctx, fp)
	default:
		return w.repos.Freelancers.Insert(ctx, fp)
	}
}

func (w *writer) saveCompany(ctx context.Context, r *saveRun) error {
	cp, err := w.repos.Companies.FindByAccountID(ctx, r.accountID)
	found := err == nil
	if err != nil && !errors.Is(err, company.ErrCompanyNotFound) {
		return err
	}
	if !found {
		cp = &company.Profile{ID: uuid.New(), AccountID: r.accountID}
	}

	cp.TaxID = r.edit.TaxID
	cp.UpdatedAt = r.now
	r.cp = cp

	switch {
	case found && r.done(profile.StepRoleProfile):
		return nil
	case found:
		return w.repos.Companies.Update(ctx, cp)
	default:
		return w.repos.Companies.Insert(ctx, cp)
	}
}

func (w *writer) saveSkillSet(ctx context.Context, r *saveRun) error {
	if r.fp == nil {
		return apperror.NewInternal("skill set saved before freelancer profile", nil)
	}
	slots, err := skill.ToStorage(r.edit.Skills)
	if err != nil {
		return apperror.NewValidation(map[string]string{"skills": err.Error()})
	}

	set, err := w.repos.Skills.FindByFreelancerID(ctx, r.fp.ID)
	found := err == nil
	if err != nil && !errors.Is(err, skill.ErrSkillSetNotFound) {
		return err
	}
	if !found {
		set = &skill.SkillSet{ID: uuid.New(), FreelancerID: r.fp.ID}
	}
	set.Slots = slots
	set.UpdatedAt = r.now
	r.set = set

	switch {
	case found && r.done(profile.StepSkillSet):
		return nil
	case found:
		return w.repos.Skills.Update(ctx, set)
	default:
		return w.repos.Skills.Insert(ctx, set)
	}
}

func (w *writer) changeCredential(ctx context.Context, r *saveRun) error {
	if !r.edit.ChangesPassword() || r.done(profile.StepCredential) {
		return nil
	}
	if w.credentials == nil {
		return apperror.NewUpstream(string(profile.StepCredential), profile.StepCredential.Label(r.role), errors.New("no credential provider configured"))
	}
	if err := w.credentials.UpdatePassword(ctx, r.accountID, r.edit.NewPassword); err != nil {
		return apperror.NewUpstream(string(profile.StepCredential), profile.StepCredential.Label(r.role), err)
	}
	return nil
}

func (w *writer) markDone(ctx context.Context, r *saveRun, step profile.Step, log logger.Logger) {
	if r.intent == nil || w.intents == nil || r.done(step) {
		return
	}
	if err := w.intents.MarkDone(ctx, r.intent.ID, step); err != nil {
		log.Warn("Failed to record finished step", zap.String("step", string(step)), zap.Error(err))
		return
	}
	r.intent.Done = append(r.intent.Done, step)
}

func (w *writer) markFailed(ctx context.Context, r *saveRun, step profile.Step, cause error, log logger.Logger) {
	if r.intent == nil || w.intents == nil {
		return
	}
	if err := w.intents.MarkFailed(ctx, r.intent.ID, step, cause.Error()); err != nil {
		log.Warn("Failed to record failed step", zap.String("step", string(step)), zap.Error(err))
	}
}

func (w *writer) invalidate(ctx context.Context, accountID uuid.UUID, log logger.Logger) {
	if w.cache == nil {
		return
	}
	if err := w.cache.Invalidate(ctx, accountID); err != nil {
		log.Warn("Profile cache invalidation failed", zap.Error(err))
	}
}
