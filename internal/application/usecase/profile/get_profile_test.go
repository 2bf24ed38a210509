package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/company"
	"github.com/khoahotran/skillmatch/internal/domain/freelancer"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

func TestGetProfile_NotAuthenticated(t *testing.T) {
	f := newFixture()
	uc := NewGetProfileUseCase(f.repos(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), GetProfileInput{})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newFixture()
	uc := NewGetProfileUseCase(f.repos(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), GetProfileInput{AccountID: uuid.New()})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetProfile_MissingRoleProfileIsEmptyNotError(t *testing.T) {
	f := newFixture()
	id := f.seedAccount(account.RoleFreelancer)
	uc := NewGetProfileUseCase(f.repos(), nil, logger.NewNop())

	out, err := uc.Execute(context.Background(), GetProfileInput{AccountID: id})

	require.NoError(t, err)
	assert.False(t, out.Profile.RoleProfileExists)
	assert.False(t, out.Profile.SkillSetExists)
	assert.Empty(t, out.Profile.NationalID)
	assert.NotNil(t, out.Profile.Skills)
	assert.Empty(t, out.Profile.Skills)
}

func TestGetProfile_MissingSkillSetIsEmptyList(t *testing.T) {
	f := newFixture()
	id := f.seedAccount(account.RoleFreelancer)
	f.freelancers.rows[id] = freelancer.Profile{ID: uuid.New(), AccountID: id, Occupation: "Dev"}
	uc := NewGetProfileUseCase(f.repos(), nil, logger.NewNop())

	out, err := uc.Execute(context.Background(), GetProfileInput{AccountID: id})

	require.NoError(t, err)
	assert.True(t, out.Profile.RoleProfileExists)
	assert.False(t, out.Profile.SkillSetExists)
	assert.Equal(t, "Dev", out.Profile.Occupation)
	assert.Equal(t, []string{}, out.Profile.Skills)
}

func TestGetProfile_SkillsInSlotOrder(t *testing.T) {
	f := newFixture()
	id := f.seedAccount(account.RoleFreelancer)
	fpID := uuid.New()
	f.freelancers.rows[id] = freelancer.Profile{ID: fpID, AccountID: id}
	f.skills.rows[fpID] = skill.SkillSet{ID: uuid.New(), FreelancerID: fpID, Slots: skill.Slots{"", "Go", "", "SQL", " ", "Rust"}}
	uc := NewGetProfileUseCase(f.repos(), nil, logger.NewNop())

	out, err := uc.Execute(context.Background(), GetProfileInput{AccountID: id})

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "Rust"}, out.Profile.Skills)
}

func TestGetProfile_Company(t *testing.T) {
	f := newFixture()
	id := f.seedAccount(account.RoleCompany)
	f.companies.rows[id] = company.Profile{ID: uuid.New(), AccountID: id, TaxID: "12345678000195"}
	uc := NewGetProfileUseCase(f.repos(), nil, logger.NewNop())

	out, err := uc.Execute(context.Background(), GetProfileInput{AccountID: id})

	require.NoError(t, err)
	assert.Equal(t, account.RoleCompany, out.Profile.Role)
	assert.Equal(t, "12345678000195", out.Profile.TaxID)
	assert.True(t, out.Profile.RoleProfileExists)
}

func TestGetProfile_StorageErrorPropagates(t *testing.T) {
	f := newFixture()
	id := f.seedAccount(account.RoleFreelancer)
	f.freelancers.findErr = apperror.NewInternal("failed to query freelancer profile", errInjected)
	uc := NewGetProfileUseCase(f.repos(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), GetProfileInput{AccountID: id})

	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.ErrorIs(t, err, errInjected)
}

func TestGetProfile_ServesFromCache(t *testing.T) {
	f := newFixture()
	id := f.seedAccount(account.RoleFreelancer)
	uc := NewGetProfileUseCase(f.repos(), f.cache, logger.NewNop())

	_, err := uc.Execute(context.Background(), GetProfileInput{AccountID: id})
	require.NoError(t, err)

	delete(f.accounts.rows, id)
	out, err := uc.Execute(context.Background(), GetProfileInput{AccountID: id})

	require.NoError(t, err)
	assert.Equal(t, "Old Name", out.Profile.FullName)
}
