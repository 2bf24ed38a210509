package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/company"
	"github.com/khoahotran/skillmatch/internal/domain/freelancer"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
)

// View is the canonical, merged profile. It is never persisted as such.
type View struct {
	AccountID    uuid.UUID    `json:"account_id"`
	Role         account.Role `json:"role"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	City         string       `json:"city,omitempty"`
	State        string       `json:"state,omitempty"`
	LinkedInURL  string       `json:"linkedin_url,omitempty"`
	InstagramURL string       `json:"instagram_url,omitempty"`
	Bio          string       `json:"bio,omitempty"`

	NationalID   string     `json:"national_id,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Occupation   string     `json:"occupation,omitempty"`
	PortfolioURL string     `json:"portfolio_url,omitempty"`
	TaxID        string     `json:"tax_id,omitempty"`

	Skills []string `json:"skills"`

	// RoleProfileExists is false when the role-specific row has not been created yet.
	RoleProfileExists bool `json:"role_profile_exists"`
	SkillSetExists    bool `json:"skill_set_exists"`
}

// Merge builds a View from the stored entities. fp, cp and set may be nil.
func Merge(a *account.Account, fp *freelancer.Profile, cp *company.Profile, set *skill.SkillSet) *View {
	v := &View{
		AccountID:    a.ID,
		Role:         a.Role,
		FullName:     a.FullName,
		Email:        a.Email,
		Phone:        a.Phone,
		City:         a.City,
		State:        a.State,
		LinkedInURL:  a.LinkedInURL,
		InstagramURL: a.InstagramURL,
		Bio:          a.Bio,
		Skills:       []string{},
	}
	switch a.Role {
	case account.RoleFreelancer:
		if fp != nil {
			v.RoleProfileExists = true
			v.NationalID = fp.NationalID
			v.BirthDate = fp.BirthDate
			v.Occupation = fp.Occupation
			v.PortfolioURL = fp.PortfolioURL
		}
		if set != nil {
			v.SkillSetExists = true
			v.Skills = set.Skills()
		}
	case account.RoleCompany:
		if cp != nil {
			v.RoleProfileExists = true
			v.TaxID = cp.TaxID
		}
	}
	return v
}
