package http

import (
	"time"

	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
)

type SkillDTO struct {
	Name     string         `json:"name"`
	Category skill.Category `json:"category"`
}

// ProfileDTO is the read representation. Documents are formatted for display;
// fields the profile does not have are omitted.
type ProfileDTO struct {
	AccountID    string `json:"account_id"`
	Role         string `json:"role"`
	FullName     string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	LinkedInURL  string `json:"linkedin,omitempty"`
	InstagramURL string `json:"instagram,omitempty"`
	Bio          string `json:"bio,omitempty"`

	NationalID   string     `json:"cpf,omitempty"`
	BirthDate    string     `json:"birthday,omitempty"`
	Occupation   string     `json:"occupation,omitempty"`
	PortfolioURL string     `json:"portfolio,omitempty"`
	TaxID        string     `json:"cnpj,omitempty"`
	Skills       []SkillDTO `json:"skills"`

	RoleProfileExists bool `json:"role_profile_exists"`
	SkillSetExists    bool `json:"skill_set_exists"`
}

func ToProfileDTO(v *profile.View) ProfileDTO {
	dto := ProfileDTO{
		AccountID:         v.AccountID.String(),
		Role:              string(v.Role),
		FullName:          v.FullName,
		Email:             v.Email,
		Phone:             v.Phone,
		City:              v.City,
		State:             v.State,
		LinkedInURL:       v.LinkedInURL,
		InstagramURL:      v.InstagramURL,
		Bio:               v.Bio,
		Occupation:        v.Occupation,
		PortfolioURL:      v.PortfolioURL,
		Skills:            make([]SkillDTO, 0, len(v.Skills)),
		RoleProfileExists: v.RoleProfileExists,
		SkillSetExists:    v.SkillSetExists,
	}
	if v.NationalID != "" {
		dto.NationalID = profile.FormatNationalID(v.NationalID)
	}
	if v.TaxID != "" {
		dto.TaxID = profile.FormatTaxID(v.TaxID)
	}
	if v.BirthDate != nil {
		dto.BirthDate = v.BirthDate.Format(time.DateOnly)
	}
	for _, s := range v.Skills {
		dto.Skills = append(dto.Skills, SkillDTO{Name: s, Category: skill.Classify(s)})
	}
	return dto
}

type ProfileResponse struct {
	Success  bool       `json:"success"`
	Profile  ProfileDTO `json:"profile"`
	IntentID string     `json:"intent_id,omitempty"`
	Resumed  []string   `json:"resumed_steps,omitempty"`
}

type resumeRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
