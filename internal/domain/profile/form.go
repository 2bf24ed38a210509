package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/skill"
)

// FormStateVersion is the edit payload layout this package understands.
const FormStateVersion = 1

// FormState is the raw edit payload as submitted by a profile form.
type FormState struct {
	Version int `json:"version"`

	FullName     string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	LinkedInURL  string `json:"linkedin"`
	InstagramURL string `json:"instagram"`
	Bio          string `json:"bio"`

	NationalID   string `json:"cpf"`
	BirthDate    string `json:"birthday"`
	Occupation   string `json:"occupation"`
	PortfolioURL string `json:"portfolio"`
	TaxID        string `json:"cnpj"`

	Skills []string `json:"skills"`

	NewPassword     string `json:"newPassword,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// Edit is a normalized FormState: text trimmed, documents reduced to digits,
// skills trimmed with blanks dropped.
type Edit struct {
	Version      int
	FullName     string
	Email        string
	Phone        string
	City         string
	State        string
	LinkedInURL  string
	InstagramURL string
	Bio          string

	NationalID    string
	NationalIDRaw string
	BirthDate     *time.Time
	BirthDateRaw  string
	Occupation    string
	PortfolioURL  string
	TaxID         string
	TaxIDRaw      string

	Skills []string

	NewPassword     string
	ConfirmPassword string
}

func (f FormState) Normalize() Edit {
	e := Edit{
		Version:         f.Version,
		FullName:        strings.TrimSpace(f.FullName),
		Email:           strings.TrimSpace(f.Email),
		Phone:           strings.TrimSpace(f.Phone),
		City:            strings.TrimSpace(f.City),
		State:           strings.TrimSpace(f.State),
		LinkedInURL:     strings.TrimSpace(f.LinkedInURL),
		InstagramURL:    strings.TrimSpace(f.InstagramURL),
		Bio:             strings.TrimSpace(f.Bio),
		NationalIDRaw:   strings.TrimSpace(f.NationalID),
		NationalID:      DigitsOnly(f.NationalID),
		BirthDateRaw:    strings.TrimSpace(f.BirthDate),
		Occupation:      strings.TrimSpace(f.Occupation),
		PortfolioURL:    strings.TrimSpace(f.PortfolioURL),
		TaxIDRaw:        strings.TrimSpace(f.TaxID),
		TaxID:           DigitsOnly(f.TaxID),
		Skills:          skill.Normalize(f.Skills),
		NewPassword:     f.NewPassword,
		ConfirmPassword: f.ConfirmPassword,
	}
	if e.Version == 0 {
		e.Version = FormStateVersion
	}
	if e.BirthDateRaw != "" {
		if d, err := parseDate(e.BirthDateRaw); err == nil {
			e.BirthDate = &d
		}
	}
	return e
}

// ChangesPassword reports whether a new credential was supplied.
func (e Edit) ChangesPassword() bool {
	return e.NewPassword != ""
}

type AgePolicy string

const (
	// AgeLoose compares calendar years only, so someone turning 16 later this year already passes.
	AgeLoose AgePolicy = "loose"
	// AgeStrict requires the birthday to have been reached.
	AgeStrict AgePolicy = "strict"
)

func ParseAgePolicy(s string) (AgePolicy, error) {
	switch AgePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", AgeLoose:
		return AgeLoose, nil
	case AgeStrict:
		return AgeStrict, nil
	}
	return "", fmt.Errorf("unknown age policy %q", s)
}

type Policy struct {
	AgePolicy         AgePolicy
	MinAge            int
	RequireSkill      bool
	MinPasswordLength int
}

func DefaultPolicy() Policy {
	return Policy{
		AgePolicy:         AgeLoose,
		MinAge:            16,
		RequireSkill:      false,
		MinPasswordLength: 6,
	}
}

// Age computes the age on the given day under the policy.
func (p Policy) Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if p.AgePolicy == AgeStrict {
		if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
			age--
		}
	}
	return age
}

// ValidationErrors maps a canonical field name to a human readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, v[k])
	}
	return strings.Join(msgs, ", ")
}

var ErrUnsupportedVersion = errors.New("unsupported form version")

// Validate checks every rule for role and returns ValidationErrors holding all failures.
func (e Edit) Validate(role account.Role, p Policy, now time.Time) error {
	errs := ValidationErrors{}

	if e.Version > FormStateVersion {
		errs["version"] = ErrUnsupportedVersion.Error()
	}
	if e.FullName == "" {
		errs["full_name"] = "full name is required"
	}
	if e.Email == "" {
		errs["email"] = "email is required"
	}

	switch role {
	case account.RoleFreelancer:
		switch {
		case e.NationalIDRaw == "":
			errs["national_id"] = "national id is required"
		case len(e.NationalID) != NationalIDDigits:
			errs["national_id"] = fmt.Sprintf("national id must have %d digits", NationalIDDigits)
		}

		switch {
		case e.BirthDateRaw == "":
			errs["birth_date"] = "birth date is required"
		case e.BirthDate == nil:
			errs["birth_date"] = "birth date must be a valid date (YYYY-MM-DD)"
		case p.Age(*e.BirthDate, now) < p.MinAge:
			errs["birth_date"] = fmt.Sprintf("must be at least %d years old", p.MinAge)
		}

		if e.Occupation == "" {
			errs["occupation"] = "occupation is required"
		}

		if len(e.Skills) > skill.MaxSkills {
			errs["skills"] = skill.ErrTooManySkills.Error()
		} else if p.RequireSkill && len(e.Skills) == 0 {
			errs["skills"] = "at least one skill is required"
		}
	case account.RoleCompany:
		if e.TaxIDRaw != "" && len(e.TaxID) != TaxIDDigits {
			errs["tax_id"] = fmt.Sprintf("tax id must have %d digits", TaxIDDigits)
		}
	default:
		errs["role"] = account.ErrInvalidRole.Error()
	}

	if e.NewPassword != "" || e.ConfirmPassword != "" {
		switch {
		case e.NewPassword == "" || e.ConfirmPassword == "":
			errs["password"] = "both password fields are required"
		case e.NewPassword != e.ConfirmPassword:
			errs["password"] = "passwords do not match"
		case len([]rune(e.NewPassword)) < p.MinPasswordLength:
			errs["password"] = fmt.Sprintf("password must have at least %d characters", p.MinPasswordLength)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Account returns the account row this edit writes.
func (e Edit) Account(id uuid.UUID, role account.Role, now time.Time) *account.Account {
	return &account.Account{
		ID:           id,
		FullName:     e.FullName,
		Email:        e.Email,
		Phone:        e.Phone,
		City:         e.City,
		State:        e.State,
		LinkedInURL:  e.LinkedInURL,
		InstagramURL: e.InstagramURL,
		Bio:          e.Bio,
		Role:         role,
		UpdatedAt:    now,
	}
}

func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	// some clients send the full timestamp back
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}
