package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillmatch/internal/domain/account"
)

var today = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func validFreelancerForm() FormState {
	return FormState{
		FullName:   "Ana Souza",
		Email:      "ana@example.com",
		NationalID: "123.456.789-00",
		BirthDate:  "1995-07-21",
		Occupation: "Designer",
		Skills:     []string{"Figma", "CSS"},
	}
}

func fieldErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func TestNormalize(t *testing.T) {
	f := validFreelancerForm()
	f.FullName = "  Ana Souza "
	f.Skills = []string{" Go ", "", "  ", "SQL"}

	e := f.Normalize()

	assert.Equal(t, FormStateVersion, e.Version)
	assert.Equal(t, "Ana Souza", e.FullName)
	assert.Equal(t, "12345678900", e.NationalID)
	assert.Equal(t, []string{"Go", "SQL"}, e.Skills)
	require.NotNil(t, e.BirthDate)
	assert.Equal(t, time.Date(1995, 7, 21, 0, 0, 0, 0, time.UTC), *e.BirthDate)
}

func TestValidate_FreelancerOK(t *testing.T) {
	err := validFreelancerForm().Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today)
	assert.NoError(t, err)
}

func TestValidate_NationalID(t *testing.T) {
	f := validFreelancerForm()
	f.NationalID = "123.456.789-0"

	verrs := fieldErrors(t, f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))
	assert.Equal(t, "national id must have 11 digits", verrs["national_id"])

	f.NationalID = ""
	verrs = fieldErrors(t, f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))
	assert.Equal(t, "national id is required", verrs["national_id"])
}

func TestValidate_RequiredFields(t *testing.T) {
	verrs := fieldErrors(t, FormState{}.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))

	for _, k := range []string{"full_name", "email", "national_id", "birth_date", "occupation"} {
		assert.Contains(t, verrs, k)
	}
	assert.NotContains(t, verrs, "password")
}

func TestValidate_AgePolicy(t *testing.T) {
	// turns 16 tomorrow
	f := validFreelancerForm()
	f.BirthDate = "2010-03-11"
	e := f.Normalize()

	loose := DefaultPolicy()
	assert.NoError(t, e.Validate(account.RoleFreelancer, loose, today))

	strict := DefaultPolicy()
	strict.AgePolicy = AgeStrict
	verrs := fieldErrors(t, e.Validate(account.RoleFreelancer, strict, today))
	assert.Equal(t, "must be at least 16 years old", verrs["birth_date"])

	f.BirthDate = "2010-03-10"
	assert.NoError(t, f.Normalize().Validate(account.RoleFreelancer, strict, today))

	f.BirthDate = "2011-01-01"
	verrs = fieldErrors(t, f.Normalize().Validate(account.RoleFreelancer, loose, today))
	assert.Contains(t, verrs, "birth_date")
}

func TestValidate_BadBirthDate(t *testing.T) {
	f := validFreelancerForm()
	f.BirthDate = "21/07/1995"

	verrs := fieldErrors(t, f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))
	assert.Contains(t, verrs["birth_date"], "valid date")
}

func TestValidate_Password(t *testing.T) {
	cases := []struct {
		name     string
		pw, conf string
		want     string
	}{
		{"only confirm", "", "secret1", "both password fields are required"},
		{"mismatch", "secret1", "secret2", "passwords do not match"},
		{"too short", "abc", "abc", "password must have at least 6 characters"},
		{"ok", "secret1", "secret1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFreelancerForm()
			f.NewPassword, f.ConfirmPassword = tc.pw, tc.conf
			err := f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today)
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.want, fieldErrors(t, err)["password"])
		})
	}
}

func TestValidate_Skills(t *testing.T) {
	f := validFreelancerForm()
	f.Skills = []string{"1", "2", "3", "4", "5", "6"}
	assert.NoError(t, f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))

	f.Skills = append(f.Skills, "7")
	verrs := fieldErrors(t, f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))
	assert.Equal(t, "too many skills", verrs["skills"])

	f.Skills = []string{" ", ""}
	assert.NoError(t, f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))

	p := DefaultPolicy()
	p.RequireSkill = true
	verrs = fieldErrors(t, f.Normalize().Validate(account.RoleFreelancer, p, today))
	assert.Equal(t, "at least one skill is required", verrs["skills"])
}

func TestValidate_Company(t *testing.T) {
	f := FormState{FullName: "Acme", Email: "hi@acme.test"}
	assert.NoError(t, f.Normalize().Validate(account.RoleCompany, DefaultPolicy(), today))

	f.TaxID = "12.345.678/0001-9"
	verrs := fieldErrors(t, f.Normalize().Validate(account.RoleCompany, DefaultPolicy(), today))
	assert.Equal(t, "tax id must have 14 digits", verrs["tax_id"])

	f.TaxID = "12.345.678/0001-95"
	assert.NoError(t, f.Normalize().Validate(account.RoleCompany, DefaultPolicy(), today))
}

func TestValidate_UnknownVersion(t *testing.T) {
	f := validFreelancerForm()
	f.Version = FormStateVersion + 1

	verrs := fieldErrors(t, f.Normalize().Validate(account.RoleFreelancer, DefaultPolicy(), today))
	assert.Contains(t, verrs, "version")
}

func TestValidationErrors_ErrorIsSorted(t *testing.T) {
	err := ValidationErrors{"email": "email is required", "full_name": "full name is required"}
	assert.Equal(t, "email is required, full name is required", err.Error())
}

func TestParseAgePolicy(t *testing.T) {
	p, err := ParseAgePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, AgeLoose, p)

	p, err = ParseAgePolicy("STRICT")
	assert.NoError(t, err)
	assert.Equal(t, AgeStrict, p)

	_, err = ParseAgePolicy("lenient")
	assert.Error(t, err)
}

func TestPlan(t *testing.T) {
	e := validFreelancerForm().Normalize()
	assert.Equal(t, []Step{StepAccount, StepRoleProfile, StepSkillSet}, Plan(account.RoleFreelancer, e))

	e.NewPassword = "secret1"
	assert.Equal(t, []Step{StepAccount, StepRoleProfile, StepSkillSet, StepCredential}, Plan(account.RoleFreelancer, e))
	assert.Equal(t, []Step{StepAccount, StepRoleProfile, StepCredential}, Plan(account.RoleCompany, e))
}

func TestDocuments(t *testing.T) {
	assert.Equal(t, "12345678900", DigitsOnly("123.456.789-00"))
	assert.Equal(t, "123.456.789-00", FormatNationalID("12345678900"))
	assert.Equal(t, "1234", FormatNationalID("1234"))
	assert.Equal(t, "12.345.678/0001-95", FormatTaxID("12345678000195"))
	assert.Equal(t, "StepLabel", Step("StepLabel").Label(account.RoleFreelancer))
	assert.Equal(t, "company profile", StepRoleProfile.Label(account.RoleCompany))
}
