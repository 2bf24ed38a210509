package profile

import "github.com/khoahotran/skillmatch/internal/domain/account"

// Step identifies one write of the save sequence.
type Step string

const (
	StepAccount     Step = "account"
	StepRoleProfile Step = "role_profile"
	StepSkillSet    Step = "skillset"
	StepCredential  Step = "credential"
)

// Label names the part of the profile a step saves, for user-facing messages.
func (s Step) Label(role account.Role) string {
	switch s {
	case StepAccount:
		return "account details"
	case StepRoleProfile:
		if role == account.RoleCompany {
			return "company profile"
		}
		return "freelancer profile"
	case StepSkillSet:
		return "skills"
	case StepCredential:
		return "password"
	}
	return string(s)
}

// Plan lists the steps an edit needs, in execution order.
func Plan(role account.Role, e Edit) []Step {
	steps := []Step{StepAccount, StepRoleProfile}
	if role == account.RoleFreelancer {
		steps = append(steps, StepSkillSet)
	}
	if e.ChangesPassword() {
		steps = append(steps, StepCredential)
	}
	return steps
}
