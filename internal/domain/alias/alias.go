// Package alias maps the historical key names a profile attribute has been
// stored under onto one canonical attribute. It is consulted only when
// decoding raw storage records; everything above the storage boundary uses
// canonical names.
package alias

import (
	"fmt"
	"strings"
	"time"
)

// Attribute is a canonical profile attribute name.
type Attribute string

const (
	FullName     Attribute = "full_name"
	Email        Attribute = "email"
	Phone        Attribute = "phone"
	City         Attribute = "city"
	State        Attribute = "state"
	LinkedInURL  Attribute = "linkedin_url"
	InstagramURL Attribute = "instagram_url"
	Bio          Attribute = "bio"
	Role         Attribute = "role"
	NationalID   Attribute = "national_id"
	BirthDate    Attribute = "birth_date"
	Occupation   Attribute = "occupation"
	PortfolioURL Attribute = "portfolio_url"
	TaxID        Attribute = "tax_id"
)

// SkillSlot returns the canonical attribute of the i-th skill slot (0-based).
func SkillSlot(i int) Attribute {
	return Attribute(fmt.Sprintf("skill_%d", i+1))
}

// Record is a raw storage row keyed by column or JSON key name.
type Record map[string]any

// Table lists, per canonical attribute, the keys to try in precedence order.
type Table struct {
	Version int
	Keys    map[Attribute][]string
}

// Default is the current alias table. Bump Version whenever a key list changes.
var Default = Table{
	Version: 3,
	Keys: map[Attribute][]string{
		FullName:     {"name_user", "name", "full_name"},
		Email:        {"email_user", "email"},
		Phone:        {"phone_user", "phone"},
		City:         {"city_user", "city"},
		State:        {"state_user", "state"},
		LinkedInURL:  {"linkedin_link_user", "linkedin", "linkedin_url"},
		InstagramURL: {"insta_link_user", "instagram", "instagram_url"},
		Bio:          {"bio_user", "bio"},
		Role:         {"type_user", "type", "role"},
		NationalID:   {"cpf_freelancer", "cpf", "national_id"},
		BirthDate:    {"birthday_freelancer", "birthday", "birth_date"},
		Occupation:   {"occupation_freelancer", "ocupation_freelancer", "ocuppation_freelancer", "occupation"},
		PortfolioURL: {"link_portfolio_freelancer", "portfolio", "portfolio_url"},
		TaxID:        {"cnpj_company", "cnpj", "tax_id"},
		SkillSlot(0): {"skill_1", "skill1"},
		SkillSlot(1): {"skill_2", "skill2"},
		SkillSlot(2): {"skill_3", "skill3"},
		SkillSlot(3): {"skill_4", "skill4"},
		SkillSlot(4): {"skill_5", "skill5"},
		SkillSlot(5): {"skill_6", "skill6"},
	},
}

// Resolve returns the value of the first alias key present with a non-empty
// value. Attributes unknown to the table resolve by their own name.
func (t Table) Resolve(rec Record, attr Attribute) (any, bool) {
	keys, ok := t.Keys[attr]
	if !ok {
		keys = []string{string(attr)}
	}
	for _, k := range keys {
		v, present := rec[k]
		if present && !isEmpty(v) {
			return v, true
		}
	}
	return nil, false
}

// String resolves attr and renders it as trimmed text.
func (t Table) String(rec Record, attr Attribute) (string, bool) {
	v, ok := t.Resolve(rec, attr)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case *string:
		return strings.TrimSpace(*s), true
	case []byte:
		return strings.TrimSpace(string(s)), true
	case time.Time:
		return s.Format(time.DateOnly), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// Time resolves attr as a date. Strings are accepted as YYYY-MM-DD or RFC 3339.
func (t Table) Time(rec Record, attr Attribute) (time.Time, bool) {
	v, ok := t.Resolve(rec, attr)
	if !ok {
		return time.Time{}, false
	}
	switch d := v.(type) {
	case time.Time:
		return d, true
	case *time.Time:
		return *d, true
	case string:
		s := strings.TrimSpace(d)
		if parsed, err := time.Parse(time.DateOnly, s); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Has reports whether any alias of attr carries a value.
func (t Table) Has(rec Record, attr Attribute) bool {
	_, ok := t.Resolve(rec, attr)
	return ok
}

func Resolve(rec Record, attr Attribute) (any, bool) { return Default.Resolve(rec, attr) }

func String(rec Record, attr Attribute) (string, bool) { return Default.String(rec, attr) }

func Time(rec Record, attr Attribute) (time.Time, bool) { return Default.Time(rec, attr) }

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case *string:
		return x == nil || strings.TrimSpace(*x) == ""
	case []byte:
		return len(strings.TrimSpace(string(x))) == 0
	case time.Time:
		return x.IsZero()
	case *time.Time:
		return x == nil || x.IsZero()
	}
	return false
}
