package skill

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSkills is the number of physical slots a SkillSet row has.
const MaxSkills = 6

var (
	ErrTooManySkills    = errors.New("too many skills")
	ErrSkillSetNotFound = errors.New("skill set not found")
)

// Slots is the fixed storage layout. An empty string marks an unused slot.
type Slots [MaxSkills]string

type SkillSet struct {
	ID           uuid.UUID `json:"id"`
	FreelancerID uuid.UUID `json:"freelancer_id"`
	Slots        Slots     `json:"slots"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Skills returns the ordered, non-empty skills held by the set.
func (s *SkillSet) Skills() []string {
	return FromStorage(s.Slots)
}

// Normalize trims every entry and drops blank ones, keeping order.
func Normalize(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ToStorage packs skills into slots, padding unused trailing slots with "".
func ToStorage(skills []string) (Slots, error) {
	var slots Slots
	normalized := Normalize(skills)
	if len(normalized) > MaxSkills {
		return slots, ErrTooManySkills
	}
	copy(slots[:], normalized)
	return slots, nil
}

// FromStorage unpacks slots in order, skipping empty or whitespace-only ones.
func FromStorage(slots Slots) []string {
	return Normalize(slots[:])
}

type Repository interface {
	FindByFreelancerID(ctx context.Context, freelancerID uuid.UUID) (*SkillSet, error)
	Insert(ctx context.Context, set *SkillSet) error
	Update(ctx context.Context, set *SkillSet) error
}
