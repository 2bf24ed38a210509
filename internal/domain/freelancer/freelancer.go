package freelancer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrFreelancerNotFound = errors.New("freelancer profile not found")

type Profile struct {
	ID           uuid.UUID  `json:"id"`
	AccountID    uuid.UUID  `json:"account_id"`
	NationalID   string     `json:"national_id"`
	BirthDate    *time.Time `json:"birth_date"`
	Occupation   string     `json:"occupation"`
	PortfolioURL string     `json:"portfolio_url"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Repository interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*Profile, error)
	Insert(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
}
