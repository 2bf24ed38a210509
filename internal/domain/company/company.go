package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCompanyNotFound = errors.New("company profile not found")

type Profile struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	TaxID     string    `json:"tax_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*Profile, error)
	Insert(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
}
