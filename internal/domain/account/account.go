package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleCompany    Role = "company"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidRole     = errors.New("invalid account role")
)

// ParseRole accepts the canonical role names and the legacy "empresa".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freelancer":
		return RoleFreelancer, nil
	case "company", "empresa":
		return RoleCompany, nil
	}
	return "", ErrInvalidRole
}

type Account struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	LinkedInURL  string    `json:"linkedin_url"`
	InstagramURL string    `json:"instagram_url"`
	Bio          string    `json:"bio"`
	Role         Role      `json:"role"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// Update writes the mutable fields. Role and ID are never changed.
	Update(ctx context.Context, a *Account) error
}
