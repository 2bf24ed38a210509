package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
)

const EventTypeProfileUpdated = "profile.updated"

type ProfileEvent struct {
	EventType  string         `json:"event_type"`
	AccountID  uuid.UUID      `json:"account_id"`
	Role       account.Role   `json:"role"`
	Steps      []profile.Step `json:"steps"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt ProfileEvent) error
}
