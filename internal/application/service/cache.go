package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/skillmatch/internal/domain/profile"
)

var ErrCacheMiss = errors.New("cache miss")

// ProfileCache holds merged views keyed by account. Every account has a
// generation counter that Invalidate advances; a view is only stored while
// the generation it was loaded under is still current.
type ProfileCache interface {
	Get(ctx context.Context, accountID uuid.UUID) (*profile.View, error)
	Generation(ctx context.Context, accountID uuid.UUID) (int64, error)
	// SetIfGeneration reports false when the generation moved on and the view was dropped.
	SetIfGeneration(ctx context.Context, view *profile.View, gen int64) (bool, error)
	Invalidate(ctx context.Context, accountID uuid.UUID) error
}
