package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/skillmatch/internal/domain/account"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionRevoked = errors.New("session revoked")
)

// Session is what the profile engine knows about the caller.
type Session struct {
	AccountID uuid.UUID
	Role      account.Role
	TokenID   string
	ExpiresAt time.Time
}

// RevocationStore remembers signed-out token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type SessionService struct {
	jwt     *JWTService
	revoked RevocationStore
}

func NewSessionService(jwtSvc *JWTService, revoked RevocationStore) *SessionService {
	return &SessionService{jwt: jwtSvc, revoked: revoked}
}

// GetSession resolves a bearer token. Missing, expired or signed-out tokens yield ErrNoSession.
func (s *SessionService) GetSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: %w", ErrNoSession, ErrSessionRevoked)
		}
	}
	sess := &Session{AccountID: claims.AccountID, Role: claims.Role, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// SignOut revokes the session's token for the rest of its lifetime.
func (s *SessionService) SignOut(ctx context.Context, sess *Session) error {
	if s.revoked == nil || sess.TokenID == "" {
		return nil
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(ctx, sess.TokenID, ttl)
}

const revokedPrefix = "session:revoked:"

type redisRevocationStore struct {
	rdb *redis.Client
}

func NewRedisRevocationStore(rdb *redis.Client) RevocationStore {
	return &redisRevocationStore{rdb: rdb}
}

func (r *redisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

func (r *redisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
