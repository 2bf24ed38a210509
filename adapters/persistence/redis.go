package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/config"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/logger"
)

func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.")
	return rdb, nil
}

const (
	profileCachePrefix      = "profile:view:"
	profileGenerationPrefix = "profile:gen:"

	defaultProfileCacheTTL = 10 * time.Minute
	// Generation keys outlive any in-flight read by a wide margin.
	profileGenerationTTL = 24 * time.Hour
)

// KEYS[1] generation, KEYS[2] view; ARGV gen, payload, ttl ms.
var setIfGenerationScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then cur = '0' end
if cur ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

type redisProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProfileCache(rdb *redis.Client, ttl time.Duration) service.ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileCacheTTL
	}
	return &redisProfileCache{rdb: rdb, ttl: ttl}
}

func profileCacheKey(id uuid.UUID) string {
	return profileCachePrefix + id.String()
}

func profileGenerationKey(id uuid.UUID) string {
	return profileGenerationPrefix + id.String()
}

func (c *redisProfileCache) Get(ctx context.Context, accountID uuid.UUID) (*profile.View, error) {
	raw, err := c.rdb.Get(ctx, profileCacheKey(accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCacheMiss
		}
		return nil, fmt.Errorf("read cached profile: %w", err)
	}
	var v profile.View
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	if v.Skills == nil {
		v.Skills = []string{}
	}
	return &v, nil
}

func (c *redisProfileCache) Generation(ctx context.Context, accountID uuid.UUID) (int64, error) {
	gen, err := c.rdb.Get(ctx, profileGenerationKey(accountID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("read profile generation: %w", err)
	}
	return gen, nil
}

func (c *redisProfileCache) SetIfGeneration(ctx context.Context, view *profile.View, gen int64) (bool, error) {
	raw, err := json.Marshal(view)
	if err != nil {
		return false, fmt.Errorf("encode profile: %w", err)
	}
	keys := []string{profileGenerationKey(view.AccountID), profileCacheKey(view.AccountID)}
	stored, err := setIfGenerationScript.Run(ctx, c.rdb, keys, gen, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("store cached profile: %w", err)
	}
	return stored == 1, nil
}

// Invalidate advances the generation and drops the view in one transaction.
func (c *redisProfileCache) Invalidate(ctx context.Context, accountID uuid.UUID) error {
	genKey := profileGenerationKey(accountID)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, profileGenerationTTL)
		pipe.Del(ctx, profileCacheKey(accountID))
		return nil
	})
	return err
}
