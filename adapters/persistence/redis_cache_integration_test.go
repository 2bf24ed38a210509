package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/domain/account"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
)

type RedisCacheIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	rdb       *redis.Client
	cache     service.ProfileCache
}

func TestRedisCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RedisCacheIntegrationTestSuite))
}

func (s *RedisCacheIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(1 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		s.T().Fatalf("Failed to start redis container: %s", err)
	}
	s.container = container

	addr, err := container.Endpoint(s.ctx, "")
	if err != nil {
		s.T().Fatalf("Failed to get redis endpoint: %s", err)
	}
	s.rdb = redis.NewClient(&redis.Options{Addr: addr})
	s.cache = NewRedisProfileCache(s.rdb, time.Minute)
}

func (s *RedisCacheIntegrationTestSuite) TearDownSuite() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.container != nil {
		if err := s.container.Terminate(s.ctx); err != nil {
			s.T().Logf("Failed to terminate redis container: %s", err)
		}
	}
}

func cachedView(id uuid.UUID, name string) *profile.View {
	return &profile.View{AccountID: id, Role: account.RoleFreelancer, FullName: name, Skills: []string{"Go"}}
}

func (s *RedisCacheIntegrationTestSuite) Test_FillUnderCurrentGeneration() {
	id := uuid.New()

	_, err := s.cache.Get(s.ctx, id)
	s.ErrorIs(err, service.ErrCacheMiss)

	gen, err := s.cache.Generation(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(0), gen)

	stored, err := s.cache.SetIfGeneration(s.ctx, cachedView(id, "Ana"), gen)
	s.Require().NoError(err)
	s.True(stored)

	got, err := s.cache.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Ana", got.FullName)
	s.Equal([]string{"Go"}, got.Skills)

	ttl, err := s.rdb.PTTL(s.ctx, profileCacheKey(id)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisCacheIntegrationTestSuite) Test_InvalidateBetweenLoadAndFill_DropsStaleView() {
	id := uuid.New()
	gen, err := s.cache.Generation(s.ctx, id)
	s.Require().NoError(err)

	s.Require().NoError(s.cache.Invalidate(s.ctx, id))

	stored, err := s.cache.SetIfGeneration(s.ctx, cachedView(id, "Old Name"), gen)
	s.Require().NoError(err)
	s.False(stored)
	_, err = s.cache.Get(s.ctx, id)
	s.ErrorIs(err, service.ErrCacheMiss)

	next, err := s.cache.Generation(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(gen+1, next)
	stored, err = s.cache.SetIfGeneration(s.ctx, cachedView(id, "Ana Souza"), next)
	s.Require().NoError(err)
	s.True(stored)
}

func (s *RedisCacheIntegrationTestSuite) Test_InvalidateDropsView() {
	id := uuid.New()
	stored, err := s.cache.SetIfGeneration(s.ctx, cachedView(id, "Ana"), 0)
	s.Require().NoError(err)
	s.Require().True(stored)

	s.Require().NoError(s.cache.Invalidate(s.ctx, id))

	_, err = s.cache.Get(s.ctx, id)
	s.ErrorIs(err, service.ErrCacheMiss)
}
