package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/adapters/event"
	"github.com/khoahotran/skillmatch/adapters/persistence"
	profileUC "github.com/khoahotran/skillmatch/internal/application/usecase/profile"
	"github.com/khoahotran/skillmatch/internal/application/service"
	"github.com/khoahotran/skillmatch/internal/config"
	"github.com/khoahotran/skillmatch/pkg/apperror"
	"github.com/khoahotran/skillmatch/pkg/logger"
	"github.com/khoahotran/skillmatch/pkg/tracing"
)

// The worker keeps the profile view cache warm: every committed save is
// followed by a fresh read that repopulates redis.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, logger.WithLevel(cfg.App.LogLevel), logger.WithService("profile-worker"))
	defer appLogger.Sync()
	appLogger.Info("Starting SkillMatch profile worker...")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "skillmatch-profile-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer tp.Shutdown(context.Background())

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	profileCache := persistence.NewRedisProfileCache(redisClient, cfg.Redis.CacheTTL)
	repos := profileUC.Repositories{
		Accounts:    persistence.NewPostgresAccountRepo(dbPool, appLogger),
		Freelancers: persistence.NewPostgresFreelancerRepo(dbPool, appLogger),
		Companies:   persistence.NewPostgresCompanyRepo(dbPool, appLogger),
		Skills:      persistence.NewPostgresSkillRepo(dbPool, appLogger),
	}
	getProfileUseCase := profileUC.NewGetProfileUseCase(repos, profileCache, appLogger)

	consumer := event.NewProfileEventConsumer(cfg, "profile-cache-warmer", appLogger)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = consumer.Run(ctx, func(ctx context.Context, evt service.ProfileEvent) error {
		if evt.EventType != service.EventTypeProfileUpdated {
			return nil
		}
		if err := profileCache.Invalidate(ctx, evt.AccountID); err != nil {
			appLogger.Warn("Profile cache invalidation failed", zap.String("account_id", evt.AccountID.String()), zap.Error(err))
		}
		_, err := getProfileUseCase.Execute(ctx, profileUC.GetProfileInput{AccountID: evt.AccountID})
		if errors.Is(err, apperror.ErrNotFound) {
			// Account is gone; nothing to warm.
			return nil
		}
		return err
	})
	if err != nil {
		// Offsets stay at the failed message; a restart replays it.
		appLogger.Fatal("Worker stopped with error", err)
	}
	appLogger.Info("Worker stopped")
}
