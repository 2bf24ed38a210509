package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/skillmatch/adapters/event"
	httpAdapter "github.com/khoahotran/skillmatch/adapters/http"
	"github.com/khoahotran/skillmatch/adapters/persistence"
	authUC "github.com/khoahotran/skillmatch/internal/application/usecase/auth"
	profileUC "github.com/khoahotran/skillmatch/internal/application/usecase/profile"
	"github.com/khoahotran/skillmatch/internal/config"
	"github.com/khoahotran/skillmatch/internal/domain/profile"
	"github.com/khoahotran/skillmatch/pkg/auth"
	"github.com/khoahotran/skillmatch/pkg/errreport"
	"github.com/khoahotran/skillmatch/pkg/logger"
	"github.com/khoahotran/skillmatch/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, logger.WithLevel(cfg.App.LogLevel), logger.WithService("profile-api"))
	defer appLogger.Sync()
	appLogger.Info("Start SkillMatch profile API server...", zap.String("env", cfg.App.Env))

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "skillmatch-profile-api")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer tp.Shutdown(context.Background())

	reporter := errreport.NewSentryReporter(cfg.Sentry.DSN, cfg.App.Env, appLogger)
	defer reporter.Flush(2 * time.Second)

	policy, err := profilePolicy(cfg)
	if err != nil {
		appLogger.Fatal("invalid profile policy", err)
	}

	// Infrastructure
	if cfg.DB.AutoMigrate {
		if err := persistence.RunMigrations(cfg.DB.Migrations, cfg.DB.DSN, appLogger); err != nil {
			appLogger.Fatal("cannot migrate database", err)
		}
	}

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

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	repos := profileUC.Repositories{
		Accounts:    persistence.NewPostgresAccountRepo(dbPool, appLogger),
		Freelancers: persistence.NewPostgresFreelancerRepo(dbPool, appLogger),
		Companies:   persistence.NewPostgresCompanyRepo(dbPool, appLogger),
		Skills:      persistence.NewPostgresSkillRepo(dbPool, appLogger),
	}
	credentialRepo := persistence.NewPostgresCredentialRepo(dbPool)
	intentRepo := persistence.NewPostgresIntentRepo(dbPool, appLogger)
	profileCache := persistence.NewRedisProfileCache(redisClient, cfg.Redis.CacheTTL)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	sessions := auth.NewSessionService(jwtSvc, auth.NewRedisRevocationStore(redisClient))
	passwordSvc := authUC.NewPasswordService(credentialRepo, appLogger)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(credentialRepo, jwtSvc, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(sessions, appLogger)
	getProfileUseCase := profileUC.NewGetProfileUseCase(repos, profileCache, appLogger)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileUC.UpdateProfileDeps{
		Repos:       repos,
		Credentials: passwordSvc,
		Intents:     intentRepo,
		Cache:       profileCache,
		Events:      kafkaClient,
	}, policy, appLogger)
	resumeProfileUseCase := profileUC.NewResumeProfileUseCase(updateProfileUseCase)

	// HTTP
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, logoutUseCase, appLogger)
	profileHandler := httpAdapter.NewProfileHandler(getProfileUseCase, updateProfileUseCase, resumeProfileUseCase, appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(appLogger, reporter, sessions, authHandler, profileHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}

func profilePolicy(cfg config.Config) (profile.Policy, error) {
	policy := profile.DefaultPolicy()
	age, err := profile.ParseAgePolicy(cfg.Profile.AgePolicy)
	if err != nil {
		return policy, err
	}
	policy.AgePolicy = age
	if cfg.Profile.MinAge > 0 {
		policy.MinAge = cfg.Profile.MinAge
	}
	policy.RequireSkill = cfg.Profile.RequireSkill
	return policy, nil
}
