package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/config"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/db/repositories"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/metrics"
	"mentorhub/backend/internal/services"
)

type Repositories struct {
	Principals   *repositories.PrincipalRepository
	Roles        *repositories.RoleAssignmentRepository
	Applications *repositories.ApplicationRepository
	Requests     *repositories.MentorshipRequestRepository
	Roadmaps     *repositories.RoadmapRepository
	Comments     *repositories.CommentRepository
	Stats        *repositories.StatsRepo
}

type Services struct {
	Cache        common.CacheInterface
	Sessions     *common.SessionService
	Signer       *common.TokenSigner
	Events       common.EventPublisher
	Roles        *services.RoleRegistryService
	Onboarding   *services.OnboardingService
	Registration *services.RegistrationService
	Identity     *services.IdentityService
	Requests     *services.MentorshipRequestService
	Roadmaps     *services.RoadmapService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	Config   *config.Config

	SQL   *sqlx.DB
	Redis *redis.Client
}

// InitDependencies wires repositories and services. redisClient may be nil, in which case
// the in-memory cache and a no-op event feed are used. sqlDB may be nil in tests.
func InitDependencies(cfg *config.Config, gormDB *gorm.DB, sqlDB *sqlx.DB, redisClient *redis.Client, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Principals:   repositories.NewPrincipalRepository(gormDB),
		Roles:        repositories.NewRoleAssignmentRepository(gormDB),
		Applications: repositories.NewApplicationRepository(gormDB),
		Requests:     repositories.NewMentorshipRequestRepository(gormDB),
		Roadmaps:     repositories.NewRoadmapRepository(gormDB),
		Comments:     repositories.NewCommentRepository(gormDB),
	}
	if sqlDB != nil {
		repos.Stats = repositories.NewStatsRepo(sqlDB)
	}

	var (
		cache  common.CacheInterface
		events common.EventPublisher
	)
	if redisClient != nil {
		cache = common.NewRedisCacheService(redisClient)
		events = common.NewRedisStreamPublisher(redisClient, constants.LifecycleStream, constants.LifecycleStreamMaxLen)
		logging.Info("Using Redis for cache, sessions and the lifecycle stream")
	} else {
		cache = common.NewCacheService(cfg.Cache.DefaultTTL, cfg.Cache.CleanupInterval)
		events = common.NoopPublisher{}
		logging.Info("Using in-memory cache; lifecycle stream disabled")
	}

	validator, err := services.NewProfileValidator()
	if err != nil {
		return nil, err
	}

	sessions := common.NewSessionService(cache, cfg.Auth.SessionTTL)
	signer := common.NewTokenSigner([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	roles := services.NewRoleRegistryService(repos.Roles, cache, cfg.Cache.RolesTTL, events, metricsReg)
	onboarding := services.NewOnboardingService(repos.Applications, roles, validator, events, metricsReg,
		cfg.Onboarding.ProfileCompletionApproves)
	registration := services.NewRegistrationService(repos.Principals, roles, onboarding, events, metricsReg)
	identity := services.NewIdentityService(repos.Principals, roles, registration, sessions, signer)
	requests := services.NewMentorshipRequestService(repos.Requests, roles, onboarding, events, metricsReg)
	roadmaps := services.NewRoadmapService(repos.Roadmaps, repos.Comments, requests, roles, events, metricsReg,
		cfg.Progress.PollInterval)

	return &Dependencies{
		Repo: repos,
		Services: &Services{
			Cache:        cache,
			Sessions:     sessions,
			Signer:       signer,
			Events:       events,
			Roles:        roles,
			Onboarding:   onboarding,
			Registration: registration,
			Identity:     identity,
			Requests:     requests,
			Roadmaps:     roadmaps,
		},
		Metrics: metricsReg,
		Config:  cfg,
		SQL:     sqlDB,
		Redis:   redisClient,
	}, nil
}
