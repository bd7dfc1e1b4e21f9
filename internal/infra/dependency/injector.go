// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/staymetrics/backend/config"
	"github.com/staymetrics/backend/internal/application/usecase/reservation"
	"github.com/staymetrics/backend/internal/application/usecase/revenue"
	"github.com/staymetrics/backend/internal/infra/cache"
	"github.com/staymetrics/backend/internal/infra/server/router"
	"github.com/staymetrics/backend/internal/integration/adapters"
	"github.com/staymetrics/backend/internal/integration/entrypoint/controller"
	"github.com/staymetrics/backend/internal/integration/entrypoint/middleware"
	"github.com/staymetrics/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies
// wired. A nil Redis client degrades the cache to a no-op, so every
// summary request recomputes from the store.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	revenueRepo := persistence.NewRevenueRepository(db, cfg.Revenue.QueryTimeout)
	propertyRepo := persistence.NewPropertyRepository(db, cfg.Revenue.QueryTimeout)
	reservationRepo := persistence.NewReservationRepository(db, cfg.Revenue.QueryTimeout)

	// Create adapters
	aggregateCache := adapters.NewNoopCache()
	if redisClient != nil {
		aggregateCache = adapters.NewRevenueCache(redisClient)
	}

	referenceSource, err := adapters.NewStaticReferenceSource(cfg.Revenue.ReferenceTable)
	if err != nil {
		return nil, fmt.Errorf("invalid reference revenue table: %w", err)
	}

	currencies := revenue.Currencies{
		Default:   cfg.Revenue.DefaultCurrency,
		PerTenant: cfg.Revenue.TenantCurrencies,
	}
	fallbackPolicy := revenue.NewFallbackPolicy(referenceSource)

	// Create use cases
	getSummaryUseCase := revenue.NewGetRevenueSummaryUseCase(
		revenueRepo,
		aggregateCache,
		fallbackPolicy,
		currencies,
		cfg.Revenue.LiveTTL,
		cfg.Revenue.FallbackTTL,
	)
	getMonthlyUseCase := revenue.NewGetMonthlyRevenueUseCase(
		revenueRepo,
		propertyRepo,
		fallbackPolicy,
		currencies,
	)
	recordReservationUseCase := reservation.NewRecordReservationUseCase(reservationRepo, aggregateCache)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			if redisClient == nil {
				return false
			}
			return cache.HealthCheck(redisClient)
		},
	)
	dashboardController := controller.NewDashboardController(getSummaryUseCase, getMonthlyUseCase)
	reservationController := controller.NewReservationController(recordReservationUseCase)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiter()
	}
	tenantMiddleware := middleware.NewTenantMiddleware(cfg.Auth.JWTSecret)

	// Create router
	r := router.NewRouter(healthController, dashboardController, reservationController, rateLimiter, tenantMiddleware)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}, nil
}
