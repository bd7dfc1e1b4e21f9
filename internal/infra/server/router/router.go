// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/staymetrics/backend/internal/integration/entrypoint/controller"
	"github.com/staymetrics/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	dashboardController   *controller.DashboardController
	reservationController *controller.ReservationController
	rateLimiter           *middleware.RateLimiter
	tenantMiddleware      *middleware.TenantMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	dashboardController *controller.DashboardController,
	reservationController *controller.ReservationController,
	rateLimiter *middleware.RateLimiter,
	tenantMiddleware *middleware.TenantMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		dashboardController:   dashboardController,
		reservationController: reservationController,
		rateLimiter:           rateLimiter,
		tenantMiddleware:      tenantMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Dashboard routes (tenant-scoped, rate limited)
		if r.dashboardController != nil && r.tenantMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.tenantMiddleware.Resolve())
			if r.rateLimiter != nil {
				dashboard.Use(r.rateLimiter.Middleware())
			}
			{
				dashboard.GET("/summary", r.dashboardController.GetSummary)
				dashboard.GET("/summary/monthly", r.dashboardController.GetMonthlySummary)
			}
		}

		// Reservation routes (tenant-scoped)
		if r.reservationController != nil && r.tenantMiddleware != nil {
			reservations := v1.Group("/reservations")
			reservations.Use(r.tenantMiddleware.Resolve())
			{
				reservations.POST("", r.reservationController.Create)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
