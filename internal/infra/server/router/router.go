// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/controller"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	dashboardController *controller.DashboardController
	ledgerController    *controller.LedgerController
	exportRateLimiter   *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	dashboardController *controller.DashboardController,
	ledgerController *controller.LedgerController,
	exportRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		dashboardController: dashboardController,
		ledgerController:    ledgerController,
		exportRateLimiter:   exportRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
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
	if r.authMiddleware == nil {
		return
	}
	v1.Use(r.authMiddleware.Authenticate())

	// Dashboard routes
	if r.dashboardController != nil {
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("", r.dashboardController.Get)
			dashboard.GET("/data-range", r.dashboardController.GetDataRange)
			if r.exportRateLimiter != nil {
				dashboard.GET("/export", r.exportRateLimiter.Middleware(), r.dashboardController.Export)
			} else {
				dashboard.GET("/export", r.dashboardController.Export)
			}
		}
	}

	// Ledger routes
	if r.ledgerController != nil {
		expenses := v1.Group("/expenses")
		{
			expenses.POST("", r.ledgerController.CreateExpense)
			expenses.PATCH("/:id", r.ledgerController.UpdateExpense)
			expenses.DELETE("/:id", r.ledgerController.DeleteExpense)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", r.ledgerController.CreateSale)
			sales.DELETE("/:id", r.ledgerController.DeleteSale)
		}

		accounts := v1.Group("/accounts")
		{
			accounts.POST("/:id/transactions", r.ledgerController.CreateAccountTransaction)
			accounts.DELETE("/:id/transactions/:transactionId", r.ledgerController.DeleteAccountTransaction)
		}

		debts := v1.Group("/debts")
		{
			debts.POST("/:id/payments", r.ledgerController.CreateDebtPayment)
			debts.DELETE("/:id/payments/:paymentId", r.ledgerController.DeleteDebtPayment)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
