// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/config"
	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
	"github.com/ezcar24/dealer-backend/internal/application/usecase/digest"
	"github.com/ezcar24/dealer-backend/internal/application/usecase/ledger"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
	"github.com/ezcar24/dealer-backend/internal/infra/server/router"
	"github.com/ezcar24/dealer-backend/internal/integration/adapters"
	"github.com/ezcar24/dealer-backend/internal/integration/cache"
	"github.com/ezcar24/dealer-backend/internal/integration/email"
	"github.com/ezcar24/dealer-backend/internal/integration/email/templates"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/controller"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/middleware"
	"github.com/ezcar24/dealer-backend/internal/integration/persistence"
	"github.com/ezcar24/dealer-backend/internal/integration/report"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService
	// DigestWorker is nil when digests are disabled or no mail provider is configured.
	DigestWorker *email.DigestWorker
}

// Options carries the optional collaborators of the injector.
type Options struct {
	// Redis enables dashboard caching when set.
	Redis *redis.Client
	// EmailSender overrides the Resend client built from the email config.
	EmailSender adapter.EmailSender
	// DBHealthChecker and CacheHealthChecker are reported by the health endpoint.
	DBHealthChecker    func() bool
	CacheHealthChecker func() bool
	// Now overrides the dashboard clock.
	Now func() time.Time
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	location, err := cfg.Dashboard.Location()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.Dashboard.FirstWeekday()
	if err != nil {
		return nil, err
	}

	// Create repositories
	dashboardRepo := persistence.NewDashboardRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)
	dealerRepo := persistence.NewDealerRepository(db)

	// Interface-typed so a missing client stays a true nil
	var dashboardCache dashboard.DashboardCache
	var cacheInvalidator adapter.DashboardCacheInvalidator
	if opts.Redis != nil {
		redisCache := cache.NewDashboardCache(opts.Redis, cfg.Dashboard.CacheTTL)
		dashboardCache = redisCache
		cacheInvalidator = redisCache
	} else {
		slog.Warn("Redis not configured, dashboards are computed on every request")
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpiry)

	// Create dashboard use cases
	dashboardOptions := dashboard.Options{WeekStart: weekStart, RecentLimit: cfg.Dashboard.RecentLimit}
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(dashboardRepo, dashboardCache, location, dashboardOptions)
	if opts.Now != nil {
		getDashboardUseCase.WithClock(opts.Now)
	}
	getDataRangeUseCase := dashboard.NewGetDataRangeUseCase(dashboardRepo)
	exportDashboardUseCase := dashboard.NewExportDashboardUseCase(getDashboardUseCase, report.NewDashboardWorkbook())

	// Create ledger use cases
	ledgerUseCases := controller.LedgerUseCases{
		RecordExpense:            ledger.NewRecordExpenseUseCase(ledgerRepo, cacheInvalidator),
		UpdateExpense:            ledger.NewUpdateExpenseUseCase(ledgerRepo, cacheInvalidator),
		DeleteExpense:            ledger.NewDeleteExpenseUseCase(ledgerRepo, cacheInvalidator),
		RecordSale:               ledger.NewRecordSaleUseCase(ledgerRepo, cacheInvalidator),
		DeleteSale:               ledger.NewDeleteSaleUseCase(ledgerRepo, cacheInvalidator),
		RecordAccountTransaction: ledger.NewRecordAccountTransactionUseCase(ledgerRepo, cacheInvalidator),
		DeleteAccountTransaction: ledger.NewDeleteAccountTransactionUseCase(ledgerRepo, cacheInvalidator),
		RecordDebtPayment:        ledger.NewRecordDebtPaymentUseCase(ledgerRepo, cacheInvalidator),
		DeleteDebtPayment:        ledger.NewDeleteDebtPaymentUseCase(ledgerRepo, cacheInvalidator),
	}

	// Create digest worker
	digestWorker, err := newDigestWorker(cfg, opts, dealerRepo, getDashboardUseCase)
	if err != nil {
		return nil, err
	}

	// Create controllers
	dbHealthChecker := opts.DBHealthChecker
	if dbHealthChecker == nil {
		dbHealthChecker = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}
	healthController := controller.NewHealthController(dbHealthChecker, opts.CacheHealthChecker)
	dashboardController := controller.NewDashboardController(getDashboardUseCase, getDataRangeUseCase, exportDashboardUseCase)
	ledgerController := controller.NewLedgerController(ledgerUseCases, location)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var exportRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		exportRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		exportRateLimiter = middleware.NewRateLimiterWithConfig(cfg.Export.MaxRequests, cfg.Export.Window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, dashboardController, ledgerController, exportRateLimiter, authMiddleware)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		TokenService: tokenService,
		DigestWorker: digestWorker,
	}, nil
}

func newDigestWorker(
	cfg *config.Config,
	opts Options,
	dealerRepo adapter.DealerRepository,
	getDashboardUseCase *dashboard.GetDashboardUseCase,
) (*email.DigestWorker, error) {
	if !cfg.Digest.Enabled {
		return nil, nil
	}

	sender := opts.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("Digest enabled but RESEND_API_KEY is empty, digests disabled")
			return nil, nil
		}
		client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to create email client: %w", err)
		}
		sender = client
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	timeRange, ok := valueobject.ParseTimeRange(cfg.Digest.Range)
	if !ok {
		return nil, fmt.Errorf("invalid digest range %q", cfg.Digest.Range)
	}

	sendDigests := digest.NewSendDigestsUseCase(dealerRepo, getDashboardUseCase, renderer, sender, timeRange, cfg.Email.AppBaseURL)
	return email.NewDigestWorker(sendDigests, email.WorkerConfig{Interval: cfg.Digest.Interval}), nil
}
