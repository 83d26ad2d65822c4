// Package db opens and migrates the dealer ledger database.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ezcar24/dealer-backend/config"
	"github.com/ezcar24/dealer-backend/internal/integration/persistence/model"
)

const (
	connectTimeout = 5 * time.Second
	healthTimeout  = 2 * time.Second
)

// ErrMissingDatabaseURL is returned when no DATABASE_URL is configured.
var ErrMissingDatabaseURL = errors.New("database url is required")

// Database owns the gorm connection shared by every repository.
type Database struct {
	db *gorm.DB
}

// NewPostgresConnection connects to the PostgreSQL ledger database.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	if cfg.URL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return Open(postgres.Open(cfg.URL), cfg)
}

// Open connects through any gorm dialector, applies the pool limits from cfg
// and verifies the connection.
func Open(dialector gorm.Dialector, cfg *config.DatabaseConfig) (*Database, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialector.Name(), err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Zero keeps the driver default
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	database := &Database{db: conn}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		return nil, err
	}

	slog.Info("Ledger database connected",
		"dialect", dialector.Name(),
		"maxOpenConns", cfg.MaxOpenConns,
		"maxIdleConns", cfg.MaxIdleConns,
	)

	return database, nil
}

// DB returns the gorm handle for repositories.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Ping checks that the database answers within ctx.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// HealthCheck reports whether the database answers; used by GET /health.
func (d *Database) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	if err := d.Ping(ctx); err != nil {
		slog.Warn("Ledger database unhealthy", "error", err)
		return false
	}
	return true
}

// Migrate creates or updates the dealer, vehicle and ledger tables.
func (d *Database) Migrate() error {
	models := model.All()
	if err := d.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate ledger tables: %w", err)
	}
	slog.Info("Ledger tables migrated", "tables", len(models))
	return nil
}

// Close releases the connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	slog.Info("Ledger database closed")
	return nil
}
