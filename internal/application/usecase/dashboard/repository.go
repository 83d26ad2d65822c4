package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DashboardRepository loads the records the dashboard is computed from.
type DashboardRepository interface {
	// FetchSnapshot returns every expense, vehicle (with its expenses), sale
	// (with its vehicle), account and debt (with payments) of the dealer.
	FetchSnapshot(ctx context.Context, dealerID uuid.UUID) (*Snapshot, error)

	// GetDateRange returns the date range of the dealer's expenses.
	GetDateRange(ctx context.Context, dealerID uuid.UUID) (*DateRange, error)
}

// DashboardCache stores computed dashboards per dealer.
// Keys built for a dealer stop matching once the dealer is invalidated.
type DashboardCache interface {
	BuildKey(ctx context.Context, dealerID uuid.UUID, base string) (string, error)
	FetchJSON(ctx context.Context, key string, dst any, loader func(context.Context) (any, error)) error
	Invalidate(ctx context.Context, dealerID uuid.UUID) error
}

// DateRange represents the date boundaries of a dealer's expense history.
type DateRange struct {
	OldestDate    *time.Time
	NewestDate    *time.Time
	TotalExpenses int
}
