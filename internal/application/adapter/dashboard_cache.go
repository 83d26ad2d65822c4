package adapter

import (
	"context"

	"github.com/google/uuid"
)

// DashboardCacheInvalidator drops every cached dashboard of a dealer.
type DashboardCacheInvalidator interface {
	Invalidate(ctx context.Context, dealerID uuid.UUID) error
}
