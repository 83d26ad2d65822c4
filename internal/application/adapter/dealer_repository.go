package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// DealerRepository defines the interface for dealership and team lookups.
type DealerRepository interface {
	// FindByID retrieves a dealership by its ID.
	FindByID(ctx context.Context, dealerID uuid.UUID) (*entity.Dealer, error)

	// ListDigestRecipients returns every user who opted into dashboard digests.
	ListDigestRecipients(ctx context.Context) ([]*entity.DealerUser, error)
}
