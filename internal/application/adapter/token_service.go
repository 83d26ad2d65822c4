// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// TokenClaims represents the claims contained in a dealer access token.
type TokenClaims struct {
	UserID    uuid.UUID
	DealerID  uuid.UUID
	Email     string
	Role      entity.DealerRole
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateAccessToken issues an access token scoped to the user's dealership.
	GenerateAccessToken(ctx context.Context, user *entity.DealerUser) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
