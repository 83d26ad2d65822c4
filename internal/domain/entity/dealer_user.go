// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dealer is a dealership, the tenant every record belongs to.
type Dealer struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DealerRole is the role a user holds within a dealership.
type DealerRole string

const (
	DealerRoleOwner    DealerRole = "owner"
	DealerRoleManager  DealerRole = "manager"
	DealerRoleEmployee DealerRole = "employee"
)

// DealerUser is a member of a dealership team.
type DealerUser struct {
	ID            uuid.UUID
	DealerID      uuid.UUID
	Name          string
	Email         string
	Role          DealerRole
	DigestEnabled bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
