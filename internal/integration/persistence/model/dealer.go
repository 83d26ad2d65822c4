// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// DealerModel represents the dealers table in the database.
type DealerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(150);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the DealerModel.
func (DealerModel) TableName() string {
	return "dealers"
}

// ToEntity converts a DealerModel to a domain Dealer entity.
func (m *DealerModel) ToEntity() *entity.Dealer {
	return &entity.Dealer{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// DealerFromEntity creates a DealerModel from a domain Dealer entity.
func DealerFromEntity(dealer *entity.Dealer) *DealerModel {
	return &DealerModel{
		ID:        dealer.ID,
		Name:      dealer.Name,
		CreatedAt: dealer.CreatedAt,
		UpdatedAt: dealer.UpdatedAt,
	}
}

// DealerUserModel represents the dealer_users table in the database.
type DealerUserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DealerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(255);index"`
	Role          string    `gorm:"type:varchar(20);not null;default:'employee'"`
	DigestEnabled bool      `gorm:"default:false"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the DealerUserModel.
func (DealerUserModel) TableName() string {
	return "dealer_users"
}

// ToEntity converts a DealerUserModel to a domain DealerUser entity.
func (m *DealerUserModel) ToEntity() *entity.DealerUser {
	return &entity.DealerUser{
		ID:            m.ID,
		DealerID:      m.DealerID,
		Name:          m.Name,
		Email:         m.Email,
		Role:          entity.DealerRole(m.Role),
		DigestEnabled: m.DigestEnabled,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// DealerUserFromEntity creates a DealerUserModel from a domain DealerUser entity.
func DealerUserFromEntity(user *entity.DealerUser) *DealerUserModel {
	return &DealerUserModel{
		ID:            user.ID,
		DealerID:      user.DealerID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		DigestEnabled: user.DigestEnabled,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
