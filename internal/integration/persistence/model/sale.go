package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// SaleModel represents the sales table in the database.
type SaleModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DealerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date          time.Time       `gorm:"type:timestamp;not null;index"`
	BuyerName     string          `gorm:"type:varchar(150)"`
	BuyerPhone    string          `gorm:"type:varchar(40)"`
	PaymentMethod string          `gorm:"type:varchar(40)"`
	AccountID     *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Vehicle *VehicleModel `gorm:"foreignKey:VehicleID;references:ID"`
}

// TableName returns the table name for the SaleModel.
func (SaleModel) TableName() string {
	return "sales"
}

// ToEntity converts a SaleModel, with its preloaded vehicle if any, to a domain Sale entity.
func (m *SaleModel) ToEntity() *entity.Sale {
	sale := &entity.Sale{
		ID:            m.ID,
		DealerID:      m.DealerID,
		VehicleID:     m.VehicleID,
		Amount:        m.Amount,
		Date:          m.Date,
		BuyerName:     m.BuyerName,
		BuyerPhone:    m.BuyerPhone,
		PaymentMethod: m.PaymentMethod,
		AccountID:     m.AccountID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.Vehicle != nil {
		sale.Vehicle = m.Vehicle.ToEntity()
	}

	return sale
}

// SaleFromEntity creates a SaleModel from a domain Sale entity.
func SaleFromEntity(sale *entity.Sale) *SaleModel {
	return &SaleModel{
		ID:            sale.ID,
		DealerID:      sale.DealerID,
		VehicleID:     sale.VehicleID,
		Amount:        sale.Amount,
		Date:          sale.Date.UTC(),
		BuyerName:     sale.BuyerName,
		BuyerPhone:    sale.BuyerPhone,
		PaymentMethod: sale.PaymentMethod,
		AccountID:     sale.AccountID,
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
	}
}
