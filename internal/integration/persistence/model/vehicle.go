package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// VehicleModel represents the vehicles table in the database.
type VehicleModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	DealerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Make          string           `gorm:"type:varchar(60)"`
	Model         string           `gorm:"type:varchar(60)"`
	Year          int              `gorm:"type:integer"`
	VIN           string           `gorm:"column:vin;type:varchar(17);index"`
	PurchasePrice decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	PurchaseDate  *time.Time       `gorm:"type:timestamp"`
	Status        string           `gorm:"type:varchar(20);not null;index"`
	SalePrice     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	SaleDate      *time.Time       `gorm:"type:timestamp"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Expenses []ExpenseModel `gorm:"foreignKey:VehicleID;references:ID"`
}

// TableName returns the table name for the VehicleModel.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToEntity converts a VehicleModel, with any preloaded expenses, to a domain Vehicle entity.
func (m *VehicleModel) ToEntity() *entity.Vehicle {
	vehicle := &entity.Vehicle{
		ID:            m.ID,
		DealerID:      m.DealerID,
		Make:          m.Make,
		Model:         m.Model,
		Year:          m.Year,
		VIN:           m.VIN,
		PurchasePrice: m.PurchasePrice,
		PurchaseDate:  m.PurchaseDate,
		Status:        entity.VehicleStatus(m.Status),
		SalePrice:     m.SalePrice,
		SaleDate:      m.SaleDate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if len(m.Expenses) > 0 {
		vehicle.Expenses = make([]*entity.Expense, len(m.Expenses))
		for i := range m.Expenses {
			vehicle.Expenses[i] = m.Expenses[i].ToEntity()
		}
	}

	return vehicle
}

// VehicleFromEntity creates a VehicleModel from a domain Vehicle entity.
// Expenses are persisted on their own and are not copied.
func VehicleFromEntity(vehicle *entity.Vehicle) *VehicleModel {
	return &VehicleModel{
		ID:            vehicle.ID,
		DealerID:      vehicle.DealerID,
		Make:          vehicle.Make,
		Model:         vehicle.Model,
		Year:          vehicle.Year,
		VIN:           vehicle.VIN,
		PurchasePrice: vehicle.PurchasePrice,
		PurchaseDate:  vehicle.PurchaseDate,
		Status:        string(vehicle.Status),
		SalePrice:     vehicle.SalePrice,
		SaleDate:      vehicle.SaleDate,
		CreatedAt:     vehicle.CreatedAt,
		UpdatedAt:     vehicle.UpdatedAt,
	}
}
