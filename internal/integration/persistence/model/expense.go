package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DealerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:timestamp;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(20);index"`
	Description string          `gorm:"type:varchar(255)"`
	VehicleID   *uuid.UUID      `gorm:"type:uuid;index"`
	UserID      *uuid.UUID      `gorm:"type:uuid"`
	AccountID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		DealerID:    m.DealerID,
		Date:        m.Date,
		Amount:      m.Amount,
		Category:    entity.ExpenseCategory(m.Category),
		Description: m.Description,
		VehicleID:   m.VehicleID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          expense.ID,
		DealerID:    expense.DealerID,
		Date:        expense.Date.UTC(),
		Amount:      expense.Amount,
		Category:    string(expense.Category),
		Description: expense.Description,
		VehicleID:   expense.VehicleID,
		UserID:      expense.UserID,
		AccountID:   expense.AccountID,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
