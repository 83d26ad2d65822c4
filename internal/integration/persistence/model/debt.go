package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// DebtModel represents the debts table in the database.
type DebtModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DealerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CounterpartyName string          `gorm:"type:varchar(150);not null"`
	Direction        string          `gorm:"type:varchar(20);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate          *time.Time      `gorm:"type:timestamp"`
	Notes            string          `gorm:"type:text"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Payments []DebtPaymentModel `gorm:"foreignKey:DebtID;references:ID"`
}

// TableName returns the table name for the DebtModel.
func (DebtModel) TableName() string {
	return "debts"
}

// ToEntity converts a DebtModel, with any preloaded payments, to a domain Debt entity.
func (m *DebtModel) ToEntity() *entity.Debt {
	debt := &entity.Debt{
		ID:               m.ID,
		DealerID:         m.DealerID,
		CounterpartyName: m.CounterpartyName,
		Direction:        entity.DebtDirection(m.Direction),
		Amount:           m.Amount,
		DueDate:          m.DueDate,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	if len(m.Payments) > 0 {
		debt.Payments = make([]*entity.DebtPayment, len(m.Payments))
		for i := range m.Payments {
			debt.Payments[i] = m.Payments[i].ToEntity()
		}
	}

	return debt
}

// DebtFromEntity creates a DebtModel from a domain Debt entity.
// Payments are persisted on their own and are not copied.
func DebtFromEntity(debt *entity.Debt) *DebtModel {
	return &DebtModel{
		ID:               debt.ID,
		DealerID:         debt.DealerID,
		CounterpartyName: debt.CounterpartyName,
		Direction:        string(debt.Direction),
		Amount:           debt.Amount,
		DueDate:          debt.DueDate,
		Notes:            debt.Notes,
		CreatedAt:        debt.CreatedAt,
		UpdatedAt:        debt.UpdatedAt,
	}
}

// DebtPaymentModel represents the debt_payments table in the database.
type DebtPaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DebtID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DealerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"type:timestamp;not null"`
	AccountID *uuid.UUID      `gorm:"type:uuid"`
	Note      string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the DebtPaymentModel.
func (DebtPaymentModel) TableName() string {
	return "debt_payments"
}

// ToEntity converts a DebtPaymentModel to a domain DebtPayment entity.
func (m *DebtPaymentModel) ToEntity() *entity.DebtPayment {
	return &entity.DebtPayment{
		ID:        m.ID,
		DebtID:    m.DebtID,
		DealerID:  m.DealerID,
		Amount:    m.Amount,
		Date:      m.Date,
		AccountID: m.AccountID,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// DebtPaymentFromEntity creates a DebtPaymentModel from a domain DebtPayment entity.
func DebtPaymentFromEntity(payment *entity.DebtPayment) *DebtPaymentModel {
	return &DebtPaymentModel{
		ID:        payment.ID,
		DebtID:    payment.DebtID,
		DealerID:  payment.DealerID,
		Amount:    payment.Amount,
		Date:      payment.Date.UTC(),
		AccountID: payment.AccountID,
		Note:      payment.Note,
		CreatedAt: payment.CreatedAt,
	}
}
