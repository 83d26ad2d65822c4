package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// FinancialAccountModel represents the financial_accounts table in the database.
type FinancialAccountModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DealerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	AccountType string          `gorm:"type:varchar(30);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the FinancialAccountModel.
func (FinancialAccountModel) TableName() string {
	return "financial_accounts"
}

// ToEntity converts a FinancialAccountModel to a domain FinancialAccount entity.
func (m *FinancialAccountModel) ToEntity() *entity.FinancialAccount {
	return &entity.FinancialAccount{
		ID:          m.ID,
		DealerID:    m.DealerID,
		Name:        m.Name,
		AccountType: m.AccountType,
		Balance:     m.Balance,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FinancialAccountFromEntity creates a FinancialAccountModel from a domain FinancialAccount entity.
func FinancialAccountFromEntity(account *entity.FinancialAccount) *FinancialAccountModel {
	return &FinancialAccountModel{
		ID:          account.ID,
		DealerID:    account.DealerID,
		Name:        account.Name,
		AccountType: account.AccountType,
		Balance:     account.Balance,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

// AccountTransactionModel represents the account_transactions table in the database.
type AccountTransactionModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DealerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type      string          `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"type:timestamp;not null"`
	Note      string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the AccountTransactionModel.
func (AccountTransactionModel) TableName() string {
	return "account_transactions"
}

// ToEntity converts an AccountTransactionModel to a domain AccountTransaction entity.
func (m *AccountTransactionModel) ToEntity() *entity.AccountTransaction {
	return &entity.AccountTransaction{
		ID:        m.ID,
		DealerID:  m.DealerID,
		AccountID: m.AccountID,
		Type:      entity.AccountTransactionType(m.Type),
		Amount:    m.Amount,
		Date:      m.Date,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// AccountTransactionFromEntity creates an AccountTransactionModel from a domain AccountTransaction entity.
func AccountTransactionFromEntity(transaction *entity.AccountTransaction) *AccountTransactionModel {
	return &AccountTransactionModel{
		ID:        transaction.ID,
		DealerID:  transaction.DealerID,
		AccountID: transaction.AccountID,
		Type:      string(transaction.Type),
		Amount:    transaction.Amount,
		Date:      transaction.Date.UTC(),
		Note:      transaction.Note,
		CreatedAt: transaction.CreatedAt,
	}
}
