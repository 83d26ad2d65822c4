// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account types recognised by the dashboard. Stored values are free text.
const (
	AccountTypeCash = "cash"
	AccountTypeBank = "bank"
)

// FinancialAccount is a cash drawer or bank account holding dealer funds.
type FinancialAccount struct {
	ID          uuid.UUID
	DealerID    uuid.UUID
	Name        string
	AccountType string
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsType reports whether the account type matches accountType, ignoring case.
func (a *FinancialAccount) IsType(accountType string) bool {
	return strings.EqualFold(strings.TrimSpace(a.AccountType), accountType)
}

// Apply adds a signed delta to the balance.
func (a *FinancialAccount) Apply(delta decimal.Decimal) {
	a.Balance = a.Balance.Add(delta)
	a.UpdatedAt = time.Now().UTC()
}

// AccountTransactionType is the direction of a manual account movement.
type AccountTransactionType string

const (
	AccountTransactionDeposit    AccountTransactionType = "deposit"
	AccountTransactionWithdrawal AccountTransactionType = "withdrawal"
)

// IsValid reports whether t is a known transaction type.
func (t AccountTransactionType) IsValid() bool {
	return t == AccountTransactionDeposit || t == AccountTransactionWithdrawal
}

// AccountTransaction is a manual deposit or withdrawal on a FinancialAccount.
type AccountTransaction struct {
	ID        uuid.UUID
	DealerID  uuid.UUID
	AccountID uuid.UUID
	Type      AccountTransactionType
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

// NewAccountTransaction creates a new AccountTransaction entity.
func NewAccountTransaction(
	dealerID, accountID uuid.UUID,
	transactionType AccountTransactionType,
	amount decimal.Decimal,
	date time.Time,
	note string,
) *AccountTransaction {
	return &AccountTransaction{
		ID:        uuid.New(),
		DealerID:  dealerID,
		AccountID: accountID,
		Type:      transactionType,
		Amount:    amount,
		Date:      date,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
}

// BalanceDelta returns +amount for deposits and -amount for withdrawals.
func (t *AccountTransaction) BalanceDelta() decimal.Decimal {
	if t.Type == AccountTransactionWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
