// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtDirection tells whether the dealer is the lender or the borrower.
type DebtDirection string

const (
	DebtDirectionOwedToMe DebtDirection = "owed_to_me"
	DebtDirectionIOwe     DebtDirection = "i_owe"
)

// IsValid reports whether d is a known direction.
func (d DebtDirection) IsValid() bool {
	return d == DebtDirectionOwedToMe || d == DebtDirectionIOwe
}

// debtPaidTolerance absorbs rounding left over after partial payments.
var debtPaidTolerance = decimal.NewFromFloat(0.01)

// Debt is money owed between the dealer and a counterparty.
type Debt struct {
	ID               uuid.UUID
	DealerID         uuid.UUID
	CounterpartyName string
	Direction        DebtDirection
	Amount           decimal.Decimal
	DueDate          *time.Time
	Notes            string
	Payments         []*DebtPayment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PaidAmount returns the sum of recorded payments.
func (d *Debt) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Outstanding returns the unpaid remainder, never negative.
func (d *Debt) Outstanding() decimal.Decimal {
	remaining := d.Amount.Sub(d.PaidAmount())
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsPaid reports whether the outstanding amount is within one cent of zero.
func (d *Debt) IsPaid() bool {
	return d.Outstanding().LessThanOrEqual(debtPaidTolerance)
}

// IsOverdue reports whether an unpaid debt's due day is before the day of now.
func (d *Debt) IsOverdue(now time.Time) bool {
	if d.DueDate == nil || d.IsPaid() {
		return false
	}
	due := d.DueDate.In(now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dueDay.Before(today)
}

// PaymentDelta returns the signed balance change a payment of amount causes.
// Collecting a receivable adds money; paying a debt removes it.
func (d *Debt) PaymentDelta(amount decimal.Decimal) decimal.Decimal {
	if d.Direction == DebtDirectionIOwe {
		return amount.Neg()
	}
	return amount
}

// DebtPayment is a single repayment against a Debt.
type DebtPayment struct {
	ID        uuid.UUID
	DebtID    uuid.UUID
	DealerID  uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	AccountID *uuid.UUID
	Note      string
	CreatedAt time.Time
}

// NewDebtPayment creates a new DebtPayment entity.
func NewDebtPayment(
	dealerID, debtID uuid.UUID,
	amount decimal.Decimal,
	date time.Time,
	accountID *uuid.UUID,
	note string,
) *DebtPayment {
	return &DebtPayment{
		ID:        uuid.New(),
		DebtID:    debtID,
		DealerID:  dealerID,
		Amount:    amount,
		Date:      date,
		AccountID: accountID,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
}
