// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale represents a vehicle sold to a buyer.
type Sale struct {
	ID            uuid.UUID
	DealerID      uuid.UUID
	VehicleID     *uuid.UUID
	Vehicle       *Vehicle // Loaded with its expenses when computing profit
	Amount        decimal.Decimal
	Date          time.Time
	BuyerName     string
	BuyerPhone    string
	PaymentMethod string
	AccountID     *uuid.UUID // Account that received the payment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSale creates a new Sale entity.
func NewSale(
	dealerID uuid.UUID,
	vehicleID *uuid.UUID,
	amount decimal.Decimal,
	date time.Time,
	buyerName, buyerPhone, paymentMethod string,
	accountID *uuid.UUID,
) *Sale {
	now := time.Now().UTC()

	return &Sale{
		ID:            uuid.New(),
		DealerID:      dealerID,
		VehicleID:     vehicleID,
		Amount:        amount,
		Date:          date,
		BuyerName:     buyerName,
		BuyerPhone:    buyerPhone,
		PaymentMethod: paymentMethod,
		AccountID:     accountID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BalanceDelta returns the signed change the sale applies to its receiving account.
func (s *Sale) BalanceDelta() decimal.Decimal {
	return s.Amount
}
