package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

const dateTimeLayout = time.RFC3339

// CreateExpenseRequest represents the request body for recording an expense.
type CreateExpenseRequest struct {
	Date        string          `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=255"`
	VehicleID   *string         `json:"vehicle_id,omitempty"`
	AccountID   *string         `json:"account_id,omitempty"`
}

// UpdateExpenseRequest represents the request body for changing an expense.
// An empty vehicle_id or account_id detaches the expense.
type UpdateExpenseRequest struct {
	Date        *string          `json:"date,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=255"`
	VehicleID   *string          `json:"vehicle_id,omitempty"`
	AccountID   *string          `json:"account_id,omitempty"`
}

// CreateSaleRequest represents the request body for recording a sale.
type CreateSaleRequest struct {
	Date          string          `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	VehicleID     *string         `json:"vehicle_id,omitempty"`
	BuyerName     string          `json:"buyer_name,omitempty" binding:"omitempty,max=150"`
	BuyerPhone    string          `json:"buyer_phone,omitempty" binding:"omitempty,max=40"`
	PaymentMethod string          `json:"payment_method,omitempty" binding:"omitempty,max=40"`
	AccountID     *string         `json:"account_id,omitempty"`
}

// CreateAccountTransactionRequest represents the request body for a deposit or withdrawal.
type CreateAccountTransactionRequest struct {
	Type   string          `json:"type" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date" binding:"required"`
	Note   string          `json:"note,omitempty" binding:"omitempty,max=1000"`
}

// CreateDebtPaymentRequest represents the request body for a debt payment.
type CreateDebtPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date" binding:"required"`
	AccountID *string         `json:"account_id,omitempty"`
	Note      string          `json:"note,omitempty" binding:"omitempty,max=1000"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	VehicleID   *string `json:"vehicle_id"`
	AccountID   *string `json:"account_id"`
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Amount        string  `json:"amount"`
	VehicleID     *string `json:"vehicle_id"`
	BuyerName     string  `json:"buyer_name"`
	BuyerPhone    string  `json:"buyer_phone"`
	PaymentMethod string  `json:"payment_method"`
	AccountID     *string `json:"account_id"`
}

// AccountTransactionResponse represents a deposit or withdrawal in API responses.
type AccountTransactionResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Note      string `json:"note"`
	Balance   string `json:"balance"`
}

// DebtPaymentResponse represents a debt payment in API responses.
type DebtPaymentResponse struct {
	ID          string  `json:"id"`
	DebtID      string  `json:"debt_id"`
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	AccountID   *string `json:"account_id"`
	Note        string  `json:"note"`
	Outstanding string  `json:"outstanding"`
}

// DeleteResponse represents the response of a successful deletion.
type DeleteResponse struct {
	Success bool `json:"success"`
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID.String(),
		Date:        expense.Date.UTC().Format(dateTimeLayout),
		Amount:      expense.Amount.StringFixed(2),
		Category:    string(expense.Category),
		Description: expense.Description,
		VehicleID:   optionalID(expense.VehicleID),
		AccountID:   optionalID(expense.AccountID),
	}
}

// ToSaleResponse converts a domain Sale entity to a SaleResponse DTO.
func ToSaleResponse(sale *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            sale.ID.String(),
		Date:          sale.Date.UTC().Format(dateTimeLayout),
		Amount:        sale.Amount.StringFixed(2),
		VehicleID:     optionalID(sale.VehicleID),
		BuyerName:     sale.BuyerName,
		BuyerPhone:    sale.BuyerPhone,
		PaymentMethod: sale.PaymentMethod,
		AccountID:     optionalID(sale.AccountID),
	}
}

// ToAccountTransactionResponse converts an account transaction and the resulting
// balance to an AccountTransactionResponse DTO.
func ToAccountTransactionResponse(transaction *entity.AccountTransaction, balance decimal.Decimal) AccountTransactionResponse {
	return AccountTransactionResponse{
		ID:        transaction.ID.String(),
		AccountID: transaction.AccountID.String(),
		Type:      string(transaction.Type),
		Amount:    transaction.Amount.StringFixed(2),
		Date:      transaction.Date.UTC().Format(dateTimeLayout),
		Note:      transaction.Note,
		Balance:   balance.StringFixed(2),
	}
}

// ToDebtPaymentResponse converts a debt payment and the remaining debt to a
// DebtPaymentResponse DTO.
func ToDebtPaymentResponse(payment *entity.DebtPayment, outstanding decimal.Decimal) DebtPaymentResponse {
	return DebtPaymentResponse{
		ID:          payment.ID.String(),
		DebtID:      payment.DebtID.String(),
		Amount:      payment.Amount.StringFixed(2),
		Date:        payment.Date.UTC().Format(dateTimeLayout),
		AccountID:   optionalID(payment.AccountID),
		Note:        payment.Note,
		Outstanding: outstanding.StringFixed(2),
	}
}
