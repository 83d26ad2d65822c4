// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseCategoryVehicle   ExpenseCategory = "vehicle"
	ExpenseCategoryPersonal  ExpenseCategory = "personal"
	ExpenseCategoryEmployee  ExpenseCategory = "employee"
	ExpenseCategoryMarketing ExpenseCategory = "marketing"
	ExpenseCategoryOffice    ExpenseCategory = "office"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// ExpenseCategories lists the closed set of expense categories.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryVehicle,
	ExpenseCategoryPersonal,
	ExpenseCategoryEmployee,
	ExpenseCategoryMarketing,
	ExpenseCategoryOffice,
	ExpenseCategoryOther,
}

// IsValid reports whether c belongs to the closed category set.
func (c ExpenseCategory) IsValid() bool {
	for _, candidate := range ExpenseCategories {
		if c == candidate {
			return true
		}
	}
	return false
}

// Normalize maps a missing or unknown category to other.
func (c ExpenseCategory) Normalize() ExpenseCategory {
	if c.IsValid() {
		return c
	}
	return ExpenseCategoryOther
}

// Expense represents money spent by the dealership.
type Expense struct {
	ID          uuid.UUID
	DealerID    uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Category    ExpenseCategory // Empty when uncategorized
	Description string
	VehicleID   *uuid.UUID
	UserID      *uuid.UUID // Employee who incurred the expense
	AccountID   *uuid.UUID // Account the expense was paid from
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(
	dealerID uuid.UUID,
	date time.Time,
	amount decimal.Decimal,
	category ExpenseCategory,
	description string,
	vehicleID, userID, accountID *uuid.UUID,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		DealerID:    dealerID,
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
		VehicleID:   vehicleID,
		UserID:      userID,
		AccountID:   accountID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// BalanceDelta returns the signed change the expense applies to its funding account.
func (e *Expense) BalanceDelta() decimal.Decimal {
	return e.Amount.Neg()
}
