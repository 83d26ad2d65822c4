package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// UpdateExpenseInput represents the input for updating an expense.
// Nil fields are left unchanged; the Clear flags detach the vehicle or account.
type UpdateExpenseInput struct {
	DealerID     uuid.UUID
	ExpenseID    uuid.UUID
	Date         *time.Time
	Amount       *decimal.Decimal
	Category     *entity.ExpenseCategory
	Description  *string
	VehicleID    *uuid.UUID
	ClearVehicle bool
	AccountID    *uuid.UUID
	ClearAccount bool
}

// UpdateExpenseOutput represents the output of updating an expense.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase changes an expense and moves its balance effect
// from the old account state to the new one.
type UpdateExpenseUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.DashboardCacheInvalidator) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute updates the expense.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
	}
	var category *entity.ExpenseCategory
	if input.Category != nil {
		parsed, err := parseCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		category = &parsed
	}

	var updated *entity.Expense
	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		expense, err := store.FindExpense(ctx, input.DealerID, input.ExpenseID)
		if err != nil {
			return storeError(err, "find expense")
		}

		// Revert against the old account before any field changes.
		if err := applyToAccount(ctx, store, expense.DealerID, expense.AccountID, expense.BalanceDelta().Neg()); err != nil {
			return err
		}

		if input.Date != nil {
			expense.Date = *input.Date
		}
		if input.Amount != nil {
			expense.Amount = *input.Amount
		}
		if category != nil {
			expense.Category = *category
		}
		if input.Description != nil {
			expense.Description = strings.TrimSpace(*input.Description)
		}
		switch {
		case input.ClearVehicle:
			expense.VehicleID = nil
		case input.VehicleID != nil:
			if _, err := store.FindVehicle(ctx, expense.DealerID, *input.VehicleID); err != nil {
				return storeError(err, "find vehicle")
			}
			expense.VehicleID = input.VehicleID
		}
		switch {
		case input.ClearAccount:
			expense.AccountID = nil
		case input.AccountID != nil:
			expense.AccountID = input.AccountID
		}
		expense.UpdatedAt = time.Now().UTC()

		if err := store.UpdateExpense(ctx, expense); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		if err := applyToAccount(ctx, store, expense.DealerID, expense.AccountID, expense.BalanceDelta()); err != nil {
			return err
		}

		updated = expense
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense updated", "dealerID", updated.DealerID, "expenseID", updated.ID)
	invalidateDashboards(ctx, uc.cache, updated.DealerID)

	return &UpdateExpenseOutput{Expense: updated}, nil
}
