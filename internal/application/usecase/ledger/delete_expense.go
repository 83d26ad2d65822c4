package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for deleting an expense.
type DeleteExpenseInput struct {
	DealerID  uuid.UUID
	ExpenseID uuid.UUID
}

// DeleteExpenseOutput represents the output of deleting an expense.
type DeleteExpenseOutput struct {
	Success bool
}

// DeleteExpenseUseCase removes an expense and refunds its funding account.
type DeleteExpenseUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.DashboardCacheInvalidator) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute deletes the expense.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}

	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		expense, err := store.FindExpense(ctx, input.DealerID, input.ExpenseID)
		if err != nil {
			return storeError(err, "find expense")
		}
		if err := store.DeleteExpense(ctx, input.DealerID, input.ExpenseID); err != nil {
			return storeError(err, "delete expense")
		}
		return applyToAccount(ctx, store, expense.DealerID, expense.AccountID, expense.BalanceDelta().Neg())
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense deleted", "dealerID", input.DealerID, "expenseID", input.ExpenseID)
	invalidateDashboards(ctx, uc.cache, input.DealerID)

	return &DeleteExpenseOutput{Success: true}, nil
}
