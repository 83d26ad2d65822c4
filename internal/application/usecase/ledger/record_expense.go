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
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// RecordExpenseInput represents the input for recording an expense.
type RecordExpenseInput struct {
	DealerID    uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Category    entity.ExpenseCategory
	Description string
	VehicleID   *uuid.UUID
	UserID      *uuid.UUID
	AccountID   *uuid.UUID
}

// RecordExpenseOutput represents the output of recording an expense.
type RecordExpenseOutput struct {
	Expense *entity.Expense
}

// RecordExpenseUseCase stores an expense and debits its funding account.
type RecordExpenseUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewRecordExpenseUseCase creates a new RecordExpenseUseCase instance.
func NewRecordExpenseUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.DashboardCacheInvalidator) *RecordExpenseUseCase {
	return &RecordExpenseUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute records the expense.
func (uc *RecordExpenseUseCase) Execute(ctx context.Context, input RecordExpenseInput) (*RecordExpenseOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	expense := entity.NewExpense(
		input.DealerID,
		input.Date,
		input.Amount,
		category,
		strings.TrimSpace(input.Description),
		input.VehicleID,
		input.UserID,
		input.AccountID,
	)

	err = uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		if expense.VehicleID != nil {
			if _, err := store.FindVehicle(ctx, expense.DealerID, *expense.VehicleID); err != nil {
				return storeError(err, "find vehicle")
			}
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}
		return applyToAccount(ctx, store, expense.DealerID, expense.AccountID, expense.BalanceDelta())
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense recorded", "dealerID", expense.DealerID, "expenseID", expense.ID, "amount", expense.Amount.String())
	invalidateDashboards(ctx, uc.cache, expense.DealerID)

	return &RecordExpenseOutput{Expense: expense}, nil
}

// parseCategory accepts an empty category (uncategorized) or one of the closed set.
func parseCategory(category entity.ExpenseCategory) (entity.ExpenseCategory, error) {
	normalized := entity.ExpenseCategory(strings.ToLower(strings.TrimSpace(string(category))))
	if normalized == "" || normalized.IsValid() {
		return normalized, nil
	}
	return "", domainerror.NewLedgerError(
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrInvalidExpenseCategory.Error(),
		domainerror.ErrInvalidExpenseCategory,
	)
}
