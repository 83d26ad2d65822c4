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

// RecordAccountTransactionInput represents the input for a manual deposit or withdrawal.
type RecordAccountTransactionInput struct {
	DealerID  uuid.UUID
	AccountID uuid.UUID
	Type      entity.AccountTransactionType
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
}

// RecordAccountTransactionOutput represents the output of recording an account transaction.
type RecordAccountTransactionOutput struct {
	Transaction *entity.AccountTransaction
	Balance     decimal.Decimal
}

// RecordAccountTransactionUseCase applies a manual deposit or withdrawal to an account.
type RecordAccountTransactionUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewRecordAccountTransactionUseCase creates a new RecordAccountTransactionUseCase instance.
func NewRecordAccountTransactionUseCase(
	ledgerRepo adapter.LedgerRepository,
	cache adapter.DashboardCacheInvalidator,
) *RecordAccountTransactionUseCase {
	return &RecordAccountTransactionUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute records the account transaction.
func (uc *RecordAccountTransactionUseCase) Execute(
	ctx context.Context,
	input RecordAccountTransactionInput,
) (*RecordAccountTransactionOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}
	transactionType := entity.AccountTransactionType(strings.ToLower(strings.TrimSpace(string(input.Type))))
	if !transactionType.IsValid() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionType,
			domainerror.ErrInvalidTransactionType.Error(),
			domainerror.ErrInvalidTransactionType,
		)
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	transaction := entity.NewAccountTransaction(
		input.DealerID,
		input.AccountID,
		transactionType,
		input.Amount,
		input.Date,
		strings.TrimSpace(input.Note),
	)

	var balance decimal.Decimal
	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		account, err := store.FindAccount(ctx, input.DealerID, input.AccountID)
		if err != nil {
			return storeError(err, "find account")
		}
		if err := store.CreateAccountTransaction(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create account transaction: %w", err)
		}

		account.Apply(transaction.BalanceDelta())
		if err := store.UpdateAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}
		balance = account.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Account transaction recorded",
		"dealerID", input.DealerID, "accountID", input.AccountID, "type", transaction.Type)
	invalidateDashboards(ctx, uc.cache, input.DealerID)

	return &RecordAccountTransactionOutput{Transaction: transaction, Balance: balance}, nil
}
