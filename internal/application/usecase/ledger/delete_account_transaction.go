package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// DeleteAccountTransactionInput represents the input for deleting an account transaction.
type DeleteAccountTransactionInput struct {
	DealerID      uuid.UUID
	AccountID     uuid.UUID
	TransactionID uuid.UUID
}

// DeleteAccountTransactionOutput represents the output of deleting an account transaction.
type DeleteAccountTransactionOutput struct {
	Success bool
}

// DeleteAccountTransactionUseCase removes a deposit or withdrawal and reverses it.
type DeleteAccountTransactionUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewDeleteAccountTransactionUseCase creates a new DeleteAccountTransactionUseCase instance.
func NewDeleteAccountTransactionUseCase(
	ledgerRepo adapter.LedgerRepository,
	cache adapter.DashboardCacheInvalidator,
) *DeleteAccountTransactionUseCase {
	return &DeleteAccountTransactionUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute deletes the account transaction.
func (uc *DeleteAccountTransactionUseCase) Execute(
	ctx context.Context,
	input DeleteAccountTransactionInput,
) (*DeleteAccountTransactionOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}

	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		transaction, err := store.FindAccountTransaction(ctx, input.DealerID, input.TransactionID)
		if err != nil {
			return storeError(err, "find account transaction")
		}
		if transaction.AccountID != input.AccountID {
			return notFound(domainerror.ErrAccountTransactionNotFound)
		}
		if err := store.DeleteAccountTransaction(ctx, input.DealerID, input.TransactionID); err != nil {
			return storeError(err, "delete account transaction")
		}
		return applyToAccount(ctx, store, input.DealerID, &transaction.AccountID, transaction.BalanceDelta().Neg())
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Account transaction deleted",
		"dealerID", input.DealerID, "accountID", input.AccountID, "transactionID", input.TransactionID)
	invalidateDashboards(ctx, uc.cache, input.DealerID)

	return &DeleteAccountTransactionOutput{Success: true}, nil
}
