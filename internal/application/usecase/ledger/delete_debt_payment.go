package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// DeleteDebtPaymentInput represents the input for deleting a debt payment.
type DeleteDebtPaymentInput struct {
	DealerID  uuid.UUID
	DebtID    uuid.UUID
	PaymentID uuid.UUID
}

// DeleteDebtPaymentOutput represents the output of deleting a debt payment.
type DeleteDebtPaymentOutput struct {
	Success bool
}

// DeleteDebtPaymentUseCase removes a debt payment and reverses its balance effect.
type DeleteDebtPaymentUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewDeleteDebtPaymentUseCase creates a new DeleteDebtPaymentUseCase instance.
func NewDeleteDebtPaymentUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.DashboardCacheInvalidator) *DeleteDebtPaymentUseCase {
	return &DeleteDebtPaymentUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute deletes the payment.
func (uc *DeleteDebtPaymentUseCase) Execute(ctx context.Context, input DeleteDebtPaymentInput) (*DeleteDebtPaymentOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}

	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		debt, err := store.FindDebt(ctx, input.DealerID, input.DebtID)
		if err != nil {
			return storeError(err, "find debt")
		}
		payment, err := store.FindDebtPayment(ctx, input.DealerID, input.PaymentID)
		if err != nil {
			return storeError(err, "find debt payment")
		}
		if payment.DebtID != debt.ID {
			return notFound(domainerror.ErrDebtPaymentNotFound)
		}
		if err := store.DeleteDebtPayment(ctx, input.DealerID, input.PaymentID); err != nil {
			return storeError(err, "delete debt payment")
		}
		return applyToAccount(ctx, store, input.DealerID, payment.AccountID, debt.PaymentDelta(payment.Amount).Neg())
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Debt payment deleted", "dealerID", input.DealerID, "debtID", input.DebtID, "paymentID", input.PaymentID)
	invalidateDashboards(ctx, uc.cache, input.DealerID)

	return &DeleteDebtPaymentOutput{Success: true}, nil
}
