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

// RecordDebtPaymentInput represents the input for recording a debt payment.
type RecordDebtPaymentInput struct {
	DealerID  uuid.UUID
	DebtID    uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	AccountID *uuid.UUID
	Note      string
}

// RecordDebtPaymentOutput represents the output of recording a debt payment.
type RecordDebtPaymentOutput struct {
	Payment     *entity.DebtPayment
	Outstanding decimal.Decimal
}

// RecordDebtPaymentUseCase records a repayment. Collecting a receivable
// credits the account; paying what the dealer owes debits it.
type RecordDebtPaymentUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewRecordDebtPaymentUseCase creates a new RecordDebtPaymentUseCase instance.
func NewRecordDebtPaymentUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.DashboardCacheInvalidator) *RecordDebtPaymentUseCase {
	return &RecordDebtPaymentUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute records the payment.
func (uc *RecordDebtPaymentUseCase) Execute(ctx context.Context, input RecordDebtPaymentInput) (*RecordDebtPaymentOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	payment := entity.NewDebtPayment(
		input.DealerID,
		input.DebtID,
		input.Amount,
		input.Date,
		input.AccountID,
		strings.TrimSpace(input.Note),
	)

	var outstanding decimal.Decimal
	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		debt, err := store.FindDebt(ctx, input.DealerID, input.DebtID)
		if err != nil {
			return storeError(err, "find debt")
		}
		if err := store.CreateDebtPayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to create debt payment: %w", err)
		}
		if err := applyToAccount(ctx, store, input.DealerID, payment.AccountID, debt.PaymentDelta(payment.Amount)); err != nil {
			return err
		}

		debt.Payments = append(debt.Payments, payment)
		outstanding = debt.Outstanding()
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Debt payment recorded", "dealerID", input.DealerID, "debtID", input.DebtID, "paymentID", payment.ID)
	invalidateDashboards(ctx, uc.cache, input.DealerID)

	return &RecordDebtPaymentOutput{Payment: payment, Outstanding: outstanding}, nil
}
