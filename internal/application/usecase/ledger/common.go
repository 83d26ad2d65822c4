// Package ledger contains use cases that record money movements and keep
// account balances in step with them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

var notFoundCodes = []struct {
	sentinel error
	code     domainerror.LedgerErrorCode
}{
	{domainerror.ErrExpenseNotFound, domainerror.ErrCodeExpenseNotFound},
	{domainerror.ErrSaleNotFound, domainerror.ErrCodeSaleNotFound},
	{domainerror.ErrAccountNotFound, domainerror.ErrCodeAccountNotFound},
	{domainerror.ErrVehicleNotFound, domainerror.ErrCodeVehicleNotFound},
	{domainerror.ErrDebtNotFound, domainerror.ErrCodeDebtNotFound},
	{domainerror.ErrAccountTransactionNotFound, domainerror.ErrCodeAccountTransactionNotFound},
	{domainerror.ErrDebtPaymentNotFound, domainerror.ErrCodeDebtPaymentNotFound},
}

// storeError turns a store not-found error into a LedgerError and wraps anything else.
func storeError(err error, action string) error {
	for _, nf := range notFoundCodes {
		if errors.Is(err, nf.sentinel) {
			return domainerror.NewLedgerError(nf.code, nf.sentinel.Error(), nf.sentinel)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func notFound(sentinel error) error {
	return storeError(sentinel, "")
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeNonPositiveAmount,
			domainerror.ErrNonPositiveAmount.Error(),
			domainerror.ErrNonPositiveAmount,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeMissingDate,
			domainerror.ErrMissingDate.Error(),
			domainerror.ErrMissingDate,
		)
	}
	return nil
}

func validateDealer(dealerID uuid.UUID) error {
	if dealerID == uuid.Nil {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidLedgerID,
			"dealer_id is required",
			domainerror.ErrMissingDealer,
		)
	}
	return nil
}

// applyToAccount adds delta to the account's balance. A nil account is a no-op.
func applyToAccount(
	ctx context.Context,
	store adapter.LedgerStore,
	dealerID uuid.UUID,
	accountID *uuid.UUID,
	delta decimal.Decimal,
) error {
	if accountID == nil {
		return nil
	}

	account, err := store.FindAccount(ctx, dealerID, *accountID)
	if err != nil {
		return storeError(err, "find account")
	}

	account.Apply(delta)
	if err := store.UpdateAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return nil
}

// invalidateDashboards drops the dealer's cached dashboards after a commit.
// A cache failure is logged; the ledger write already succeeded.
func invalidateDashboards(ctx context.Context, cache adapter.DashboardCacheInvalidator, dealerID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, dealerID); err != nil {
		slog.Warn("Failed to invalidate dashboard cache", "dealerID", dealerID, "error", err)
	}
}
