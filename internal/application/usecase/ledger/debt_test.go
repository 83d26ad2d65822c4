package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

func TestDebtPayments(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()

	tests := []struct {
		name         string
		direction    entity.DebtDirection
		balanceAfter string
	}{
		{name: "collecting a receivable credits the account", direction: entity.DebtDirectionOwedToMe, balanceAfter: "1400"},
		{name: "paying a debt debits the account", direction: entity.DebtDirectionIOwe, balanceAfter: "600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryLedger()
			cash := store.addAccount(dealerID, "cash", "1000")
			debtID := store.addDebt(dealerID, tt.direction, "1000")

			recorded, err := NewRecordDebtPaymentUseCase(store, nil).Execute(ctx, RecordDebtPaymentInput{
				DealerID:  dealerID,
				DebtID:    debtID,
				Amount:    dec("400"),
				Date:      ledgerDate,
				AccountID: &cash,
			})

			require.NoError(t, err)
			assert.Equal(t, "600", recorded.Outstanding.String())
			assert.Equal(t, tt.balanceAfter, store.balance(cash))

			_, err = NewDeleteDebtPaymentUseCase(store, nil).Execute(ctx, DeleteDebtPaymentInput{
				DealerID:  dealerID,
				DebtID:    debtID,
				PaymentID: recorded.Payment.ID,
			})

			require.NoError(t, err)
			assert.Equal(t, "1000", store.balance(cash))
			assert.Empty(t, store.payments)
		})
	}
}

func TestDebtPayments_Errors(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()
	store := newMemoryLedger()
	firstDebt := store.addDebt(dealerID, entity.DebtDirectionOwedToMe, "100")
	secondDebt := store.addDebt(dealerID, entity.DebtDirectionOwedToMe, "100")

	_, err := NewRecordDebtPaymentUseCase(store, nil).Execute(ctx, RecordDebtPaymentInput{
		DealerID: dealerID,
		DebtID:   uuid.New(),
		Amount:   dec("10"),
		Date:     ledgerDate,
	})
	requireLedgerCode(t, err, domainerror.ErrCodeDebtNotFound)

	recorded, err := NewRecordDebtPaymentUseCase(store, nil).Execute(ctx, RecordDebtPaymentInput{
		DealerID: dealerID,
		DebtID:   firstDebt,
		Amount:   dec("10"),
		Date:     ledgerDate,
	})
	require.NoError(t, err)

	_, err = NewDeleteDebtPaymentUseCase(store, nil).Execute(ctx, DeleteDebtPaymentInput{
		DealerID:  dealerID,
		DebtID:    secondDebt,
		PaymentID: recorded.Payment.ID,
	})
	requireLedgerCode(t, err, domainerror.ErrCodeDebtPaymentNotFound)
	assert.Len(t, store.payments, 1)
}

func TestInvalidationFailureDoesNotFailTheWrite(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()
	store := newMemoryLedger()
	cache := newCountingCache()
	cache.err = errors.New("redis down")

	_, err := NewRecordExpenseUseCase(store, cache).Execute(ctx, RecordExpenseInput{
		DealerID: dealerID,
		Date:     ledgerDate,
		Amount:   dec("10"),
	})

	require.NoError(t, err)
	assert.Len(t, store.expenses, 1)
	assert.Equal(t, 1, store.commits)
}
