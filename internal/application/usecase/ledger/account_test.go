package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

func TestAccountTransactions(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()

	tests := []struct {
		name            string
		transactionType entity.AccountTransactionType
		amount          string
		balanceAfter    string
	}{
		{name: "deposit adds", transactionType: entity.AccountTransactionDeposit, amount: "250", balanceAfter: "1250"},
		{name: "withdrawal subtracts", transactionType: entity.AccountTransactionWithdrawal, amount: "1500", balanceAfter: "-500"},
		{name: "type is case insensitive", transactionType: "Deposit", amount: "0.01", balanceAfter: "1000.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryLedger()
			cache := newCountingCache()
			accountID := store.addAccount(dealerID, "cash", "1000")

			recorded, err := NewRecordAccountTransactionUseCase(store, cache).Execute(ctx, RecordAccountTransactionInput{
				DealerID:  dealerID,
				AccountID: accountID,
				Type:      tt.transactionType,
				Amount:    dec(tt.amount),
				Date:      ledgerDate,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.balanceAfter, recorded.Balance.String())
			assert.Equal(t, tt.balanceAfter, store.balance(accountID))

			_, err = NewDeleteAccountTransactionUseCase(store, cache).Execute(ctx, DeleteAccountTransactionInput{
				DealerID:      dealerID,
				AccountID:     accountID,
				TransactionID: recorded.Transaction.ID,
			})

			require.NoError(t, err)
			assert.Equal(t, "1000", store.balance(accountID))
			assert.Empty(t, store.transactions)
			assert.Equal(t, 2, cache.invalidated[dealerID])
		})
	}
}

func TestRecordAccountTransactionUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()
	store := newMemoryLedger()
	accountID := store.addAccount(dealerID, "cash", "1000")
	uc := NewRecordAccountTransactionUseCase(store, nil)

	_, err := uc.Execute(ctx, RecordAccountTransactionInput{DealerID: dealerID, AccountID: accountID, Type: "transfer", Amount: dec("1"), Date: ledgerDate})
	requireLedgerCode(t, err, domainerror.ErrCodeInvalidTransactionType)

	_, err = uc.Execute(ctx, RecordAccountTransactionInput{DealerID: dealerID, AccountID: accountID, Type: entity.AccountTransactionDeposit, Amount: dec("-1"), Date: ledgerDate})
	requireLedgerCode(t, err, domainerror.ErrCodeNonPositiveAmount)

	_, err = uc.Execute(ctx, RecordAccountTransactionInput{DealerID: dealerID, AccountID: uuid.New(), Type: entity.AccountTransactionDeposit, Amount: dec("1"), Date: ledgerDate})
	requireLedgerCode(t, err, domainerror.ErrCodeAccountNotFound)
	assert.Empty(t, store.transactions)
}

func TestDeleteAccountTransactionUseCase_WrongAccount(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()
	store := newMemoryLedger()
	cash := store.addAccount(dealerID, "cash", "1000")
	bank := store.addAccount(dealerID, "bank", "1000")

	recorded, err := NewRecordAccountTransactionUseCase(store, nil).Execute(ctx, RecordAccountTransactionInput{
		DealerID:  dealerID,
		AccountID: cash,
		Type:      entity.AccountTransactionDeposit,
		Amount:    dec("10"),
		Date:      ledgerDate,
	})
	require.NoError(t, err)

	_, err = NewDeleteAccountTransactionUseCase(store, nil).Execute(ctx, DeleteAccountTransactionInput{
		DealerID:      dealerID,
		AccountID:     bank,
		TransactionID: recorded.Transaction.ID,
	})

	requireLedgerCode(t, err, domainerror.ErrCodeAccountTransactionNotFound)
	assert.Equal(t, "1010", store.balance(cash))
	assert.Equal(t, "1000", store.balance(bank))
}
