package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// LedgerStore defines the record and balance operations available inside a
// ledger transaction. Finders return the domain not-found error when the
// record does not exist or belongs to another dealer.
type LedgerStore interface {
	FindExpense(ctx context.Context, dealerID, expenseID uuid.UUID) (*entity.Expense, error)
	CreateExpense(ctx context.Context, expense *entity.Expense) error
	UpdateExpense(ctx context.Context, expense *entity.Expense) error
	DeleteExpense(ctx context.Context, dealerID, expenseID uuid.UUID) error

	FindSale(ctx context.Context, dealerID, saleID uuid.UUID) (*entity.Sale, error)
	CreateSale(ctx context.Context, sale *entity.Sale) error
	DeleteSale(ctx context.Context, dealerID, saleID uuid.UUID) error

	FindVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) (*entity.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *entity.Vehicle) error

	FindAccount(ctx context.Context, dealerID, accountID uuid.UUID) (*entity.FinancialAccount, error)
	UpdateAccount(ctx context.Context, account *entity.FinancialAccount) error

	FindAccountTransaction(ctx context.Context, dealerID, transactionID uuid.UUID) (*entity.AccountTransaction, error)
	CreateAccountTransaction(ctx context.Context, transaction *entity.AccountTransaction) error
	DeleteAccountTransaction(ctx context.Context, dealerID, transactionID uuid.UUID) error

	FindDebt(ctx context.Context, dealerID, debtID uuid.UUID) (*entity.Debt, error)
	FindDebtPayment(ctx context.Context, dealerID, paymentID uuid.UUID) (*entity.DebtPayment, error)
	CreateDebtPayment(ctx context.Context, payment *entity.DebtPayment) error
	DeleteDebtPayment(ctx context.Context, dealerID, paymentID uuid.UUID) error
}

// LedgerRepository runs ledger work atomically.
type LedgerRepository interface {
	// WithinTransaction runs fn against a store bound to one database
	// transaction. The transaction is rolled back when fn returns an error.
	WithinTransaction(ctx context.Context, fn func(store LedgerStore) error) error
}
