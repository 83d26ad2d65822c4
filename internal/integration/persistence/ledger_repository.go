package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
	"github.com/ezcar24/dealer-backend/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// WithinTransaction runs fn against a store bound to a single database transaction.
func (r *ledgerRepository) WithinTransaction(ctx context.Context, fn func(store adapter.LedgerStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerStore{tx: tx})
	})
}

// ledgerStore implements adapter.LedgerStore on top of an open transaction.
type ledgerStore struct {
	tx *gorm.DB
}

// first loads one dealer-scoped record, mapping a missing row to notFound.
func (s *ledgerStore) first(ctx context.Context, dst any, dealerID, id uuid.UUID, notFound error) error {
	result := s.tx.WithContext(ctx).Where("id = ? AND dealer_id = ?", id, dealerID).First(dst)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return notFound
		}
		return result.Error
	}
	return nil
}

// remove soft-deletes one dealer-scoped record, mapping a missing row to notFound.
func (s *ledgerStore) remove(ctx context.Context, value any, dealerID, id uuid.UUID, notFound error) error {
	result := s.tx.WithContext(ctx).Where("id = ? AND dealer_id = ?", id, dealerID).Delete(value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// FindExpense retrieves an expense of the dealer.
func (s *ledgerStore) FindExpense(ctx context.Context, dealerID, expenseID uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	if err := s.first(ctx, &expenseModel, dealerID, expenseID, domainerror.ErrExpenseNotFound); err != nil {
		return nil, err
	}
	return expenseModel.ToEntity(), nil
}

// CreateExpense inserts a new expense.
func (s *ledgerStore) CreateExpense(ctx context.Context, expense *entity.Expense) error {
	if err := s.tx.WithContext(ctx).Create(model.ExpenseFromEntity(expense)).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// UpdateExpense overwrites every column of an expense.
func (s *ledgerStore) UpdateExpense(ctx context.Context, expense *entity.Expense) error {
	if err := s.tx.WithContext(ctx).Save(model.ExpenseFromEntity(expense)).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteExpense soft-deletes an expense of the dealer.
func (s *ledgerStore) DeleteExpense(ctx context.Context, dealerID, expenseID uuid.UUID) error {
	return s.remove(ctx, &model.ExpenseModel{}, dealerID, expenseID, domainerror.ErrExpenseNotFound)
}

// FindSale retrieves a sale of the dealer.
func (s *ledgerStore) FindSale(ctx context.Context, dealerID, saleID uuid.UUID) (*entity.Sale, error) {
	var saleModel model.SaleModel
	if err := s.first(ctx, &saleModel, dealerID, saleID, domainerror.ErrSaleNotFound); err != nil {
		return nil, err
	}
	return saleModel.ToEntity(), nil
}

// CreateSale inserts a new sale.
func (s *ledgerStore) CreateSale(ctx context.Context, sale *entity.Sale) error {
	if err := s.tx.WithContext(ctx).Create(model.SaleFromEntity(sale)).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// DeleteSale soft-deletes a sale of the dealer.
func (s *ledgerStore) DeleteSale(ctx context.Context, dealerID, saleID uuid.UUID) error {
	return s.remove(ctx, &model.SaleModel{}, dealerID, saleID, domainerror.ErrSaleNotFound)
}

// FindVehicle retrieves a vehicle of the dealer together with its expenses.
func (s *ledgerStore) FindVehicle(ctx context.Context, dealerID, vehicleID uuid.UUID) (*entity.Vehicle, error) {
	var vehicleModel model.VehicleModel
	result := s.tx.WithContext(ctx).
		Preload("Expenses").
		Where("id = ? AND dealer_id = ?", vehicleID, dealerID).
		First(&vehicleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrVehicleNotFound
		}
		return nil, result.Error
	}
	return vehicleModel.ToEntity(), nil
}

// UpdateVehicle overwrites every column of a vehicle. Its expenses are left untouched.
func (s *ledgerStore) UpdateVehicle(ctx context.Context, vehicle *entity.Vehicle) error {
	if err := s.tx.WithContext(ctx).Omit("Expenses").Save(model.VehicleFromEntity(vehicle)).Error; err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// FindAccount retrieves a financial account of the dealer.
func (s *ledgerStore) FindAccount(ctx context.Context, dealerID, accountID uuid.UUID) (*entity.FinancialAccount, error) {
	var accountModel model.FinancialAccountModel
	if err := s.first(ctx, &accountModel, dealerID, accountID, domainerror.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return accountModel.ToEntity(), nil
}

// UpdateAccount persists the account balance.
func (s *ledgerStore) UpdateAccount(ctx context.Context, account *entity.FinancialAccount) error {
	if err := s.tx.WithContext(ctx).Save(model.FinancialAccountFromEntity(account)).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// FindAccountTransaction retrieves a deposit or withdrawal of the dealer.
func (s *ledgerStore) FindAccountTransaction(ctx context.Context, dealerID, transactionID uuid.UUID) (*entity.AccountTransaction, error) {
	var transactionModel model.AccountTransactionModel
	if err := s.first(ctx, &transactionModel, dealerID, transactionID, domainerror.ErrAccountTransactionNotFound); err != nil {
		return nil, err
	}
	return transactionModel.ToEntity(), nil
}

// CreateAccountTransaction inserts a new deposit or withdrawal.
func (s *ledgerStore) CreateAccountTransaction(ctx context.Context, transaction *entity.AccountTransaction) error {
	if err := s.tx.WithContext(ctx).Create(model.AccountTransactionFromEntity(transaction)).Error; err != nil {
		return fmt.Errorf("failed to create account transaction: %w", err)
	}
	return nil
}

// DeleteAccountTransaction soft-deletes a deposit or withdrawal of the dealer.
func (s *ledgerStore) DeleteAccountTransaction(ctx context.Context, dealerID, transactionID uuid.UUID) error {
	return s.remove(ctx, &model.AccountTransactionModel{}, dealerID, transactionID, domainerror.ErrAccountTransactionNotFound)
}

// FindDebt retrieves a debt of the dealer together with its payments.
func (s *ledgerStore) FindDebt(ctx context.Context, dealerID, debtID uuid.UUID) (*entity.Debt, error) {
	var debtModel model.DebtModel
	result := s.tx.WithContext(ctx).
		Preload("Payments").
		Where("id = ? AND dealer_id = ?", debtID, dealerID).
		First(&debtModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDebtNotFound
		}
		return nil, result.Error
	}
	return debtModel.ToEntity(), nil
}

// FindDebtPayment retrieves a debt payment of the dealer.
func (s *ledgerStore) FindDebtPayment(ctx context.Context, dealerID, paymentID uuid.UUID) (*entity.DebtPayment, error) {
	var paymentModel model.DebtPaymentModel
	if err := s.first(ctx, &paymentModel, dealerID, paymentID, domainerror.ErrDebtPaymentNotFound); err != nil {
		return nil, err
	}
	return paymentModel.ToEntity(), nil
}

// CreateDebtPayment inserts a new debt payment.
func (s *ledgerStore) CreateDebtPayment(ctx context.Context, payment *entity.DebtPayment) error {
	if err := s.tx.WithContext(ctx).Create(model.DebtPaymentFromEntity(payment)).Error; err != nil {
		return fmt.Errorf("failed to create debt payment: %w", err)
	}
	return nil
}

// DeleteDebtPayment soft-deletes a debt payment of the dealer.
func (s *ledgerStore) DeleteDebtPayment(ctx context.Context, dealerID, paymentID uuid.UUID) error {
	return s.remove(ctx, &model.DebtPaymentModel{}, dealerID, paymentID, domainerror.ErrDebtPaymentNotFound)
}
