package ledger

import (
	"context"
	"maps"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// memoryLedger keeps records by value so a failed transaction can be rolled back.
type memoryLedger struct {
	expenses     map[uuid.UUID]entity.Expense
	sales        map[uuid.UUID]entity.Sale
	vehicles     map[uuid.UUID]entity.Vehicle
	accounts     map[uuid.UUID]entity.FinancialAccount
	transactions map[uuid.UUID]entity.AccountTransaction
	debts        map[uuid.UUID]entity.Debt
	payments     map[uuid.UUID]entity.DebtPayment
	commits      int
	rollbacks    int
}

var _ adapter.LedgerRepository = (*memoryLedger)(nil)
var _ adapter.LedgerStore = (*memoryLedger)(nil)

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		expenses:     map[uuid.UUID]entity.Expense{},
		sales:        map[uuid.UUID]entity.Sale{},
		vehicles:     map[uuid.UUID]entity.Vehicle{},
		accounts:     map[uuid.UUID]entity.FinancialAccount{},
		transactions: map[uuid.UUID]entity.AccountTransaction{},
		debts:        map[uuid.UUID]entity.Debt{},
		payments:     map[uuid.UUID]entity.DebtPayment{},
	}
}

func (m *memoryLedger) WithinTransaction(_ context.Context, fn func(store adapter.LedgerStore) error) error {
	saved := *m
	saved.expenses = maps.Clone(m.expenses)
	saved.sales = maps.Clone(m.sales)
	saved.vehicles = maps.Clone(m.vehicles)
	saved.accounts = maps.Clone(m.accounts)
	saved.transactions = maps.Clone(m.transactions)
	saved.debts = maps.Clone(m.debts)
	saved.payments = maps.Clone(m.payments)

	if err := fn(m); err != nil {
		rollbacks := m.rollbacks + 1
		*m = saved
		m.rollbacks = rollbacks
		return err
	}
	m.commits++
	return nil
}

func (m *memoryLedger) FindExpense(_ context.Context, dealerID, expenseID uuid.UUID) (*entity.Expense, error) {
	e, ok := m.expenses[expenseID]
	if !ok || e.DealerID != dealerID {
		return nil, domainerror.ErrExpenseNotFound
	}
	return &e, nil
}

func (m *memoryLedger) CreateExpense(_ context.Context, expense *entity.Expense) error {
	m.expenses[expense.ID] = *expense
	return nil
}

func (m *memoryLedger) UpdateExpense(_ context.Context, expense *entity.Expense) error {
	m.expenses[expense.ID] = *expense
	return nil
}

func (m *memoryLedger) DeleteExpense(_ context.Context, _, expenseID uuid.UUID) error {
	delete(m.expenses, expenseID)
	return nil
}

func (m *memoryLedger) FindSale(_ context.Context, dealerID, saleID uuid.UUID) (*entity.Sale, error) {
	s, ok := m.sales[saleID]
	if !ok || s.DealerID != dealerID {
		return nil, domainerror.ErrSaleNotFound
	}
	return &s, nil
}

func (m *memoryLedger) CreateSale(_ context.Context, sale *entity.Sale) error {
	stored := *sale
	stored.Vehicle = nil
	m.sales[sale.ID] = stored
	return nil
}

func (m *memoryLedger) DeleteSale(_ context.Context, _, saleID uuid.UUID) error {
	delete(m.sales, saleID)
	return nil
}

func (m *memoryLedger) FindVehicle(_ context.Context, dealerID, vehicleID uuid.UUID) (*entity.Vehicle, error) {
	v, ok := m.vehicles[vehicleID]
	if !ok || v.DealerID != dealerID {
		return nil, domainerror.ErrVehicleNotFound
	}
	return &v, nil
}

func (m *memoryLedger) UpdateVehicle(_ context.Context, vehicle *entity.Vehicle) error {
	m.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (m *memoryLedger) FindAccount(_ context.Context, dealerID, accountID uuid.UUID) (*entity.FinancialAccount, error) {
	a, ok := m.accounts[accountID]
	if !ok || a.DealerID != dealerID {
		return nil, domainerror.ErrAccountNotFound
	}
	return &a, nil
}

func (m *memoryLedger) UpdateAccount(_ context.Context, account *entity.FinancialAccount) error {
	m.accounts[account.ID] = *account
	return nil
}

func (m *memoryLedger) FindAccountTransaction(_ context.Context, dealerID, transactionID uuid.UUID) (*entity.AccountTransaction, error) {
	t, ok := m.transactions[transactionID]
	if !ok || t.DealerID != dealerID {
		return nil, domainerror.ErrAccountTransactionNotFound
	}
	return &t, nil
}

func (m *memoryLedger) CreateAccountTransaction(_ context.Context, transaction *entity.AccountTransaction) error {
	m.transactions[transaction.ID] = *transaction
	return nil
}

func (m *memoryLedger) DeleteAccountTransaction(_ context.Context, _, transactionID uuid.UUID) error {
	delete(m.transactions, transactionID)
	return nil
}

func (m *memoryLedger) FindDebt(_ context.Context, dealerID, debtID uuid.UUID) (*entity.Debt, error) {
	d, ok := m.debts[debtID]
	if !ok || d.DealerID != dealerID {
		return nil, domainerror.ErrDebtNotFound
	}
	d.Payments = nil
	for _, p := range m.payments {
		if p.DebtID == debtID {
			payment := p
			d.Payments = append(d.Payments, &payment)
		}
	}
	return &d, nil
}

func (m *memoryLedger) FindDebtPayment(_ context.Context, dealerID, paymentID uuid.UUID) (*entity.DebtPayment, error) {
	p, ok := m.payments[paymentID]
	if !ok || p.DealerID != dealerID {
		return nil, domainerror.ErrDebtPaymentNotFound
	}
	return &p, nil
}

func (m *memoryLedger) CreateDebtPayment(_ context.Context, payment *entity.DebtPayment) error {
	m.payments[payment.ID] = *payment
	return nil
}

func (m *memoryLedger) DeleteDebtPayment(_ context.Context, _, paymentID uuid.UUID) error {
	delete(m.payments, paymentID)
	return nil
}

func (m *memoryLedger) addAccount(dealerID uuid.UUID, accountType, balance string) uuid.UUID {
	id := uuid.New()
	m.accounts[id] = entity.FinancialAccount{ID: id, DealerID: dealerID, AccountType: accountType, Balance: dec(balance)}
	return id
}

func (m *memoryLedger) addVehicle(dealerID uuid.UUID, status entity.VehicleStatus) uuid.UUID {
	id := uuid.New()
	m.vehicles[id] = entity.Vehicle{ID: id, DealerID: dealerID, Make: "Toyota", Model: "Camry", PurchasePrice: dec("40000"), Status: status}
	return id
}

func (m *memoryLedger) addDebt(dealerID uuid.UUID, direction entity.DebtDirection, amount string) uuid.UUID {
	id := uuid.New()
	m.debts[id] = entity.Debt{ID: id, DealerID: dealerID, Direction: direction, Amount: dec(amount)}
	return id
}

func (m *memoryLedger) balance(accountID uuid.UUID) string {
	return m.accounts[accountID].Balance.String()
}

// countingCache records invalidations per dealer.
type countingCache struct {
	invalidated map[uuid.UUID]int
	err         error
}

func newCountingCache() *countingCache {
	return &countingCache{invalidated: map[uuid.UUID]int{}}
}

func (c *countingCache) Invalidate(_ context.Context, dealerID uuid.UUID) error {
	c.invalidated[dealerID]++
	return c.err
}
