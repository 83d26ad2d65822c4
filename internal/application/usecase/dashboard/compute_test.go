package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

// dealerSnapshot builds a small dealership as of trendNow:
// one sold Camry, one Civic on sale, two accounts and two open debts.
func dealerSnapshot() Snapshot {
	camry := &entity.Vehicle{
		ID:            uuid.New(),
		Make:          "Toyota",
		Model:         "Camry",
		PurchasePrice: dec("40000"),
		Status:        entity.VehicleStatusSold,
	}
	civic := &entity.Vehicle{
		ID:            uuid.New(),
		Make:          "Honda",
		Model:         "Civic",
		PurchasePrice: dec("10000"),
		Status:        entity.VehicleStatusOnSale,
	}

	camryPrep := expense(entity.ExpenseCategoryVehicle, "2000", date(2026, time.May, 5, 10, 0), camry)
	camryTransport := expense(entity.ExpenseCategoryVehicle, "1000", date(2026, time.April, 20, 10, 0), camry)
	camry.Expenses = []*entity.Expense{camryPrep, camryTransport}

	return Snapshot{
		Expenses: []*entity.Expense{
			camryPrep,
			camryTransport,
			expense(entity.ExpenseCategoryPersonal, "300", date(2026, time.May, 10, 9, 0), nil),
			expense(entity.ExpenseCategoryEmployee, "200", date(2026, time.May, 10, 12, 0), nil),
			expense(entity.ExpenseCategoryOffice, "100", date(2026, time.April, 28, 12, 0), nil),
		},
		Vehicles: []*entity.Vehicle{camry, civic},
		Sales: []*entity.Sale{
			{ID: uuid.New(), Amount: dec("50000"), Date: date(2026, time.May, 8, 16, 0), VehicleID: &camry.ID, Vehicle: camry, BuyerName: "Rami"},
			{ID: uuid.New(), Amount: dec("1000"), Date: date(2026, time.April, 30, 11, 0)},
			{ID: uuid.New(), Amount: dec("500"), Date: date(2026, time.January, 1, 11, 0)},
		},
		Accounts: []*entity.FinancialAccount{
			{AccountType: "cash", Balance: dec("5000")},
			{AccountType: "Bank", Balance: dec("20000")},
		},
		Debts: []*entity.Debt{
			{Direction: entity.DebtDirectionOwedToMe, Amount: dec("1000")},
			{Direction: entity.DebtDirectionIOwe, Amount: dec("400")},
		},
	}
}

func TestComputeDashboard_Week(t *testing.T) {
	result := ComputeDashboard(dealerSnapshot(), valueobject.TimeRangeWeek, trendNow, Options{WeekStart: time.Monday, RecentLimit: 2})

	assert.Equal(t, valueobject.TimeRangeWeek, result.Range)
	require.NotNil(t, result.PeriodStart)
	assert.True(t, result.PeriodStart.Equal(date(2026, time.May, 4, 0, 0)))

	t.Run("balances", func(t *testing.T) {
		assert.Equal(t, "5000", result.Balances.Cash.String())
		assert.Equal(t, "20000", result.Balances.Bank.String())
		assert.Equal(t, "10000", result.Balances.VehicleValue.String())
		assert.Equal(t, "35000", result.Balances.TotalAssets.String())
		assert.Equal(t, "35600", result.Balances.NetPosition.String())
		assert.Equal(t, 1, result.Inventory.Sold)
		assert.Equal(t, 1, result.Inventory.OnSale)
	})

	t.Run("expenses", func(t *testing.T) {
		expenses := result.Expenses

		assert.Equal(t, "2500", expenses.Total.String())
		assert.Equal(t, 3, expenses.TransactionCount)
		require.Len(t, expenses.ByCategory, 3)
		assert.Equal(t, 80.0, expenses.ByCategory[0].Percent)

		require.Len(t, expenses.Trend, 7)
		assert.Equal(t, "2500", expenses.Trend[6].Value.String())

		require.NotNil(t, expenses.Comparison)
		require.NotNil(t, expenses.Comparison.PercentChange)
		assert.Equal(t, 2400.0, *expenses.Comparison.PercentChange)
		assert.Nil(t, expenses.Comparison.CountDelta)

		assert.Equal(t, "500", expenses.TodayTotal.String())
		require.Len(t, expenses.Today, 2)
		assert.Equal(t, "employee", expenses.Today[0].Category)

		require.Len(t, expenses.Recent, 2)
		assert.Equal(t, "200", expenses.Recent[0].Amount.String())
		assert.Equal(t, "300", expenses.Recent[1].Amount.String())
	})

	t.Run("sales", func(t *testing.T) {
		sales := result.Sales

		assert.Equal(t, "50000", sales.Income.String())
		assert.Equal(t, 1, sales.Count)
		assert.Equal(t, "7000", sales.Profit.String())
		assert.Equal(t, "7000", sales.AverageProfit.String())
		assert.Equal(t, "8500", sales.AllTimeProfit.String())
		assert.Equal(t, 3, sales.AllTimeCount)

		require.Len(t, sales.ProfitTrend, 5)
		assert.Equal(t, "7000", sales.ProfitTrend[4].Value.String())

		require.NotNil(t, sales.Comparison)
		require.NotNil(t, sales.Comparison.PercentChange)
		require.NotNil(t, sales.Comparison.CountDelta)
		assert.Equal(t, 4900.0, *sales.Comparison.PercentChange)
		assert.Equal(t, 0, *sales.Comparison.CountDelta)

		require.Len(t, sales.Items, 1)
		assert.Equal(t, "Toyota Camry", sales.Items[0].VehicleTitle)
		assert.Equal(t, 14.0, sales.Items[0].Margin)
	})

	t.Run("debts", func(t *testing.T) {
		assert.Equal(t, 2, result.Debts.OpenCount)
		assert.Equal(t, "1000", result.Debts.ReceivableOutstanding.String())
	})
}

func TestComputeDashboard_AllHasNoComparison(t *testing.T) {
	result := ComputeDashboard(dealerSnapshot(), valueobject.TimeRangeAll, trendNow, Options{})

	assert.Nil(t, result.PeriodStart)
	assert.Nil(t, result.Expenses.Comparison)
	assert.Nil(t, result.Sales.Comparison)
	assert.Equal(t, "3600", result.Expenses.Total.String())
	assert.Equal(t, "8500", result.Sales.Profit.String())
	assert.Equal(t, result.Sales.Profit, result.Sales.AllTimeProfit)
	assert.Len(t, result.Expenses.Recent, 5)
}

func TestComputeDashboard_DoesNotReorderSnapshot(t *testing.T) {
	snapshot := dealerSnapshot()
	firstID := snapshot.Expenses[0].ID

	first := ComputeDashboard(snapshot, valueobject.TimeRangeMonth, trendNow, Options{WeekStart: time.Monday})
	second := ComputeDashboard(snapshot, valueobject.TimeRangeMonth, trendNow, Options{WeekStart: time.Monday})

	assert.Equal(t, firstID, snapshot.Expenses[0].ID)
	assert.Equal(t, first, second)
}

func TestComputeDashboard_EmptyInput(t *testing.T) {
	for _, r := range valueobject.AllTimeRanges {
		t.Run(string(r), func(t *testing.T) {
			result := ComputeDashboard(Snapshot{}, r, trendNow, Options{})

			assert.True(t, result.Balances.TotalAssets.IsZero())
			assert.True(t, result.Balances.NetPosition.IsZero())
			assert.True(t, result.Expenses.Total.IsZero())
			assert.True(t, result.Sales.Profit.IsZero())
			assert.True(t, result.Sales.AllTimeProfit.IsZero())
			assert.Empty(t, result.Expenses.ByCategory)
			assert.Empty(t, result.Expenses.Breakdown)
			assert.Empty(t, result.Expenses.TopVehicles)
			assert.Empty(t, result.Expenses.Trend)
			assert.Empty(t, result.Sales.ProfitTrend)
			assert.Empty(t, result.Expenses.Recent)

			if result.Expenses.Comparison != nil {
				assert.Nil(t, result.Expenses.Comparison.PercentChange)
			}
			if result.Sales.Comparison != nil {
				assert.Nil(t, result.Sales.Comparison.PercentChange)
				assert.Nil(t, result.Sales.Comparison.CountDelta)
			}
		})
	}
}

func TestComputeDashboard_UnknownRangeFallsBackToAll(t *testing.T) {
	result := ComputeDashboard(Snapshot{}, valueobject.TimeRange("fortnight"), trendNow, Options{})

	assert.Equal(t, valueobject.TimeRangeAll, result.Range)
}

// The month interval covers 31 calendar days but its trend shows the last 30,
// and the all-time trend shows the last 12 months. Records outside those
// buckets count in the totals only, so trend deltas may sum to less than the total.
func TestComputeDashboard_TrendWindowNarrowerThanInterval(t *testing.T) {
	tests := []struct {
		name   string
		r      valueobject.TimeRange
		dateAt time.Time
	}{
		{name: "first day of the month interval", r: valueobject.TimeRangeMonth, dateAt: date(2026, time.April, 10, 10, 0)},
		{name: "older than the all-time trend", r: valueobject.TimeRangeAll, dateAt: date(2024, time.January, 15, 10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := Snapshot{
				Expenses: []*entity.Expense{
					{ID: uuid.New(), Amount: dec("100"), Category: entity.ExpenseCategoryOffice, Date: tt.dateAt},
				},
			}

			result := ComputeDashboard(snapshot, tt.r, trendNow, Options{WeekStart: time.Monday})

			assert.Equal(t, "100", result.Expenses.Total.String())
			assert.Empty(t, result.Expenses.Trend)
		})
	}
}
