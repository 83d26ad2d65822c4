package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

var exportNow = time.Date(2026, time.May, 10, 15, 30, 0, 0, time.UTC)

func exportSnapshot() dashboard.Snapshot {
	vehicleID := uuid.New()
	vehicle := &entity.Vehicle{
		ID: vehicleID, Make: "Nissan", Model: "Patrol", Year: 2021,
		PurchasePrice: decimal.NewFromInt(30000), Status: entity.VehicleStatusOnSale,
	}
	repair := &entity.Expense{
		ID: uuid.New(), Date: exportNow.AddDate(0, 0, -2), Amount: decimal.NewFromInt(2000),
		Category: entity.ExpenseCategoryVehicle, VehicleID: &vehicleID,
	}
	vehicle.Expenses = []*entity.Expense{repair}

	return dashboard.Snapshot{
		Expenses: []*entity.Expense{
			repair,
			{ID: uuid.New(), Date: exportNow.AddDate(0, 0, -1), Amount: decimal.RequireFromString("500.25"), Category: entity.ExpenseCategoryOffice},
		},
		Vehicles: []*entity.Vehicle{vehicle},
		Accounts: []*entity.FinancialAccount{{AccountType: entity.AccountTypeCash, Balance: decimal.NewFromInt(4000)}},
	}
}

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestDashboardWorkbook_Render(t *testing.T) {
	d := dashboard.ComputeDashboard(exportSnapshot(), valueobject.TimeRangeWeek, exportNow, dashboard.Options{WeekStart: time.Monday})

	content, err := NewDashboardWorkbook().Render(d)

	require.NoError(t, err)
	f := openWorkbook(t, content)
	assert.Equal(t, []string{SheetSummary, SheetCategories, SheetTrend, SheetTopVehicles}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}

	label, err := f.GetCellValue(SheetSummary, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Total expenses", label)

	total, err := f.GetCellValue(SheetSummary, "B5", raw)
	require.NoError(t, err)
	assert.Equal(t, "2500.25", total)

	rangeLabel, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Last 7 days", rangeLabel)

	categories, err := f.GetRows(SheetCategories, raw)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, []string{"Category", "Amount", "Percent"}, categories[0])
	assert.Equal(t, "Vehicle", categories[1][0])
	assert.Equal(t, "2000", categories[1][1])

	vehicles, err := f.GetRows(SheetTopVehicles, raw)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "2000", vehicles[1][1])

	trend, err := f.GetRows(SheetTrend, raw)
	require.NoError(t, err)
	assert.Greater(t, len(trend), 1)
}

func TestDashboardWorkbook_Empty(t *testing.T) {
	d := dashboard.ComputeDashboard(dashboard.Snapshot{}, valueobject.TimeRangeAll, exportNow, dashboard.Options{})

	content, err := NewDashboardWorkbook().Render(d)

	require.NoError(t, err)
	f := openWorkbook(t, content)

	period, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "All time", period)

	rows, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
