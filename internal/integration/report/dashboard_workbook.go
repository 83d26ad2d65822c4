// Package report renders computed dashboards as spreadsheet workbooks.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
)

// Sheet names of the exported workbook.
const (
	SheetSummary     = "Summary"
	SheetCategories  = "Categories"
	SheetTrend       = "Trend"
	SheetTopVehicles = "Top vehicles"
)

const dateLayout = "2006-01-02 15:04"

// DashboardWorkbook renders a dashboard into an xlsx workbook.
type DashboardWorkbook struct{}

// NewDashboardWorkbook creates a new DashboardWorkbook instance.
func NewDashboardWorkbook() *DashboardWorkbook {
	return &DashboardWorkbook{}
}

type workbookStyles struct {
	header int
	money  int
}

// Render implements dashboard.WorkbookRenderer.
func (w *DashboardWorkbook) Render(d *dashboard.Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetTrend, SheetTopVehicles} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	writers := []func(*excelize.File, workbookStyles, *dashboard.Dashboard) error{
		writeSummary,
		writeCategories,
		writeTrend,
		writeTopVehicles,
	}
	for _, write := range writers {
		if err := write(f, styles, d); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return workbookStyles{}, fmt.Errorf("failed to create header style: %w", err)
	}

	// Built-in format 4 is "#,##0.00".
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return workbookStyles{}, fmt.Errorf("failed to create money style: %w", err)
	}

	return workbookStyles{header: header, money: money}, nil
}

// writeRows writes a header row followed by rows. Columns listed in
// moneyCols get the money number format.
func writeRows(f *excelize.File, styles workbookStyles, sheet string, header []any, rows [][]any, moneyCols ...int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, styles.header); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(rows) > 0 {
		for _, col := range moneyCols {
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(rows)+1)
			if err := f.SetCellStyle(sheet, top, bottom, styles.money); err != nil {
				return fmt.Errorf("failed to style %s amounts: %w", sheet, err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(sheet, "A", lastCol, 22)
}

func amount(value decimal.Decimal) float64 {
	return value.Round(2).InexactFloat64()
}

func writeSummary(f *excelize.File, styles workbookStyles, d *dashboard.Dashboard) error {
	period := "All time"
	if d.PeriodStart != nil && d.PeriodEnd != nil {
		period = fmt.Sprintf("%s to %s", d.PeriodStart.Format(dateLayout), d.PeriodEnd.Format(dateLayout))
	}

	rows := [][]any{
		{"Range", d.Range.Label()},
		{"Period", period},
		{"Generated at", d.GeneratedAt.Format(dateLayout)},
		{"Total expenses", amount(d.Expenses.Total)},
		{"Expense count", d.Expenses.TransactionCount},
		{"Average per vehicle", amount(d.Expenses.AveragePerVehicle)},
		{"Sales income", amount(d.Sales.Income)},
		{"Sales count", d.Sales.Count},
		{"Period profit", amount(d.Sales.Profit)},
		{"All-time profit", amount(d.Sales.AllTimeProfit)},
		{"Cash", amount(d.Balances.Cash)},
		{"Bank", amount(d.Balances.Bank)},
		{"Vehicle value", amount(d.Balances.VehicleValue)},
		{"Total assets", amount(d.Balances.TotalAssets)},
		{"Net position", amount(d.Balances.NetPosition)},
		{"Receivables", amount(d.Debts.ReceivableOutstanding)},
		{"Payables", amount(d.Debts.PayableOutstanding)},
		{"Vehicles in stock", d.Inventory.Total - d.Inventory.Sold},
	}
	if err := writeRows(f, styles, SheetSummary, []any{"Metric", "Value"}, rows); err != nil {
		return err
	}

	// Amount rows only; counts and labels keep the general format.
	for i, row := range rows {
		if _, ok := row[1].(float64); !ok {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellStyle(SheetSummary, cell, cell, styles.money); err != nil {
			return fmt.Errorf("failed to style summary amounts: %w", err)
		}
	}
	return nil
}

func writeCategories(f *excelize.File, styles workbookStyles, d *dashboard.Dashboard) error {
	rows := make([][]any, 0, len(d.Expenses.Breakdown))
	for _, stat := range d.Expenses.Breakdown {
		rows = append(rows, []any{stat.Title, amount(stat.Amount), stat.Percent})
	}
	return writeRows(f, styles, SheetCategories, []any{"Category", "Amount", "Percent"}, rows, 2)
}

func writeTrend(f *excelize.File, styles workbookStyles, d *dashboard.Dashboard) error {
	profit := make(map[int64]decimal.Decimal, len(d.Sales.ProfitTrend))
	for _, point := range d.Sales.ProfitTrend {
		profit[point.Date.Unix()] = point.Value
	}

	rows := make([][]any, 0, len(d.Expenses.Trend))
	for _, point := range d.Expenses.Trend {
		row := []any{point.Date.Format(dateLayout), amount(point.Delta), amount(point.Value)}
		if value, ok := profit[point.Date.Unix()]; ok {
			row = append(row, amount(value))
		}
		rows = append(rows, row)
	}
	header := []any{"Bucket", "Expenses", "Cumulative expenses", "Cumulative profit"}
	return writeRows(f, styles, SheetTrend, header, rows, 2, 3, 4)
}

func writeTopVehicles(f *excelize.File, styles workbookStyles, d *dashboard.Dashboard) error {
	rows := make([][]any, 0, len(d.Expenses.TopVehicles))
	for _, vehicle := range d.Expenses.TopVehicles {
		rows = append(rows, []any{vehicle.Title, amount(vehicle.Amount)})
	}
	return writeRows(f, styles, SheetTopVehicles, []any{"Vehicle", "Spent"}, rows, 2)
}
