package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

// topVehicleLimit is the number of vehicles reported in the spend ranking.
const topVehicleLimit = 3

// summaryCategories are the categories always reported on the dashboard card.
var summaryCategories = []struct {
	key   entity.ExpenseCategory
	title string
}{
	{key: entity.ExpenseCategoryVehicle, title: "Vehicle Expenses"},
	{key: entity.ExpenseCategoryPersonal, title: "Personal Expenses"},
	{key: entity.ExpenseCategoryEmployee, title: "Employee Expenses"},
}

// CategoryStat is one category's share of total expenses.
type CategoryStat struct {
	Key     string          `json:"key"`
	Title   string          `json:"title"`
	Amount  decimal.Decimal `json:"amount"`
	Percent float64         `json:"percent"`
}

// VehicleSpendStat is the amount spent on a single vehicle.
type VehicleSpendStat struct {
	VehicleID uuid.UUID       `json:"vehicle_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
}

// ExpenseAggregate holds expense figures for one interval.
type ExpenseAggregate struct {
	Total              decimal.Decimal    `json:"total"`
	TransactionCount   int                `json:"transaction_count"`
	UniqueVehicleCount int                `json:"unique_vehicle_count"`
	AveragePerVehicle  decimal.Decimal    `json:"average_per_vehicle"`
	ByCategory         []CategoryStat     `json:"by_category"`
	Breakdown          []CategoryStat     `json:"breakdown"`
	TopVehicles        []VehicleSpendStat `json:"top_vehicles"`
}

// FilterExpenses returns the expenses dated inside interval, preserving order.
func FilterExpenses(expenses []*entity.Expense, interval Interval) []*entity.Expense {
	filtered := make([]*entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if interval.Contains(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SumExpenses totals the amounts of expenses dated inside interval.
func SumExpenses(expenses []*entity.Expense, interval Interval) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if interval.Contains(e.Date) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// AggregateExpenses computes totals, category shares and the top vehicles for
// the expenses inside interval. vehicles is used only to title the ranking.
func AggregateExpenses(expenses []*entity.Expense, vehicles []*entity.Vehicle, interval Interval) ExpenseAggregate {
	filtered := FilterExpenses(expenses, interval)

	total := decimal.Zero
	byCategory := make(map[entity.ExpenseCategory]decimal.Decimal)
	byVehicle := make(map[uuid.UUID]decimal.Decimal)

	for _, e := range filtered {
		total = total.Add(e.Amount)

		category := e.Category.Normalize()
		byCategory[category] = byCategory[category].Add(e.Amount)

		if e.VehicleID != nil {
			byVehicle[*e.VehicleID] = byVehicle[*e.VehicleID].Add(e.Amount)
		}
	}

	average := decimal.Zero
	if len(byVehicle) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(byVehicle)))).Round(2)
	}

	return ExpenseAggregate{
		Total:              total,
		TransactionCount:   len(filtered),
		UniqueVehicleCount: len(byVehicle),
		AveragePerVehicle:  average,
		ByCategory:         summaryCategoryStats(byCategory, total),
		Breakdown:          categoryBreakdown(byCategory, total),
		TopVehicles:        topVehicles(byVehicle, vehicles),
	}
}

// summaryCategoryStats reports the fixed card categories, zero amounts
// included, once there is any spending in the period.
func summaryCategoryStats(amounts map[entity.ExpenseCategory]decimal.Decimal, total decimal.Decimal) []CategoryStat {
	stats := make([]CategoryStat, 0, len(summaryCategories))
	if total.IsZero() {
		return stats
	}
	for _, c := range summaryCategories {
		amount := amounts[c.key]
		stats = append(stats, CategoryStat{
			Key:     string(c.key),
			Title:   c.title,
			Amount:  amount,
			Percent: percentOf(amount, total),
		})
	}
	sortStatsByAmount(stats)
	return stats
}

// categoryBreakdown covers every category with spending, so amounts add up to total.
func categoryBreakdown(amounts map[entity.ExpenseCategory]decimal.Decimal, total decimal.Decimal) []CategoryStat {
	caser := cases.Title(language.English)

	stats := make([]CategoryStat, 0, len(amounts))
	for _, category := range entity.ExpenseCategories {
		amount, ok := amounts[category]
		if !ok || amount.IsZero() {
			continue
		}
		stats = append(stats, CategoryStat{
			Key:     string(category),
			Title:   caser.String(strings.ReplaceAll(string(category), "_", " ")),
			Amount:  amount,
			Percent: percentOf(amount, total),
		})
	}
	sortStatsByAmount(stats)
	return stats
}

func sortStatsByAmount(stats []CategoryStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Amount.GreaterThan(stats[j].Amount)
	})
}

func topVehicles(amounts map[uuid.UUID]decimal.Decimal, vehicles []*entity.Vehicle) []VehicleSpendStat {
	titles := make(map[uuid.UUID]string, len(vehicles))
	for _, v := range vehicles {
		titles[v.ID] = v.DisplayName()
	}

	stats := make([]VehicleSpendStat, 0, len(amounts))
	for id, amount := range amounts {
		title, ok := titles[id]
		if !ok {
			title = entity.UnnamedVehicleTitle
		}
		stats = append(stats, VehicleSpendStat{VehicleID: id, Title: title, Amount: amount})
	}

	// Map iteration order is random, so ties are broken by title and id.
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Amount.Equal(stats[j].Amount) {
			return stats[i].Amount.GreaterThan(stats[j].Amount)
		}
		if stats[i].Title != stats[j].Title {
			return stats[i].Title < stats[j].Title
		}
		return stats[i].VehicleID.String() < stats[j].VehicleID.String()
	})

	if len(stats) > topVehicleLimit {
		stats = stats[:topVehicleLimit]
	}
	return stats
}

// percentOf returns amount / total * 100 rounded to two places, 0 when total is 0.
func percentOf(amount, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := amount.Mul(hundred).Div(total).Round(2).Float64()
	return pct
}

// InventoryStats counts vehicles per status over the whole inventory.
type InventoryStats struct {
	Owned             int             `json:"owned"`
	OnSale            int             `json:"on_sale"`
	Sold              int             `json:"sold"`
	InTransit         int             `json:"in_transit"`
	UnderService      int             `json:"under_service"`
	Total             int             `json:"total"`
	TotalVehicleValue decimal.Decimal `json:"total_vehicle_value"`
}

// CountInventory tallies statuses and the asset value of unsold vehicles.
// It is not windowed by date.
func CountInventory(vehicles []*entity.Vehicle) InventoryStats {
	stats := InventoryStats{TotalVehicleValue: decimal.Zero}

	for _, v := range vehicles {
		stats.Total++
		switch v.Status.Normalize() {
		case entity.VehicleStatusOwned:
			stats.Owned++
		case entity.VehicleStatusOnSale:
			stats.OnSale++
		case entity.VehicleStatusSold:
			stats.Sold++
		case entity.VehicleStatusInTransit:
			stats.InTransit++
		case entity.VehicleStatusUnderService:
			stats.UnderService++
		}

		if !v.IsSold() {
			stats.TotalVehicleValue = stats.TotalVehicleValue.Add(v.AssetValue())
		}
	}

	return stats
}

// AccountTotals sums balances per account type.
type AccountTotals struct {
	Cash decimal.Decimal
	Bank decimal.Decimal
}

// SumAccounts totals cash and bank balances. Other account types are ignored.
func SumAccounts(accounts []*entity.FinancialAccount) AccountTotals {
	totals := AccountTotals{Cash: decimal.Zero, Bank: decimal.Zero}
	for _, a := range accounts {
		switch {
		case a.IsType(entity.AccountTypeCash):
			totals.Cash = totals.Cash.Add(a.Balance)
		case a.IsType(entity.AccountTypeBank):
			totals.Bank = totals.Bank.Add(a.Balance)
		}
	}
	return totals
}

// DebtSummary totals open receivables and payables.
type DebtSummary struct {
	ReceivableOutstanding decimal.Decimal `json:"receivable_outstanding"`
	PayableOutstanding    decimal.Decimal `json:"payable_outstanding"`
	OpenCount             int             `json:"open_count"`
	OverdueCount          int             `json:"overdue_count"`
}

// SummarizeDebts totals outstanding amounts of unpaid debts as of now.
func SummarizeDebts(debts []*entity.Debt, now time.Time) DebtSummary {
	summary := DebtSummary{ReceivableOutstanding: decimal.Zero, PayableOutstanding: decimal.Zero}

	for _, d := range debts {
		if d.IsPaid() {
			continue
		}
		summary.OpenCount++
		if d.IsOverdue(now) {
			summary.OverdueCount++
		}

		switch d.Direction {
		case entity.DebtDirectionOwedToMe:
			summary.ReceivableOutstanding = summary.ReceivableOutstanding.Add(d.Outstanding())
		case entity.DebtDirectionIOwe:
			summary.PayableOutstanding = summary.PayableOutstanding.Add(d.Outstanding())
		}
	}

	return summary
}
