package dashboard

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

// DefaultRecentLimit is used when Options.RecentLimit is not positive.
const DefaultRecentLimit = 10

// Snapshot is the dealer's record set for one computation pass.
// It is read, never modified.
type Snapshot struct {
	Expenses []*entity.Expense
	Vehicles []*entity.Vehicle
	Sales    []*entity.Sale
	Accounts []*entity.FinancialAccount
	Debts    []*entity.Debt
}

// Options tunes calendar and listing behaviour of ComputeDashboard.
type Options struct {
	WeekStart   time.Weekday
	RecentLimit int
}

// Balances summarises what the dealer holds.
type Balances struct {
	Cash         decimal.Decimal `json:"cash"`
	Bank         decimal.Decimal `json:"bank"`
	VehicleValue decimal.Decimal `json:"vehicle_value"`
	TotalAssets  decimal.Decimal `json:"total_assets"`
	NetPosition  decimal.Decimal `json:"net_position"`
}

// ExpenseItem is an expense as listed on the dashboard.
type ExpenseItem struct {
	ID           uuid.UUID       `json:"id"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	VehicleID    *uuid.UUID      `json:"vehicle_id,omitempty"`
	VehicleTitle string          `json:"vehicle_title,omitempty"`
}

// SaleItem is a sale as listed on the dashboard.
type SaleItem struct {
	ID           uuid.UUID       `json:"id"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Profit       decimal.Decimal `json:"profit"`
	Margin       float64         `json:"margin"`
	BuyerName    string          `json:"buyer_name"`
	VehicleID    *uuid.UUID      `json:"vehicle_id,omitempty"`
	VehicleTitle string          `json:"vehicle_title,omitempty"`
}

// ExpenseSection groups the expense figures of a dashboard.
type ExpenseSection struct {
	ExpenseAggregate
	Trend      []TrendPoint    `json:"trend"`
	Comparison *Comparison     `json:"comparison"`
	TodayTotal decimal.Decimal `json:"today_total"`
	Today      []ExpenseItem   `json:"today"`
	Recent     []ExpenseItem   `json:"recent"`
}

// SalesSection groups the sales and profit figures of a dashboard.
type SalesSection struct {
	Income        decimal.Decimal `json:"income"`
	Count         int             `json:"count"`
	Profit        decimal.Decimal `json:"profit"`
	AverageProfit decimal.Decimal `json:"average_profit"`
	AllTimeProfit decimal.Decimal `json:"all_time_profit"`
	AllTimeCount  int             `json:"all_time_count"`
	ProfitTrend   []TrendPoint    `json:"profit_trend"`
	Comparison    *Comparison     `json:"comparison"`
	Items         []SaleItem      `json:"items"`
}

// Dashboard is the computed result for one dealer and range.
type Dashboard struct {
	Range       valueobject.TimeRange `json:"range"`
	GeneratedAt time.Time             `json:"generated_at"`
	PeriodStart *time.Time            `json:"period_start"`
	PeriodEnd   *time.Time            `json:"period_end"`
	Balances    Balances              `json:"balances"`
	Inventory   InventoryStats        `json:"inventory"`
	Expenses    ExpenseSection        `json:"expenses"`
	Sales       SalesSection          `json:"sales"`
	Debts       DebtSummary           `json:"debts"`
}

// ComputeDashboard runs the whole aggregation over snapshot for r at now.
// Day boundaries follow now's location. It never fails: missing data yields
// zero totals, empty slices and nil comparisons.
func ComputeDashboard(snapshot Snapshot, r valueobject.TimeRange, now time.Time, opts Options) *Dashboard {
	if !r.IsValid() {
		r = valueobject.TimeRangeAll
	}

	interval := Resolve(r, now).Materialize(now)
	titles := vehicleTitles(snapshot.Vehicles)

	inventory := CountInventory(snapshot.Vehicles)
	accounts := SumAccounts(snapshot.Accounts)
	debts := SummarizeDebts(snapshot.Debts, now)

	totalAssets := accounts.Cash.Add(accounts.Bank).Add(inventory.TotalVehicleValue)
	balances := Balances{
		Cash:         accounts.Cash,
		Bank:         accounts.Bank,
		VehicleValue: inventory.TotalVehicleValue,
		TotalAssets:  totalAssets,
		NetPosition:  totalAssets.Add(debts.ReceivableOutstanding).Sub(debts.PayableOutstanding),
	}

	aggregate := AggregateExpenses(snapshot.Expenses, snapshot.Vehicles, interval)
	periodExpenses := FilterExpenses(snapshot.Expenses, interval)

	todayInterval := Resolve(valueobject.TimeRangeToday, now)
	todayExpenses := FilterExpenses(snapshot.Expenses, todayInterval)
	sortExpensesNewestFirst(todayExpenses)

	periodSales := filterSales(snapshot.Sales, interval)
	sales := SummarizeSales(snapshot.Sales, interval)
	allTime := SummarizeSales(snapshot.Sales, Interval{})

	var expenseComparison, salesComparison *Comparison
	if previous, ok := PreviousInterval(interval); ok {
		expenseComparison = CompareTotals(aggregate.Total, SumExpenses(snapshot.Expenses, previous))
		salesComparison = CompareSales(sales, SummarizeSales(snapshot.Sales, previous))
	}

	return &Dashboard{
		Range:       r,
		GeneratedAt: now,
		PeriodStart: interval.Start,
		PeriodEnd:   interval.End,
		Balances:    balances,
		Inventory:   inventory,
		Expenses: ExpenseSection{
			ExpenseAggregate: aggregate,
			Trend:            BuildTrend(ExpenseSamples(periodExpenses), r, now, opts.WeekStart),
			Comparison:       expenseComparison,
			TodayTotal:       SumExpenses(todayExpenses, todayInterval),
			Today:            expenseItems(todayExpenses, titles, 0),
			Recent:           expenseItems(recentExpenses(snapshot.Expenses), titles, recentLimit(opts)),
		},
		Sales: SalesSection{
			Income:        sales.Income,
			Count:         sales.Count,
			Profit:        sales.Profit,
			AverageProfit: sales.AverageProfit(),
			AllTimeProfit: allTime.Profit,
			AllTimeCount:  allTime.Count,
			ProfitTrend:   BuildTrend(ProfitSamples(periodSales), r, now, opts.WeekStart),
			Comparison:    salesComparison,
			Items:         saleItems(periodSales, titles),
		},
		Debts: debts,
	}
}

func recentLimit(opts Options) int {
	if opts.RecentLimit > 0 {
		return opts.RecentLimit
	}
	return DefaultRecentLimit
}

func vehicleTitles(vehicles []*entity.Vehicle) map[uuid.UUID]string {
	titles := make(map[uuid.UUID]string, len(vehicles))
	for _, v := range vehicles {
		titles[v.ID] = v.DisplayName()
	}
	return titles
}

func filterSales(sales []*entity.Sale, interval Interval) []*entity.Sale {
	filtered := make([]*entity.Sale, 0, len(sales))
	for _, s := range sales {
		if interval.Contains(s.Date) {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	return filtered
}

// recentExpenses returns a newest-first copy of expenses.
func recentExpenses(expenses []*entity.Expense) []*entity.Expense {
	sorted := make([]*entity.Expense, len(expenses))
	copy(sorted, expenses)
	sortExpensesNewestFirst(sorted)
	return sorted
}

func sortExpensesNewestFirst(expenses []*entity.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
}

// expenseItems converts expenses to list items; limit <= 0 means no limit.
func expenseItems(expenses []*entity.Expense, titles map[uuid.UUID]string, limit int) []ExpenseItem {
	if limit > 0 && len(expenses) > limit {
		expenses = expenses[:limit]
	}

	items := make([]ExpenseItem, 0, len(expenses))
	for _, e := range expenses {
		item := ExpenseItem{
			ID:          e.ID,
			Date:        e.Date,
			Amount:      e.Amount,
			Category:    string(e.Category.Normalize()),
			Description: e.Description,
			VehicleID:   e.VehicleID,
		}
		if e.VehicleID != nil {
			item.VehicleTitle = vehicleTitle(titles, *e.VehicleID)
		}
		items = append(items, item)
	}
	return items
}

func saleItems(sales []*entity.Sale, titles map[uuid.UUID]string) []SaleItem {
	items := make([]SaleItem, 0, len(sales))
	for _, s := range sales {
		item := SaleItem{
			ID:        s.ID,
			Date:      s.Date,
			Amount:    s.Amount,
			Profit:    ProfitOf(s),
			Margin:    MarginOf(s),
			BuyerName: s.BuyerName,
			VehicleID: s.VehicleID,
		}
		switch {
		case s.Vehicle != nil:
			item.VehicleTitle = s.Vehicle.DisplayName()
		case s.VehicleID != nil:
			item.VehicleTitle = vehicleTitle(titles, *s.VehicleID)
		}
		items = append(items, item)
	}
	return items
}

func vehicleTitle(titles map[uuid.UUID]string, id uuid.UUID) string {
	if title, ok := titles[id]; ok {
		return title
	}
	return entity.UnnamedVehicleTitle
}
