package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ProfitOf returns sale amount minus the vehicle's purchase price and expenses.
// A sale without a vehicle has no cost, so its profit is the full amount.
func ProfitOf(sale *entity.Sale) decimal.Decimal {
	if sale.Vehicle == nil {
		return sale.Amount
	}
	return sale.Amount.Sub(sale.Vehicle.TotalCost())
}

// MarginOf returns profit as a percentage of the sale amount, 0 when the amount is not positive.
func MarginOf(sale *entity.Sale) float64 {
	if !sale.Amount.IsPositive() {
		return 0
	}
	margin, _ := ProfitOf(sale).Mul(hundred).Div(sale.Amount).Round(2).Float64()
	return margin
}

// ProfitSummary aggregates sales inside an interval.
type ProfitSummary struct {
	Income decimal.Decimal
	Profit decimal.Decimal
	Count  int
}

// AverageProfit returns Profit / Count, 0 when there were no sales.
func (p ProfitSummary) AverageProfit() decimal.Decimal {
	if p.Count == 0 {
		return decimal.Zero
	}
	return p.Profit.Div(decimal.NewFromInt(int64(p.Count))).Round(2)
}

// SummarizeSales totals income and profit of the sales dated inside interval.
func SummarizeSales(sales []*entity.Sale, interval Interval) ProfitSummary {
	summary := ProfitSummary{Income: decimal.Zero, Profit: decimal.Zero}
	for _, sale := range sales {
		if !interval.Contains(sale.Date) {
			continue
		}
		summary.Income = summary.Income.Add(sale.Amount)
		summary.Profit = summary.Profit.Add(ProfitOf(sale))
		summary.Count++
	}
	return summary
}
