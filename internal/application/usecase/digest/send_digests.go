// Package digest contains the dashboard digest email use case.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

// digestLineLimit caps the category and vehicle lists in one email.
const digestLineLimit = 3

const defaultDealerName = "Your dealership"

// SendDigestsOutput reports the outcome of one digest batch.
type SendDigestsOutput struct {
	Sent    int
	Skipped int
	Failed  int
}

// SendDigestsUseCase emails every opted-in dealer user a summary of their
// dealership dashboard.
type SendDigestsUseCase struct {
	dealerRepo   adapter.DealerRepository
	getDashboard *dashboard.GetDashboardUseCase
	renderer     adapter.EmailRenderer
	sender       adapter.EmailSender
	timeRange    valueobject.TimeRange
	appBaseURL   string
}

// NewSendDigestsUseCase creates a new SendDigestsUseCase instance.
func NewSendDigestsUseCase(
	dealerRepo adapter.DealerRepository,
	getDashboard *dashboard.GetDashboardUseCase,
	renderer adapter.EmailRenderer,
	sender adapter.EmailSender,
	timeRange valueobject.TimeRange,
	appBaseURL string,
) *SendDigestsUseCase {
	if !timeRange.IsValid() {
		timeRange = valueobject.TimeRangeWeek
	}
	return &SendDigestsUseCase{
		dealerRepo:   dealerRepo,
		getDashboard: getDashboard,
		renderer:     renderer,
		sender:       sender,
		timeRange:    timeRange,
		appBaseURL:   strings.TrimRight(appBaseURL, "/"),
	}
}

// Execute sends one digest per recipient. A failing recipient is logged and
// counted; the rest of the batch still goes out.
func (uc *SendDigestsUseCase) Execute(ctx context.Context) (*SendDigestsOutput, error) {
	recipients, err := uc.dealerRepo.ListDigestRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list digest recipients: %w", err)
	}

	output := &SendDigestsOutput{}
	dashboards := make(map[uuid.UUID]*dashboard.Dashboard)
	dealerNames := make(map[uuid.UUID]string)

	for _, recipient := range recipients {
		if ctx.Err() != nil {
			return output, ctx.Err()
		}

		logger := slog.With("dealerID", recipient.DealerID, "userID", recipient.ID)

		if strings.TrimSpace(recipient.Email) == "" {
			logger.Debug("Skipping digest recipient without email")
			output.Skipped++
			continue
		}

		result, ok := dashboards[recipient.DealerID]
		if !ok {
			computed, err := uc.getDashboard.Execute(ctx, dashboard.GetDashboardInput{
				DealerID: recipient.DealerID,
				Range:    uc.timeRange,
			})
			if err != nil {
				logger.Error("Failed to compute digest dashboard", "error", err)
				output.Failed++
				continue
			}
			result = computed.Dashboard
			dashboards[recipient.DealerID] = result
		}

		name, ok := dealerNames[recipient.DealerID]
		if !ok {
			name = uc.dealerName(ctx, recipient.DealerID)
			dealerNames[recipient.DealerID] = name
		}

		html, text, err := uc.renderer.RenderDigest(BuildTemplateData(recipient, name, result, uc.appBaseURL))
		if err != nil {
			logger.Error("Failed to render digest", "error", err)
			output.Failed++
			continue
		}

		sent, err := uc.sender.Send(ctx, adapter.SendEmailInput{
			To:      recipient.Email,
			Name:    recipient.Name,
			Subject: fmt.Sprintf("%s dashboard: %s", name, uc.timeRange.Label()),
			HTML:    html,
			Text:    text,
		})
		if err != nil {
			logger.Error("Failed to send digest", "error", err)
			output.Failed++
			continue
		}

		logger.Info("Digest sent", "resendID", sent.ResendID)
		output.Sent++
	}

	return output, nil
}

func (uc *SendDigestsUseCase) dealerName(ctx context.Context, dealerID uuid.UUID) string {
	dealer, err := uc.dealerRepo.FindByID(ctx, dealerID)
	if err != nil {
		slog.Warn("Failed to load dealer name for digest", "dealerID", dealerID, "error", err)
		return defaultDealerName
	}
	if dealer == nil || strings.TrimSpace(dealer.Name) == "" {
		return defaultDealerName
	}
	return dealer.Name
}

// BuildTemplateData flattens a dashboard into the digest template fields.
func BuildTemplateData(
	recipient *entity.DealerUser,
	dealerName string,
	d *dashboard.Dashboard,
	appBaseURL string,
) adapter.DigestTemplateData {
	data := adapter.DigestTemplateData{
		RecipientName: recipient.Name,
		DealerName:    dealerName,
		RangeLabel:    d.Range.Label(),
		PeriodLabel:   periodLabel(d),
		TotalExpenses: money(d.Expenses.Total),
		ExpenseChange: changeLabel(d.Expenses.Comparison),
		SalesIncome:   money(d.Sales.Income),
		SalesCount:    d.Sales.Count,
		PeriodProfit:  money(d.Sales.Profit),
		AllTimeProfit: money(d.Sales.AllTimeProfit),
		CashBalance:   money(d.Balances.Cash),
		BankBalance:   money(d.Balances.Bank),
		VehicleValue:  money(d.Balances.VehicleValue),
		NetPosition:   money(d.Balances.NetPosition),
		OverdueDebts:  d.Debts.OverdueCount,
	}
	if appBaseURL != "" {
		data.DashboardURL = fmt.Sprintf("%s/dashboard?range=%s", appBaseURL, d.Range)
	}

	for i, stat := range d.Expenses.Breakdown {
		if i == digestLineLimit {
			break
		}
		data.TopCategories = append(data.TopCategories, adapter.DigestLine{Label: stat.Title, Amount: money(stat.Amount)})
	}
	for _, vehicle := range d.Expenses.TopVehicles {
		data.TopVehicles = append(data.TopVehicles, adapter.DigestLine{Label: vehicle.Title, Amount: money(vehicle.Amount)})
	}

	return data
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func periodLabel(d *dashboard.Dashboard) string {
	if d.PeriodStart == nil || d.PeriodEnd == nil {
		return "All time"
	}
	return fmt.Sprintf("%s to %s", d.PeriodStart.Format("Jan 2, 2006"), d.PeriodEnd.Format("Jan 2, 2006"))
}

func changeLabel(comparison *dashboard.Comparison) string {
	if comparison == nil || comparison.PercentChange == nil {
		return ""
	}
	return fmt.Sprintf("%+.2f%% vs previous period", *comparison.PercentChange)
}
