package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// GetDataRangeInput represents the input for getting data range.
type GetDataRangeInput struct {
	DealerID uuid.UUID
}

// GetDataRangeOutput represents the output of getting data range.
type GetDataRangeOutput struct {
	OldestDate    *time.Time `json:"oldest_date"`
	NewestDate    *time.Time `json:"newest_date"`
	TotalExpenses int        `json:"total_expenses"`
	HasData       bool       `json:"has_data"`
}

// GetDataRangeUseCase handles getting the date range of a dealer's expenses.
type GetDataRangeUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(dashboardRepo DashboardRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute retrieves the date range of the dealer's expenses.
func (uc *GetDataRangeUseCase) Execute(
	ctx context.Context,
	input GetDataRangeInput,
) (*GetDataRangeOutput, error) {
	if input.DealerID == uuid.Nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingDealer,
			domainerror.ErrMissingDealer.Error(),
			domainerror.ErrMissingDealer,
		)
	}

	dateRange, err := uc.dashboardRepo.GetDateRange(ctx, input.DealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	hasData := dateRange.OldestDate != nil && dateRange.NewestDate != nil

	return &GetDataRangeOutput{
		OldestDate:    dateRange.OldestDate,
		NewestDate:    dateRange.NewestDate,
		TotalExpenses: dateRange.TotalExpenses,
		HasData:       hasData,
	}, nil
}
