package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

// GetDashboardInput represents the input for computing a dealer dashboard.
type GetDashboardInput struct {
	DealerID uuid.UUID
	Range    valueobject.TimeRange
}

// GetDashboardOutput represents the output of computing a dealer dashboard.
type GetDashboardOutput struct {
	Dashboard *Dashboard
}

// GetDashboardUseCase recomputes a dealer's dashboard from a fresh snapshot,
// serving it from the cache when one is configured.
type GetDashboardUseCase struct {
	dashboardRepo DashboardRepository
	cache         DashboardCache
	location      *time.Location
	options       Options
	now           func() time.Time
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
// cache may be nil. A nil location means UTC.
func NewGetDashboardUseCase(
	dashboardRepo DashboardRepository,
	cache DashboardCache,
	location *time.Location,
	options Options,
) *GetDashboardUseCase {
	if location == nil {
		location = time.UTC
	}
	return &GetDashboardUseCase{
		dashboardRepo: dashboardRepo,
		cache:         cache,
		location:      location,
		options:       options,
		now:           time.Now,
	}
}

// WithClock replaces the clock used to anchor ranges.
func (uc *GetDashboardUseCase) WithClock(now func() time.Time) *GetDashboardUseCase {
	uc.now = now
	return uc
}

// Execute computes the dashboard for the requested dealer and range.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	if input.DealerID == uuid.Nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingDealer,
			domainerror.ErrMissingDealer.Error(),
			domainerror.ErrMissingDealer,
		)
	}
	if input.Range == "" {
		input.Range = valueobject.TimeRangeAll
	}
	if !input.Range.IsValid() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidTimeRange,
			domainerror.ErrInvalidTimeRange.Error(),
			domainerror.ErrInvalidTimeRange,
		)
	}

	now := uc.now().In(uc.location)

	loader := func(ctx context.Context) (any, error) {
		return uc.compute(ctx, input, now)
	}

	if uc.cache == nil {
		result, err := uc.compute(ctx, input, now)
		if err != nil {
			return nil, err
		}
		return &GetDashboardOutput{Dashboard: result}, nil
	}

	key, err := uc.cache.BuildKey(ctx, input.DealerID, cacheKeyBase(input.Range, now))
	if err != nil {
		slog.Warn("Dashboard cache unavailable, computing directly",
			"dealerID", input.DealerID, "error", err)
		result, err := uc.compute(ctx, input, now)
		if err != nil {
			return nil, err
		}
		return &GetDashboardOutput{Dashboard: result}, nil
	}

	var result Dashboard
	if err := uc.cache.FetchJSON(ctx, key, &result, loader); err != nil {
		var dashErr *domainerror.DashboardError
		if errors.As(err, &dashErr) {
			return nil, dashErr
		}
		return nil, fmt.Errorf("failed to fetch cached dashboard: %w", err)
	}

	return &GetDashboardOutput{Dashboard: &result}, nil
}

func (uc *GetDashboardUseCase) compute(ctx context.Context, input GetDashboardInput, now time.Time) (*Dashboard, error) {
	snapshot, err := uc.dashboardRepo.FetchSnapshot(ctx, input.DealerID)
	if err != nil {
		slog.Error("Failed to load dashboard snapshot", "dealerID", input.DealerID, "error", err)
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeSnapshotUnavailable,
			domainerror.ErrSnapshotUnavailable.Error(),
			err,
		)
	}
	if snapshot == nil {
		snapshot = &Snapshot{}
	}

	return ComputeDashboard(*snapshot, input.Range, now, uc.options), nil
}

// cacheKeyBase scopes cached dashboards to the local day of now, so a result
// computed before midnight is never served after it.
func cacheKeyBase(r valueobject.TimeRange, now time.Time) string {
	return fmt.Sprintf("dashboard:%s:%s:%s", r, now.Location().String(), StartOfDay(now).Format("20060102"))
}
