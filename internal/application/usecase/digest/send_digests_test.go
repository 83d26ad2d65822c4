package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

var digestNow = time.Date(2026, time.May, 10, 7, 0, 0, 0, time.UTC)

type fakeDealerRepository struct {
	recipients []*entity.DealerUser
	dealers    map[uuid.UUID]*entity.Dealer
	listErr    error
}

func (r *fakeDealerRepository) FindByID(_ context.Context, dealerID uuid.UUID) (*entity.Dealer, error) {
	dealer, ok := r.dealers[dealerID]
	if !ok {
		return nil, domainerror.ErrDealerNotFound
	}
	return dealer, nil
}

func (r *fakeDealerRepository) ListDigestRecipients(_ context.Context) ([]*entity.DealerUser, error) {
	return r.recipients, r.listErr
}

type fakeSnapshotRepository struct {
	snapshots map[uuid.UUID]*dashboard.Snapshot
	calls     int
}

func (r *fakeSnapshotRepository) FetchSnapshot(_ context.Context, dealerID uuid.UUID) (*dashboard.Snapshot, error) {
	r.calls++
	snapshot, ok := r.snapshots[dealerID]
	if !ok {
		return nil, errors.New("no such dealer")
	}
	return snapshot, nil
}

func (r *fakeSnapshotRepository) GetDateRange(_ context.Context, _ uuid.UUID) (*dashboard.DateRange, error) {
	return &dashboard.DateRange{}, nil
}

type recordingRenderer struct {
	rendered []adapter.DigestTemplateData
}

func (r *recordingRenderer) RenderDigest(data adapter.DigestTemplateData) (string, string, error) {
	r.rendered = append(r.rendered, data)
	return "<p>" + data.DealerName + "</p>", data.DealerName, nil
}

type recordingSender struct {
	sent    []adapter.SendEmailInput
	failFor string
}

func (s *recordingSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if input.To == s.failFor {
		return nil, errors.New("mailbox unavailable")
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ResendID: "re_" + input.To}, nil
}

func TestSendDigestsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()
	brokenDealerID := uuid.New()

	snapshot := &dashboard.Snapshot{
		Expenses: []*entity.Expense{
			{ID: uuid.New(), Amount: decimal.NewFromInt(120), Category: entity.ExpenseCategoryOffice, Date: digestNow.Add(-24 * time.Hour)},
		},
		Accounts: []*entity.FinancialAccount{{AccountType: "cash", Balance: decimal.NewFromInt(900)}},
	}

	dealers := &fakeDealerRepository{
		recipients: []*entity.DealerUser{
			{ID: uuid.New(), DealerID: dealerID, Name: "Owner", Email: "owner@dealer.test", DigestEnabled: true},
			{ID: uuid.New(), DealerID: dealerID, Name: "No Mail", Email: "  ", DigestEnabled: true},
			{ID: uuid.New(), DealerID: dealerID, Name: "Bounce", Email: "bounce@dealer.test", DigestEnabled: true},
			{ID: uuid.New(), DealerID: dealerID, Name: "Manager", Email: "manager@dealer.test", DigestEnabled: true},
			{ID: uuid.New(), DealerID: brokenDealerID, Name: "Orphan", Email: "orphan@dealer.test", DigestEnabled: true},
		},
		dealers: map[uuid.UUID]*entity.Dealer{dealerID: {ID: dealerID, Name: "Dubai Motors"}},
	}
	snapshots := &fakeSnapshotRepository{snapshots: map[uuid.UUID]*dashboard.Snapshot{dealerID: snapshot}}
	getDashboard := dashboard.NewGetDashboardUseCase(snapshots, nil, time.UTC, dashboard.Options{WeekStart: time.Monday}).
		WithClock(func() time.Time { return digestNow })
	renderer := &recordingRenderer{}
	sender := &recordingSender{failFor: "bounce@dealer.test"}

	uc := NewSendDigestsUseCase(dealers, getDashboard, renderer, sender, valueobject.TimeRangeWeek, "https://app.dealer.test/")

	output, err := uc.Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, output.Sent)
	assert.Equal(t, 1, output.Skipped)
	assert.Equal(t, 2, output.Failed)

	// One snapshot per dealer, the broken dealer included.
	assert.Equal(t, 2, snapshots.calls)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "owner@dealer.test", sender.sent[0].To)
	assert.Equal(t, "Dubai Motors dashboard: Last 7 days", sender.sent[0].Subject)
	assert.Equal(t, "<p>Dubai Motors</p>", sender.sent[0].HTML)

	require.NotEmpty(t, renderer.rendered)
	data := renderer.rendered[0]
	assert.Equal(t, "120.00", data.TotalExpenses)
	assert.Equal(t, "900.00", data.CashBalance)
	assert.Equal(t, "https://app.dealer.test/dashboard?range=week", data.DashboardURL)
	require.Len(t, data.TopCategories, 1)
	assert.Equal(t, "Office", data.TopCategories[0].Label)
}

func TestSendDigestsUseCase_ListFailure(t *testing.T) {
	dealers := &fakeDealerRepository{listErr: errors.New("db down")}
	uc := NewSendDigestsUseCase(dealers, nil, &recordingRenderer{}, &recordingSender{}, valueobject.TimeRangeWeek, "")

	_, err := uc.Execute(context.Background())

	assert.Error(t, err)
}

func TestBuildTemplateData_AllTime(t *testing.T) {
	result := dashboard.ComputeDashboard(dashboard.Snapshot{}, valueobject.TimeRangeAll, digestNow, dashboard.Options{})

	data := BuildTemplateData(&entity.DealerUser{Name: "Sam"}, "Lot 7", result, "")

	assert.Equal(t, "All time", data.PeriodLabel)
	assert.Equal(t, "All time", data.RangeLabel)
	assert.Empty(t, data.ExpenseChange)
	assert.Empty(t, data.DashboardURL)
	assert.Equal(t, "0.00", data.NetPosition)
}

func TestChangeLabel(t *testing.T) {
	up := 12.5
	down := -3.25

	assert.Equal(t, "+12.50% vs previous period", changeLabel(&dashboard.Comparison{PercentChange: &up}))
	assert.Equal(t, "-3.25% vs previous period", changeLabel(&dashboard.Comparison{PercentChange: &down}))
	assert.Empty(t, changeLabel(&dashboard.Comparison{}))
}
