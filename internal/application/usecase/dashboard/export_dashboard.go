package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
)

// XLSXContentType is the media type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkbookRenderer turns a computed dashboard into a spreadsheet file.
type WorkbookRenderer interface {
	Render(d *Dashboard) ([]byte, error)
}

// ExportDashboardInput represents the input for exporting a dashboard.
type ExportDashboardInput struct {
	DealerID uuid.UUID
	Range    valueobject.TimeRange
}

// ExportDashboardOutput holds the rendered workbook.
type ExportDashboardOutput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportDashboardUseCase renders the dealer dashboard as an xlsx workbook.
type ExportDashboardUseCase struct {
	getDashboard *GetDashboardUseCase
	renderer     WorkbookRenderer
}

// NewExportDashboardUseCase creates a new ExportDashboardUseCase instance.
func NewExportDashboardUseCase(getDashboard *GetDashboardUseCase, renderer WorkbookRenderer) *ExportDashboardUseCase {
	return &ExportDashboardUseCase{
		getDashboard: getDashboard,
		renderer:     renderer,
	}
}

// Execute computes the dashboard and renders it.
func (uc *ExportDashboardUseCase) Execute(ctx context.Context, input ExportDashboardInput) (*ExportDashboardOutput, error) {
	output, err := uc.getDashboard.Execute(ctx, GetDashboardInput(input))
	if err != nil {
		return nil, err
	}

	content, err := uc.renderer.Render(output.Dashboard)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeExportFailed,
			domainerror.ErrExportFailed.Error(),
			err,
		)
	}

	return &ExportDashboardOutput{
		Filename:    fmt.Sprintf("dashboard-%s-%s.xlsx", output.Dashboard.Range, output.Dashboard.GeneratedAt.Format("20060102")),
		ContentType: XLSXContentType,
		Content:     content,
	}, nil
}
