// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
	"github.com/ezcar24/dealer-backend/internal/domain/valueobject"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/dto"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getDashboardUseCase    *dashboard.GetDashboardUseCase
	getDataRangeUseCase    *dashboard.GetDataRangeUseCase
	exportDashboardUseCase *dashboard.ExportDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getDashboardUseCase *dashboard.GetDashboardUseCase,
	getDataRangeUseCase *dashboard.GetDataRangeUseCase,
	exportDashboardUseCase *dashboard.ExportDashboardUseCase,
) *DashboardController {
	return &DashboardController{
		getDashboardUseCase:    getDashboardUseCase,
		getDataRangeUseCase:    getDataRangeUseCase,
		exportDashboardUseCase: exportDashboardUseCase,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	dealerID, ok := middleware.GetDealerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	timeRange, ok := parseRangeQuery(ctx)
	if !ok {
		return
	}

	output, err := c.getDashboardUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardInput{
		DealerID: dealerID,
		Range:    timeRange,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// GetDataRange handles GET /dashboard/data-range requests.
func (c *DashboardController) GetDataRange(ctx *gin.Context) {
	dealerID, ok := middleware.GetDealerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getDataRangeUseCase.Execute(ctx.Request.Context(), dashboard.GetDataRangeInput{
		DealerID: dealerID,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}

// Export handles GET /dashboard/export requests.
func (c *DashboardController) Export(ctx *gin.Context) {
	dealerID, ok := middleware.GetDealerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	timeRange, ok := parseRangeQuery(ctx)
	if !ok {
		return
	}

	output, err := c.exportDashboardUseCase.Execute(ctx.Request.Context(), dashboard.ExportDashboardInput{
		DealerID: dealerID,
		Range:    timeRange,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

func parseRangeQuery(ctx *gin.Context) (valueobject.TimeRange, bool) {
	timeRange, ok := valueobject.ParseTimeRange(ctx.Query("range"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidTimeRange.Error(),
			Code:  string(domainerror.ErrCodeInvalidTimeRange),
		})
		return "", false
	}
	return timeRange, true
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// handleDashboardError maps domain errors to HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	slog.Error("Unhandled dashboard error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// getStatusCodeForDashboardError returns the HTTP status code for a dashboard error code.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTimeRange, domainerror.ErrCodeMissingDealer:
		return http.StatusBadRequest
	case domainerror.ErrCodeSnapshotUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
