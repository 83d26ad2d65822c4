package dto

import (
	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
)

// DashboardResponse represents the response for the dashboard API.
// Amounts are encoded as decimal strings.
type DashboardResponse struct {
	Data *dashboard.Dashboard `json:"data"`
}

// DataRangeResponse represents the response for the data range API.
type DataRangeResponse struct {
	OldestDate    *string `json:"oldest_date"`
	NewestDate    *string `json:"newest_date"`
	TotalExpenses int     `json:"total_expenses"`
	HasData       bool    `json:"has_data"`
}

// ToDashboardResponse converts a GetDashboardOutput to DashboardResponse DTO.
func ToDashboardResponse(output *dashboard.GetDashboardOutput) DashboardResponse {
	return DashboardResponse{Data: output.Dashboard}
}

// ToDataRangeResponse converts a GetDataRangeOutput to DataRangeResponse DTO.
func ToDataRangeResponse(output *dashboard.GetDataRangeOutput) DataRangeResponse {
	response := DataRangeResponse{
		TotalExpenses: output.TotalExpenses,
		HasData:       output.HasData,
	}

	if output.OldestDate != nil {
		oldest := output.OldestDate.Format("2006-01-02")
		response.OldestDate = &oldest
	}
	if output.NewestDate != nil {
		newest := output.NewestDate.Format("2006-01-02")
		response.NewestDate = &newest
	}

	return response
}
