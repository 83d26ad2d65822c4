package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidTimeRange is returned when the requested range is not supported.
	ErrInvalidTimeRange = errors.New("range must be: today, week, month, three_months, six_months, or all")

	// ErrMissingDealer is returned when a dashboard is requested without a dealer.
	ErrMissingDealer = errors.New("dealer_id is required")

	// ErrDealerNotFound is returned when a dealership does not exist.
	ErrDealerNotFound = errors.New("dealer not found")

	// ErrSnapshotUnavailable is returned when dealer records could not be loaded.
	ErrSnapshotUnavailable = errors.New("dashboard records unavailable")

	// ErrExportFailed is returned when the dashboard workbook cannot be produced.
	ErrExportFailed = errors.New("failed to export dashboard")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTimeRange DashboardErrorCode = "DSH-010001"
	ErrCodeMissingDealer    DashboardErrorCode = "DSH-010002"

	// Data errors (02XXXX)
	ErrCodeSnapshotUnavailable DashboardErrorCode = "DSH-020001"
	ErrCodeExportFailed        DashboardErrorCode = "DSH-020002"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
