package error

import "errors"

// Ledger domain errors.
var (
	// ErrNonPositiveAmount is returned when an amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// ErrInvalidTransactionType is returned for an unknown account transaction type.
	ErrInvalidTransactionType = errors.New("type must be: deposit or withdrawal")

	// ErrInvalidExpenseCategory is returned for a category outside the closed set.
	ErrInvalidExpenseCategory = errors.New("category must be: vehicle, personal, employee, marketing, office, or other")

	// ErrMissingDate is returned when a record has no date.
	ErrMissingDate = errors.New("date is required")

	// ErrExpenseNotFound is returned when an expense does not exist for the dealer.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrSaleNotFound is returned when a sale does not exist for the dealer.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrAccountNotFound is returned when a financial account does not exist for the dealer.
	ErrAccountNotFound = errors.New("account not found")

	// ErrVehicleNotFound is returned when a vehicle does not exist for the dealer.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrDebtNotFound is returned when a debt does not exist for the dealer.
	ErrDebtNotFound = errors.New("debt not found")

	// ErrAccountTransactionNotFound is returned when an account transaction does not exist.
	ErrAccountTransactionNotFound = errors.New("account transaction not found")

	// ErrDebtPaymentNotFound is returned when a debt payment does not exist.
	ErrDebtPaymentNotFound = errors.New("debt payment not found")

	// ErrVehicleAlreadySold is returned when recording a sale for a sold vehicle.
	ErrVehicleAlreadySold = errors.New("vehicle is already sold")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNonPositiveAmount      LedgerErrorCode = "LDG-010001"
	ErrCodeInvalidTransactionType LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidCategory        LedgerErrorCode = "LDG-010003"
	ErrCodeMissingDate            LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidLedgerID        LedgerErrorCode = "LDG-010005"
	ErrCodeInvalidLedgerRequest   LedgerErrorCode = "LDG-010006"
	ErrCodeInvalidDateFormat      LedgerErrorCode = "LDG-010007"

	// Not found errors (02XXXX)
	ErrCodeExpenseNotFound            LedgerErrorCode = "LDG-020001"
	ErrCodeSaleNotFound               LedgerErrorCode = "LDG-020002"
	ErrCodeAccountNotFound            LedgerErrorCode = "LDG-020003"
	ErrCodeVehicleNotFound            LedgerErrorCode = "LDG-020004"
	ErrCodeDebtNotFound               LedgerErrorCode = "LDG-020005"
	ErrCodeAccountTransactionNotFound LedgerErrorCode = "LDG-020006"
	ErrCodeDebtPaymentNotFound        LedgerErrorCode = "LDG-020007"

	// Conflict errors (03XXXX)
	ErrCodeVehicleAlreadySold LedgerErrorCode = "LDG-030001"

	// Internal errors (99XXXX)
	ErrCodeLedgerInternalError LedgerErrorCode = "LDG-990001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
