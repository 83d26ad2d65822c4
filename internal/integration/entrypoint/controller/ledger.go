package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/application/usecase/ledger"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/dto"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/middleware"
)

const dateOnlyLayout = "2006-01-02"

// LedgerController handles the expense, sale, account and debt write endpoints.
type LedgerController struct {
	recordExpenseUseCase            *ledger.RecordExpenseUseCase
	updateExpenseUseCase            *ledger.UpdateExpenseUseCase
	deleteExpenseUseCase            *ledger.DeleteExpenseUseCase
	recordSaleUseCase               *ledger.RecordSaleUseCase
	deleteSaleUseCase               *ledger.DeleteSaleUseCase
	recordAccountTransactionUseCase *ledger.RecordAccountTransactionUseCase
	deleteAccountTransactionUseCase *ledger.DeleteAccountTransactionUseCase
	recordDebtPaymentUseCase        *ledger.RecordDebtPaymentUseCase
	deleteDebtPaymentUseCase        *ledger.DeleteDebtPaymentUseCase
	location                        *time.Location
}

// LedgerUseCases groups the use cases served by the ledger controller.
type LedgerUseCases struct {
	RecordExpense            *ledger.RecordExpenseUseCase
	UpdateExpense            *ledger.UpdateExpenseUseCase
	DeleteExpense            *ledger.DeleteExpenseUseCase
	RecordSale               *ledger.RecordSaleUseCase
	DeleteSale               *ledger.DeleteSaleUseCase
	RecordAccountTransaction *ledger.RecordAccountTransactionUseCase
	DeleteAccountTransaction *ledger.DeleteAccountTransactionUseCase
	RecordDebtPayment        *ledger.RecordDebtPaymentUseCase
	DeleteDebtPayment        *ledger.DeleteDebtPaymentUseCase
}

// NewLedgerController creates a new ledger controller instance.
// Date-only request values are read in the given location.
func NewLedgerController(useCases LedgerUseCases, location *time.Location) *LedgerController {
	if location == nil {
		location = time.UTC
	}
	return &LedgerController{
		recordExpenseUseCase:            useCases.RecordExpense,
		updateExpenseUseCase:            useCases.UpdateExpense,
		deleteExpenseUseCase:            useCases.DeleteExpense,
		recordSaleUseCase:               useCases.RecordSale,
		deleteSaleUseCase:               useCases.DeleteSale,
		recordAccountTransactionUseCase: useCases.RecordAccountTransaction,
		deleteAccountTransactionUseCase: useCases.DeleteAccountTransaction,
		recordDebtPaymentUseCase:        useCases.RecordDebtPayment,
		deleteDebtPaymentUseCase:        useCases.DeleteDebtPayment,
		location:                        location,
	}
}

// CreateExpense handles POST /expenses requests.
func (c *LedgerController) CreateExpense(ctx *gin.Context) {
	dealerID, userID, ok := requireDealer(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if !bindLedgerRequest(ctx, &req) {
		return
	}

	date, ok := c.parseDate(ctx, req.Date)
	if !ok {
		return
	}
	vehicleID, ok := parseOptionalID(ctx, req.VehicleID, "vehicle_id")
	if !ok {
		return
	}
	accountID, ok := parseOptionalID(ctx, req.AccountID, "account_id")
	if !ok {
		return
	}

	output, err := c.recordExpenseUseCase.Execute(ctx.Request.Context(), ledger.RecordExpenseInput{
		DealerID:    dealerID,
		Date:        date,
		Amount:      req.Amount,
		Category:    entity.ExpenseCategory(req.Category),
		Description: req.Description,
		VehicleID:   vehicleID,
		UserID:      userID,
		AccountID:   accountID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// UpdateExpense handles PATCH /expenses/:id requests.
func (c *LedgerController) UpdateExpense(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	expenseID, ok := parsePathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !bindLedgerRequest(ctx, &req) {
		return
	}

	input := ledger.UpdateExpenseInput{
		DealerID:    dealerID,
		ExpenseID:   expenseID,
		Amount:      req.Amount,
		Description: req.Description,
	}

	if req.Date != nil {
		date, ok := c.parseDate(ctx, *req.Date)
		if !ok {
			return
		}
		input.Date = &date
	}
	if req.Category != nil {
		category := entity.ExpenseCategory(*req.Category)
		input.Category = &category
	}
	if req.VehicleID != nil {
		if strings.TrimSpace(*req.VehicleID) == "" {
			input.ClearVehicle = true
		} else if input.VehicleID, ok = parseOptionalID(ctx, req.VehicleID, "vehicle_id"); !ok {
			return
		}
	}
	if req.AccountID != nil {
		if strings.TrimSpace(*req.AccountID) == "" {
			input.ClearAccount = true
		} else if input.AccountID, ok = parseOptionalID(ctx, req.AccountID, "account_id"); !ok {
			return
		}
	}

	output, err := c.updateExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// DeleteExpense handles DELETE /expenses/:id requests.
func (c *LedgerController) DeleteExpense(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	expenseID, ok := parsePathID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.deleteExpenseUseCase.Execute(ctx.Request.Context(), ledger.DeleteExpenseInput{
		DealerID:  dealerID,
		ExpenseID: expenseID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{Success: output.Success})
}

// CreateSale handles POST /sales requests.
func (c *LedgerController) CreateSale(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if !bindLedgerRequest(ctx, &req) {
		return
	}

	date, ok := c.parseDate(ctx, req.Date)
	if !ok {
		return
	}
	vehicleID, ok := parseOptionalID(ctx, req.VehicleID, "vehicle_id")
	if !ok {
		return
	}
	accountID, ok := parseOptionalID(ctx, req.AccountID, "account_id")
	if !ok {
		return
	}

	output, err := c.recordSaleUseCase.Execute(ctx.Request.Context(), ledger.RecordSaleInput{
		DealerID:      dealerID,
		VehicleID:     vehicleID,
		Amount:        req.Amount,
		Date:          date,
		BuyerName:     req.BuyerName,
		BuyerPhone:    req.BuyerPhone,
		PaymentMethod: req.PaymentMethod,
		AccountID:     accountID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(output.Sale))
}

// DeleteSale handles DELETE /sales/:id requests.
func (c *LedgerController) DeleteSale(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	saleID, ok := parsePathID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.deleteSaleUseCase.Execute(ctx.Request.Context(), ledger.DeleteSaleInput{
		DealerID: dealerID,
		SaleID:   saleID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{Success: output.Success})
}

// CreateAccountTransaction handles POST /accounts/:id/transactions requests.
func (c *LedgerController) CreateAccountTransaction(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	accountID, ok := parsePathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAccountTransactionRequest
	if !bindLedgerRequest(ctx, &req) {
		return
	}

	date, ok := c.parseDate(ctx, req.Date)
	if !ok {
		return
	}

	output, err := c.recordAccountTransactionUseCase.Execute(ctx.Request.Context(), ledger.RecordAccountTransactionInput{
		DealerID:  dealerID,
		AccountID: accountID,
		Type:      entity.AccountTransactionType(req.Type),
		Amount:    req.Amount,
		Date:      date,
		Note:      req.Note,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountTransactionResponse(output.Transaction, output.Balance))
}

// DeleteAccountTransaction handles DELETE /accounts/:id/transactions/:transactionId requests.
func (c *LedgerController) DeleteAccountTransaction(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	accountID, ok := parsePathID(ctx, "id")
	if !ok {
		return
	}
	transactionID, ok := parsePathID(ctx, "transactionId")
	if !ok {
		return
	}

	output, err := c.deleteAccountTransactionUseCase.Execute(ctx.Request.Context(), ledger.DeleteAccountTransactionInput{
		DealerID:      dealerID,
		AccountID:     accountID,
		TransactionID: transactionID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{Success: output.Success})
}

// CreateDebtPayment handles POST /debts/:id/payments requests.
func (c *LedgerController) CreateDebtPayment(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	debtID, ok := parsePathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateDebtPaymentRequest
	if !bindLedgerRequest(ctx, &req) {
		return
	}

	date, ok := c.parseDate(ctx, req.Date)
	if !ok {
		return
	}
	accountID, ok := parseOptionalID(ctx, req.AccountID, "account_id")
	if !ok {
		return
	}

	output, err := c.recordDebtPaymentUseCase.Execute(ctx.Request.Context(), ledger.RecordDebtPaymentInput{
		DealerID:  dealerID,
		DebtID:    debtID,
		Amount:    req.Amount,
		Date:      date,
		AccountID: accountID,
		Note:      req.Note,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDebtPaymentResponse(output.Payment, output.Outstanding))
}

// DeleteDebtPayment handles DELETE /debts/:id/payments/:paymentId requests.
func (c *LedgerController) DeleteDebtPayment(ctx *gin.Context) {
	dealerID, _, ok := requireDealer(ctx)
	if !ok {
		return
	}

	debtID, ok := parsePathID(ctx, "id")
	if !ok {
		return
	}
	paymentID, ok := parsePathID(ctx, "paymentId")
	if !ok {
		return
	}

	output, err := c.deleteDebtPaymentUseCase.Execute(ctx.Request.Context(), ledger.DeleteDebtPaymentInput{
		DealerID:  dealerID,
		DebtID:    debtID,
		PaymentID: paymentID,
	})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{Success: output.Success})
}

// requireDealer reads the dealer scope and acting user set by the auth middleware.
func requireDealer(ctx *gin.Context) (uuid.UUID, *uuid.UUID, bool) {
	dealerID, ok := middleware.GetDealerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return uuid.Nil, nil, false
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserIDFromContext(ctx); ok {
		userID = &id
	}
	return dealerID, userID, true
}

func bindLedgerRequest(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidLedgerRequest),
			Details: err.Error(),
		})
		return false
	}
	return true
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func (c *LedgerController) parseDate(ctx *gin.Context, value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if date, err := time.ParseInLocation(dateOnlyLayout, value, c.location); err == nil {
		return date, true
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date.In(c.location), true
	}

	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid date format, expected YYYY-MM-DD or RFC 3339",
		Code:  string(domainerror.ErrCodeInvalidDateFormat),
	})
	return time.Time{}, false
}

func parsePathID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		respondInvalidID(ctx, param)
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalID parses an optional identifier; nil or blank yields nil.
func parseOptionalID(ctx *gin.Context, value *string, field string) (*uuid.UUID, bool) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, true
	}
	id, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		respondInvalidID(ctx, field)
		return nil, false
	}
	return &id, true
}

func respondInvalidID(ctx *gin.Context, field string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid " + field + " format",
		Code:  string(domainerror.ErrCodeInvalidLedgerID),
	})
}

// handleLedgerError maps domain errors to HTTP responses.
func (c *LedgerController) handleLedgerError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(getStatusCodeForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	slog.Error("Unhandled ledger error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeLedgerInternalError),
	})
}

// getStatusCodeForLedgerError returns the HTTP status code for a ledger error code.
func getStatusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeNonPositiveAmount,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeMissingDate,
		domainerror.ErrCodeInvalidLedgerID,
		domainerror.ErrCodeInvalidLedgerRequest,
		domainerror.ErrCodeInvalidDateFormat:
		return http.StatusBadRequest
	case domainerror.ErrCodeExpenseNotFound,
		domainerror.ErrCodeSaleNotFound,
		domainerror.ErrCodeAccountNotFound,
		domainerror.ErrCodeVehicleNotFound,
		domainerror.ErrCodeDebtNotFound,
		domainerror.ErrCodeAccountTransactionNotFound,
		domainerror.ErrCodeDebtPaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeVehicleAlreadySold:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
