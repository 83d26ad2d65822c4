package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
	"github.com/ezcar24/dealer-backend/internal/application/usecase/ledger"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/dto"
	"github.com/ezcar24/dealer-backend/internal/integration/entrypoint/middleware"
	"github.com/ezcar24/dealer-backend/internal/integration/persistence"
	"github.com/ezcar24/dealer-backend/internal/integration/persistence/model"
	"github.com/ezcar24/dealer-backend/internal/integration/report"
)

var controllerNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	db       *gorm.DB
	router   *gin.Engine
	dealerID uuid.UUID
}

func newTestServer(t *testing.T, authenticated bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	dashboardRepo := persistence.NewDashboardRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)

	getDashboard := dashboard.NewGetDashboardUseCase(dashboardRepo, nil, time.UTC, dashboard.Options{WeekStart: time.Monday}).
		WithClock(func() time.Time { return controllerNow })
	dashboardController := NewDashboardController(
		getDashboard,
		dashboard.NewGetDataRangeUseCase(dashboardRepo),
		dashboard.NewExportDashboardUseCase(getDashboard, report.NewDashboardWorkbook()),
	)
	ledgerController := NewLedgerController(LedgerUseCases{
		RecordExpense:            ledger.NewRecordExpenseUseCase(ledgerRepo, nil),
		UpdateExpense:            ledger.NewUpdateExpenseUseCase(ledgerRepo, nil),
		DeleteExpense:            ledger.NewDeleteExpenseUseCase(ledgerRepo, nil),
		RecordSale:               ledger.NewRecordSaleUseCase(ledgerRepo, nil),
		DeleteSale:               ledger.NewDeleteSaleUseCase(ledgerRepo, nil),
		RecordAccountTransaction: ledger.NewRecordAccountTransactionUseCase(ledgerRepo, nil),
		DeleteAccountTransaction: ledger.NewDeleteAccountTransactionUseCase(ledgerRepo, nil),
		RecordDebtPayment:        ledger.NewRecordDebtPaymentUseCase(ledgerRepo, nil),
		DeleteDebtPayment:        ledger.NewDeleteDebtPaymentUseCase(ledgerRepo, nil),
	}, time.UTC)

	server := &testServer{db: db, dealerID: uuid.New()}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if authenticated {
			c.Set(string(middleware.DealerIDKey), server.dealerID)
		}
		c.Next()
	})
	router.GET("/dashboard", dashboardController.Get)
	router.GET("/dashboard/data-range", dashboardController.GetDataRange)
	router.GET("/dashboard/export", dashboardController.Export)
	router.POST("/expenses", ledgerController.CreateExpense)
	router.PATCH("/expenses/:id", ledgerController.UpdateExpense)
	router.DELETE("/expenses/:id", ledgerController.DeleteExpense)
	router.POST("/sales", ledgerController.CreateSale)
	router.POST("/accounts/:id/transactions", ledgerController.CreateAccountTransaction)
	router.POST("/debts/:id/payments", ledgerController.CreateDebtPayment)
	server.router = router

	return server
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) addAccount(t *testing.T, accountType, balance string) uuid.UUID {
	t.Helper()
	account := model.FinancialAccountModel{
		ID:          uuid.New(),
		DealerID:    s.dealerID,
		Name:        accountType,
		AccountType: accountType,
		Balance:     decimal.RequireFromString(balance),
		CreatedAt:   controllerNow,
		UpdatedAt:   controllerNow,
	}
	require.NoError(t, s.db.Create(&account).Error)
	return account.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDashboardController_Get(t *testing.T) {
	t.Run("requires a dealer scope", func(t *testing.T) {
		server := newTestServer(t, false)

		rec := server.do(t, http.MethodGet, "/dashboard?range=week", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTH-030003", decodeError(t, rec).Code)
	})

	t.Run("rejects an unknown range", func(t *testing.T) {
		server := newTestServer(t, true)

		rec := server.do(t, http.MethodGet, "/dashboard?range=decade", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "DSH-010001", decodeError(t, rec).Code)
	})

	t.Run("reflects recorded expenses", func(t *testing.T) {
		server := newTestServer(t, true)
		cash := server.addAccount(t, "cash", "1000")

		rec := server.do(t, http.MethodPost, "/expenses", map[string]any{
			"date":       "2026-03-14",
			"amount":     "250.50",
			"category":   "office",
			"account_id": cash.String(),
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = server.do(t, http.MethodGet, "/dashboard?range=week", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data struct {
				Range    string `json:"range"`
				Expenses struct {
					Total string `json:"total"`
				} `json:"expenses"`
				Balances struct {
					Cash string `json:"cash"`
				} `json:"balances"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "week", body.Data.Range)
		assert.Equal(t, "250.5", body.Data.Expenses.Total)
		assert.Equal(t, "749.5", body.Data.Balances.Cash)
	})
}

func TestDashboardController_GetDataRange(t *testing.T) {
	server := newTestServer(t, true)

	rec := server.do(t, http.MethodGet, "/dashboard/data-range", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var empty dto.DataRangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.False(t, empty.HasData)
	assert.Nil(t, empty.OldestDate)

	for _, date := range []string{"2026-01-05", "2026-03-01"} {
		rec = server.do(t, http.MethodPost, "/expenses", map[string]any{"date": date, "amount": "10"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = server.do(t, http.MethodGet, "/dashboard/data-range", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var filled dto.DataRangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filled))
	assert.True(t, filled.HasData)
	assert.Equal(t, 2, filled.TotalExpenses)
	require.NotNil(t, filled.OldestDate)
	require.NotNil(t, filled.NewestDate)
	assert.Equal(t, "2026-01-05", *filled.OldestDate)
	assert.Equal(t, "2026-03-01", *filled.NewestDate)
}

func TestDashboardController_Export(t *testing.T) {
	server := newTestServer(t, true)

	rec := server.do(t, http.MethodGet, "/dashboard/export?range=month", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dashboard.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="dashboard-month-20260315.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestLedgerController_Expenses(t *testing.T) {
	server := newTestServer(t, true)
	bank := server.addAccount(t, "bank", "500")

	rec := server.do(t, http.MethodPost, "/expenses", map[string]any{
		"date":        "2026-03-10T09:30:00Z",
		"amount":      "100",
		"category":    "Marketing",
		"description": " Flyers ",
		"account_id":  bank.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "100.00", created.Amount)
	assert.Equal(t, "marketing", created.Category)
	assert.Equal(t, "Flyers", created.Description)

	rec = server.do(t, http.MethodPatch, "/expenses/"+created.ID, map[string]any{
		"amount":     "40",
		"account_id": "",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "40.00", updated.Amount)
	assert.Nil(t, updated.AccountID)

	var account model.FinancialAccountModel
	require.NoError(t, server.db.First(&account, "id = ?", bank).Error)
	assert.Equal(t, "500", account.Balance.String())

	rec = server.do(t, http.MethodDelete, "/expenses/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = server.do(t, http.MethodDelete, "/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "LDG-020001", decodeError(t, rec).Code)
}

func TestLedgerController_Validation(t *testing.T) {
	server := newTestServer(t, true)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing date",
			method:     http.MethodPost,
			path:       "/expenses",
			body:       map[string]any{"amount": "10"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010006",
		},
		{
			name:       "bad date",
			method:     http.MethodPost,
			path:       "/expenses",
			body:       map[string]any{"date": "14/03/2026", "amount": "10"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010007",
		},
		{
			name:       "zero amount",
			method:     http.MethodPost,
			path:       "/expenses",
			body:       map[string]any{"date": "2026-03-14", "amount": "0"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010001",
		},
		{
			name:       "unknown category",
			method:     http.MethodPost,
			path:       "/expenses",
			body:       map[string]any{"date": "2026-03-14", "amount": "5", "category": "fuel"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010003",
		},
		{
			name:       "malformed vehicle id",
			method:     http.MethodPost,
			path:       "/sales",
			body:       map[string]any{"date": "2026-03-14", "amount": "5", "vehicle_id": "car-1"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010005",
		},
		{
			name:       "unknown vehicle",
			method:     http.MethodPost,
			path:       "/sales",
			body:       map[string]any{"date": "2026-03-14", "amount": "5", "vehicle_id": uuid.NewString()},
			wantStatus: http.StatusNotFound,
			wantCode:   "LDG-020004",
		},
		{
			name:       "unknown account",
			method:     http.MethodPost,
			path:       "/accounts/" + uuid.NewString() + "/transactions",
			body:       map[string]any{"type": "deposit", "date": "2026-03-14", "amount": "5"},
			wantStatus: http.StatusNotFound,
			wantCode:   "LDG-020003",
		},
		{
			name:       "unknown debt",
			method:     http.MethodPost,
			path:       "/debts/" + uuid.NewString() + "/payments",
			body:       map[string]any{"date": "2026-03-14", "amount": "5"},
			wantStatus: http.StatusNotFound,
			wantCode:   "LDG-020005",
		},
		{
			name:       "malformed path id",
			method:     http.MethodDelete,
			path:       "/expenses/not-a-uuid",
			wantStatus: http.StatusBadRequest,
			wantCode:   "LDG-010005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := server.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestLedgerController_AccountTransaction(t *testing.T) {
	server := newTestServer(t, true)
	cash := server.addAccount(t, "cash", "10")

	rec := server.do(t, http.MethodPost, "/accounts/"+cash.String()+"/transactions", map[string]any{
		"type":   "withdrawal",
		"date":   "2026-03-14",
		"amount": "25.25",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body dto.AccountTransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "-15.25", body.Balance)
}

func TestGetStatusCodeForLedgerError(t *testing.T) {
	assert.Equal(t, http.StatusConflict, getStatusCodeForLedgerError("LDG-030001"))
	assert.Equal(t, http.StatusInternalServerError, getStatusCodeForLedgerError("LDG-990001"))
}

func TestGetStatusCodeForDashboardError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, getStatusCodeForDashboardError("DSH-010002"))
	assert.Equal(t, http.StatusServiceUnavailable, getStatusCodeForDashboardError("DSH-020001"))
	assert.Equal(t, http.StatusInternalServerError, getStatusCodeForDashboardError("DSH-020002"))
}
