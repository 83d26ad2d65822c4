// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/internal/application/usecase/dashboard"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	"github.com/ezcar24/dealer-backend/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// FetchSnapshot loads every record of the dealer the dashboard needs.
// Sales reference the same vehicle instances as the vehicle list.
func (r *dashboardRepository) FetchSnapshot(ctx context.Context, dealerID uuid.UUID) (*dashboard.Snapshot, error) {
	db := r.db.WithContext(ctx)

	var expenseModels []model.ExpenseModel
	if err := db.Where("dealer_id = ?", dealerID).Order("date ASC").Find(&expenseModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	var vehicleModels []model.VehicleModel
	if err := db.Preload("Expenses").Where("dealer_id = ?", dealerID).Find(&vehicleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}

	var saleModels []model.SaleModel
	if err := db.Where("dealer_id = ?", dealerID).Order("date ASC").Find(&saleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	var accountModels []model.FinancialAccountModel
	if err := db.Where("dealer_id = ?", dealerID).Find(&accountModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	var debtModels []model.DebtModel
	if err := db.Preload("Payments").Where("dealer_id = ?", dealerID).Find(&debtModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load debts: %w", err)
	}

	snapshot := &dashboard.Snapshot{
		Expenses: make([]*entity.Expense, len(expenseModels)),
		Vehicles: make([]*entity.Vehicle, len(vehicleModels)),
		Sales:    make([]*entity.Sale, len(saleModels)),
		Accounts: make([]*entity.FinancialAccount, len(accountModels)),
		Debts:    make([]*entity.Debt, len(debtModels)),
	}

	for i := range expenseModels {
		snapshot.Expenses[i] = expenseModels[i].ToEntity()
	}

	vehicles := make(map[uuid.UUID]*entity.Vehicle, len(vehicleModels))
	for i := range vehicleModels {
		vehicle := vehicleModels[i].ToEntity()
		vehicles[vehicle.ID] = vehicle
		snapshot.Vehicles[i] = vehicle
	}

	for i := range saleModels {
		sale := saleModels[i].ToEntity()
		if sale.VehicleID != nil {
			sale.Vehicle = vehicles[*sale.VehicleID]
		}
		snapshot.Sales[i] = sale
	}

	for i := range accountModels {
		snapshot.Accounts[i] = accountModels[i].ToEntity()
	}

	for i := range debtModels {
		snapshot.Debts[i] = debtModels[i].ToEntity()
	}

	return snapshot, nil
}

// GetDateRange returns the date range of the dealer's expenses.
func (r *dashboardRepository) GetDateRange(ctx context.Context, dealerID uuid.UUID) (*dashboard.DateRange, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.ExpenseModel{}).Where("dealer_id = ?", dealerID)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}

	result := &dashboard.DateRange{TotalExpenses: int(total)}
	if total == 0 {
		return result, nil
	}

	var oldest, newest model.ExpenseModel
	if err := scoped().Order("date ASC").Limit(1).Find(&oldest).Error; err != nil {
		return nil, fmt.Errorf("failed to get oldest expense: %w", err)
	}
	if err := scoped().Order("date DESC").Limit(1).Find(&newest).Error; err != nil {
		return nil, fmt.Errorf("failed to get newest expense: %w", err)
	}

	result.OldestDate = &oldest.Date
	result.NewestDate = &newest.Date

	return result, nil
}
