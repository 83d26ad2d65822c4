// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleStatus represents where a vehicle is in the dealer's inventory lifecycle.
type VehicleStatus string

const (
	VehicleStatusOwned        VehicleStatus = "owned"
	VehicleStatusOnSale       VehicleStatus = "on_sale"
	VehicleStatusSold         VehicleStatus = "sold"
	VehicleStatusInTransit    VehicleStatus = "in_transit"
	VehicleStatusUnderService VehicleStatus = "under_service"

	// VehicleStatusAvailable is the legacy name of on_sale still present in older rows.
	VehicleStatusAvailable VehicleStatus = "available"
)

// UnnamedVehicleTitle is shown when a vehicle has neither make nor model.
const UnnamedVehicleTitle = "Unnamed Vehicle"

// Normalize folds legacy status values into their current name.
func (s VehicleStatus) Normalize() VehicleStatus {
	if s == VehicleStatusAvailable {
		return VehicleStatusOnSale
	}
	return s
}

// Vehicle represents a car held, listed or sold by the dealership.
type Vehicle struct {
	ID            uuid.UUID
	DealerID      uuid.UUID
	Make          string
	Model         string
	Year          int
	VIN           string
	PurchasePrice decimal.Decimal
	PurchaseDate  *time.Time
	Status        VehicleStatus
	SalePrice     *decimal.Decimal
	SaleDate      *time.Time
	Expenses      []*Expense
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExpenseTotal returns the sum of the vehicle's own expenses.
func (v *Vehicle) ExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range v.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalCost returns purchase price plus all vehicle expenses.
func (v *Vehicle) TotalCost() decimal.Decimal {
	return v.PurchasePrice.Add(v.ExpenseTotal())
}

// AssetValue returns the sale price when one is set, otherwise the total cost.
func (v *Vehicle) AssetValue() decimal.Decimal {
	if v.SalePrice != nil && v.SalePrice.IsPositive() {
		return *v.SalePrice
	}
	return v.TotalCost()
}

// IsSold reports whether the vehicle has left inventory.
func (v *Vehicle) IsSold() bool {
	return v.Status.Normalize() == VehicleStatusSold
}

// DisplayName returns "make model", or UnnamedVehicleTitle when both are empty.
func (v *Vehicle) DisplayName() string {
	title := strings.TrimSpace(strings.TrimSpace(v.Make) + " " + strings.TrimSpace(v.Model))
	if title == "" {
		return UnnamedVehicleTitle
	}
	return title
}

// MarkSold records the sale on the vehicle.
func (v *Vehicle) MarkSold(price decimal.Decimal, date time.Time) {
	v.Status = VehicleStatusSold
	v.SalePrice = &price
	v.SaleDate = &date
	v.UpdatedAt = time.Now().UTC()
}

// Relist puts a sold vehicle back on sale and clears its sale fields.
func (v *Vehicle) Relist() {
	v.Status = VehicleStatusOnSale
	v.SalePrice = nil
	v.SaleDate = nil
	v.UpdatedAt = time.Now().UTC()
}
