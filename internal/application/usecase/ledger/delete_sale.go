package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// DeleteSaleInput represents the input for deleting a sale.
type DeleteSaleInput struct {
	DealerID uuid.UUID
	SaleID   uuid.UUID
}

// DeleteSaleOutput represents the output of deleting a sale.
type DeleteSaleOutput struct {
	Success bool
}

// DeleteSaleUseCase removes a sale, debits the receiving account and puts
// the vehicle back on sale.
type DeleteSaleUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewDeleteSaleUseCase creates a new DeleteSaleUseCase instance.
func NewDeleteSaleUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.DashboardCacheInvalidator) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute deletes the sale.
func (uc *DeleteSaleUseCase) Execute(ctx context.Context, input DeleteSaleInput) (*DeleteSaleOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}

	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		sale, err := store.FindSale(ctx, input.DealerID, input.SaleID)
		if err != nil {
			return storeError(err, "find sale")
		}
		if err := store.DeleteSale(ctx, input.DealerID, input.SaleID); err != nil {
			return storeError(err, "delete sale")
		}
		if err := applyToAccount(ctx, store, sale.DealerID, sale.AccountID, sale.BalanceDelta().Neg()); err != nil {
			return err
		}

		if sale.VehicleID == nil {
			return nil
		}
		vehicle, err := store.FindVehicle(ctx, sale.DealerID, *sale.VehicleID)
		if errors.Is(err, domainerror.ErrVehicleNotFound) {
			// The vehicle was removed after the sale; nothing to relist.
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find sold vehicle: %w", err)
		}
		vehicle.Relist()
		if err := store.UpdateVehicle(ctx, vehicle); err != nil {
			return fmt.Errorf("failed to relist vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Sale deleted", "dealerID", input.DealerID, "saleID", input.SaleID)
	invalidateDashboards(ctx, uc.cache, input.DealerID)

	return &DeleteSaleOutput{Success: true}, nil
}
