package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// RecordSaleInput represents the input for recording a sale.
type RecordSaleInput struct {
	DealerID      uuid.UUID
	VehicleID     *uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	BuyerName     string
	BuyerPhone    string
	PaymentMethod string
	AccountID     *uuid.UUID
}

// RecordSaleOutput represents the output of recording a sale.
type RecordSaleOutput struct {
	Sale *entity.Sale
}

// RecordSaleUseCase stores a sale, marks its vehicle sold and credits the
// receiving account.
type RecordSaleUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.DashboardCacheInvalidator
}

// NewRecordSaleUseCase creates a new RecordSaleUseCase instance.
func NewRecordSaleUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.DashboardCacheInvalidator) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Execute records the sale.
func (uc *RecordSaleUseCase) Execute(ctx context.Context, input RecordSaleInput) (*RecordSaleOutput, error) {
	if err := validateDealer(input.DealerID); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	sale := entity.NewSale(
		input.DealerID,
		input.VehicleID,
		input.Amount,
		input.Date,
		strings.TrimSpace(input.BuyerName),
		strings.TrimSpace(input.BuyerPhone),
		strings.TrimSpace(input.PaymentMethod),
		input.AccountID,
	)

	err := uc.ledgerRepo.WithinTransaction(ctx, func(store adapter.LedgerStore) error {
		if sale.VehicleID != nil {
			vehicle, err := store.FindVehicle(ctx, sale.DealerID, *sale.VehicleID)
			if err != nil {
				return storeError(err, "find vehicle")
			}
			if vehicle.IsSold() {
				return domainerror.NewLedgerError(
					domainerror.ErrCodeVehicleAlreadySold,
					domainerror.ErrVehicleAlreadySold.Error(),
					domainerror.ErrVehicleAlreadySold,
				)
			}
			vehicle.MarkSold(sale.Amount, sale.Date)
			if err := store.UpdateVehicle(ctx, vehicle); err != nil {
				return fmt.Errorf("failed to mark vehicle sold: %w", err)
			}
			sale.Vehicle = vehicle
		}

		if err := store.CreateSale(ctx, sale); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		return applyToAccount(ctx, store, sale.DealerID, sale.AccountID, sale.BalanceDelta())
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Sale recorded", "dealerID", sale.DealerID, "saleID", sale.ID, "amount", sale.Amount.String())
	invalidateDashboards(ctx, uc.cache, sale.DealerID)

	return &RecordSaleOutput{Sale: sale}, nil
}
