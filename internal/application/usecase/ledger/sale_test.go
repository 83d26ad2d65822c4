package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

func TestRecordSaleUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()

	t.Run("marks the vehicle sold and credits the account", func(t *testing.T) {
		store := newMemoryLedger()
		cache := newCountingCache()
		bank := store.addAccount(dealerID, "bank", "100")
		vehicleID := store.addVehicle(dealerID, entity.VehicleStatusAvailable)

		output, err := NewRecordSaleUseCase(store, cache).Execute(ctx, RecordSaleInput{
			DealerID:  dealerID,
			VehicleID: &vehicleID,
			Amount:    dec("50000"),
			Date:      ledgerDate,
			BuyerName: " Lina ",
			AccountID: &bank,
		})

		require.NoError(t, err)
		assert.Equal(t, "Lina", output.Sale.BuyerName)
		require.NotNil(t, output.Sale.Vehicle)
		assert.Equal(t, "50100", store.balance(bank))

		vehicle := store.vehicles[vehicleID]
		assert.Equal(t, entity.VehicleStatusSold, vehicle.Status)
		require.NotNil(t, vehicle.SalePrice)
		assert.Equal(t, "50000", vehicle.SalePrice.String())
		assert.True(t, vehicle.SaleDate.Equal(ledgerDate))
		assert.Equal(t, 1, cache.invalidated[dealerID])
	})

	t.Run("refuses a sold vehicle", func(t *testing.T) {
		store := newMemoryLedger()
		vehicleID := store.addVehicle(dealerID, entity.VehicleStatusSold)

		_, err := NewRecordSaleUseCase(store, nil).Execute(ctx, RecordSaleInput{
			DealerID:  dealerID,
			VehicleID: &vehicleID,
			Amount:    dec("1000"),
			Date:      ledgerDate,
		})

		requireLedgerCode(t, err, domainerror.ErrCodeVehicleAlreadySold)
		assert.Empty(t, store.sales)
	})

	t.Run("sale without vehicle", func(t *testing.T) {
		store := newMemoryLedger()

		output, err := NewRecordSaleUseCase(store, nil).Execute(ctx, RecordSaleInput{
			DealerID: dealerID,
			Amount:   dec("700"),
			Date:     ledgerDate,
		})

		require.NoError(t, err)
		assert.Nil(t, output.Sale.Vehicle)
		assert.Len(t, store.sales, 1)
	})
}

func TestDeleteSaleUseCase_ReversesRecord(t *testing.T) {
	ctx := context.Background()
	dealerID := uuid.New()
	store := newMemoryLedger()
	cash := store.addAccount(dealerID, "cash", "0")
	vehicleID := store.addVehicle(dealerID, entity.VehicleStatusOnSale)

	recorded, err := NewRecordSaleUseCase(store, nil).Execute(ctx, RecordSaleInput{
		DealerID:  dealerID,
		VehicleID: &vehicleID,
		Amount:    dec("18500.75"),
		Date:      ledgerDate,
		AccountID: &cash,
	})
	require.NoError(t, err)

	_, err = NewDeleteSaleUseCase(store, nil).Execute(ctx, DeleteSaleInput{DealerID: dealerID, SaleID: recorded.Sale.ID})

	require.NoError(t, err)
	assert.Equal(t, "0", store.balance(cash))
	assert.Empty(t, store.sales)

	vehicle := store.vehicles[vehicleID]
	assert.Equal(t, entity.VehicleStatusOnSale, vehicle.Status)
	assert.Nil(t, vehicle.SalePrice)
	assert.Nil(t, vehicle.SaleDate)

	t.Run("other dealer cannot delete", func(t *testing.T) {
		other, err := NewRecordSaleUseCase(store, nil).Execute(ctx, RecordSaleInput{DealerID: dealerID, Amount: dec("1"), Date: ledgerDate})
		require.NoError(t, err)

		_, err = NewDeleteSaleUseCase(store, nil).Execute(ctx, DeleteSaleInput{DealerID: uuid.New(), SaleID: other.Sale.ID})

		requireLedgerCode(t, err, domainerror.ErrCodeSaleNotFound)
		assert.Len(t, store.sales, 1)
	})

	t.Run("vehicle removed after the sale", func(t *testing.T) {
		goneID := store.addVehicle(dealerID, entity.VehicleStatusOnSale)
		sold, err := NewRecordSaleUseCase(store, nil).Execute(ctx, RecordSaleInput{
			DealerID:  dealerID,
			VehicleID: &goneID,
			Amount:    dec("10"),
			Date:      ledgerDate,
		})
		require.NoError(t, err)
		delete(store.vehicles, goneID)

		_, err = NewDeleteSaleUseCase(store, nil).Execute(ctx, DeleteSaleInput{DealerID: dealerID, SaleID: sold.Sale.ID})

		require.NoError(t, err)
	})
}
