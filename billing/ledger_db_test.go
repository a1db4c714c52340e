package billing

import (
	"testing"

	"rentledger-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The ledger mutates records in memory; these tests check the results survive
// a GORM round trip, including the JSON meter-history column.

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.Bill{}, &models.ServiceSettings{}))
	return db
}

func TestGenerateAndRolloverPersisted(t *testing.T) {
	db := openTestDB(t)

	room := occupiedRoom()
	room.ID = 0
	room.PreviousElectricityMeter = 100
	room.CurrentElectricityMeter = 150
	require.NoError(t, room.SetHistory(nil))
	require.NoError(t, db.Create(room).Error)

	readings := MeterReadings{ElectricityPrevious: 100, ElectricityCurrent: 150, WaterPrevious: 10, WaterCurrent: 15}
	bill, err := GenerateBill(room, testSettings(), readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		if err := ApplyGeneration(room, bill); err != nil {
			return err
		}
		return tx.Save(room).Error
	}))

	var got models.Room
	require.NoError(t, db.First(&got, room.ID).Error)
	assert.Equal(t, 150.0, got.PreviousElectricityMeter)
	assert.Equal(t, 0.0, got.CurrentElectricityMeter)
	assert.Equal(t, bill.TotalAmount, got.DebtAmount)

	history, err := got.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "7/2024", history[0].Month)
	assert.Equal(t, 150.0, history[0].ElectricityNew)
}

func TestPaymentPersistedAtomically(t *testing.T) {
	db := openTestDB(t)

	room := occupiedRoom()
	room.ID = 0
	room.DebtAmount = 1000000
	require.NoError(t, room.SetHistory(nil))
	require.NoError(t, db.Create(room).Error)

	bill := unpaidBill(1000000)
	bill.ID = 0
	bill.RoomID = room.ID
	require.NoError(t, db.Create(bill).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := ApplyPayment(bill, room, 400000, testNow); err != nil {
			return err
		}
		if err := tx.Save(bill).Error; err != nil {
			return err
		}
		return tx.Save(room).Error
	}))

	var gotBill models.Bill
	require.NoError(t, db.First(&gotBill, bill.ID).Error)
	assert.Equal(t, 400000.0, gotBill.PaidAmount)
	assert.Equal(t, 600000.0, gotBill.RemainingAmount)
	assert.Equal(t, models.BillPartiallyPaid, gotBill.PaymentStatus)

	var gotRoom models.Room
	require.NoError(t, db.First(&gotRoom, room.ID).Error)
	assert.Equal(t, 600000.0, gotRoom.DebtAmount)
	assert.Equal(t, "2024-07-09", gotRoom.LastPaymentDate)
}

func TestRejectedPaymentRollsBack(t *testing.T) {
	db := openTestDB(t)

	room := occupiedRoom()
	room.ID = 0
	room.DebtAmount = 500000
	require.NoError(t, room.SetHistory(nil))
	require.NoError(t, db.Create(room).Error)

	bill := unpaidBill(500000)
	bill.ID = 0
	bill.RoomID = room.ID
	require.NoError(t, db.Create(bill).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ApplyPayment(bill, room, 0, testNow); err != nil {
			return err
		}
		return tx.Save(bill).Error
	})
	require.ErrorIs(t, err, ErrInvalidAmount)

	var gotRoom models.Room
	require.NoError(t, db.First(&gotRoom, room.ID).Error)
	assert.Equal(t, 500000.0, gotRoom.DebtAmount)
}
