package billing

import (
	"testing"
	"time"

	"rentledger-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 7, 9, 10, 30, 0, 0, time.UTC)

func testSettings() *models.ServiceSettings {
	return &models.ServiceSettings{
		ElectricityPrice: 3000,
		WaterPrice:       15000,
		InternetPrice:    100000,
		TrashPrice:       20000,
	}
}

func occupiedRoom() *models.Room {
	return &models.Room{
		ID:         7,
		RoomNumber: "P101",
		TenantName: "Nguyen Van A",
		Status:     models.RoomOccupied,
		RentAmount: 2000000,
	}
}

func TestGenerateBillFullMonth(t *testing.T) {
	room := occupiedRoom()
	readings := MeterReadings{
		ElectricityPrevious: 100,
		ElectricityCurrent:  150,
		WaterPrevious:       10,
		WaterCurrent:        15,
	}

	bill, err := GenerateBill(room, testSettings(), readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, 50.0, bill.ElectricityUsage)
	assert.Equal(t, 150000.0, bill.ElectricityCost)
	assert.Equal(t, 5.0, bill.WaterUsage)
	assert.Equal(t, 75000.0, bill.WaterCost)
	assert.Equal(t, 2345000.0, bill.CurrentMonthCharges)
	assert.Equal(t, 0.0, bill.OutstandingPreviousDebt)
	assert.Equal(t, 2345000.0, bill.TotalAmount)

	assert.Equal(t, 0.0, bill.PaidAmount)
	assert.Equal(t, bill.TotalAmount, bill.RemainingAmount)
	assert.Equal(t, models.BillUnpaid, bill.PaymentStatus)
}

func TestGenerateBillCarriesForwardDebt(t *testing.T) {
	room := occupiedRoom()
	room.DebtAmount = 500000
	readings := MeterReadings{
		ElectricityPrevious: 100,
		ElectricityCurrent:  150,
		WaterPrevious:       10,
		WaterCurrent:        15,
	}

	bill, err := GenerateBill(room, testSettings(), readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, 2345000.0, bill.CurrentMonthCharges)
	assert.Equal(t, 500000.0, bill.OutstandingPreviousDebt)
	assert.Equal(t, 2845000.0, bill.TotalAmount)
	assert.Equal(t, 2845000.0, bill.RemainingAmount)
}

// A current reading below the previous one (meter swapped or misread) keeps
// the negative usage on the bill but never produces a negative cost. This is
// long-standing behavior that downstream reports rely on seeing as-is.
func TestGenerateBillNegativeUsageZeroCost(t *testing.T) {
	room := occupiedRoom()
	readings := MeterReadings{
		ElectricityPrevious: 200,
		ElectricityCurrent:  150,
		WaterPrevious:       30,
		WaterCurrent:        12,
	}

	bill, err := GenerateBill(room, testSettings(), readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, -50.0, bill.ElectricityUsage)
	assert.Equal(t, 0.0, bill.ElectricityCost)
	assert.Equal(t, -18.0, bill.WaterUsage)
	assert.Equal(t, 0.0, bill.WaterCost)
	assert.Equal(t, 2000000.0+100000+20000, bill.CurrentMonthCharges)
}

func TestGenerateBillZeroUsageZeroCost(t *testing.T) {
	room := occupiedRoom()
	readings := MeterReadings{ElectricityPrevious: 100, ElectricityCurrent: 100}

	bill, err := GenerateBill(room, testSettings(), readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, bill.ElectricityUsage)
	assert.Equal(t, 0.0, bill.ElectricityCost)
}

func TestGenerateBillOtherFee(t *testing.T) {
	room := occupiedRoom()
	fee := OtherFee{Description: "broken window", Amount: 250000}

	bill, err := GenerateBill(room, testSettings(), MeterReadings{}, fee, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, "broken window", bill.OtherFeesDescription)
	assert.Equal(t, 250000.0, bill.OtherFeesAmount)
	assert.Equal(t, 2000000.0+100000+20000+250000, bill.CurrentMonthCharges)
}

// Whole-currency inputs are truncated; fractional metered costs are kept.
func TestGenerateBillCoercion(t *testing.T) {
	room := occupiedRoom()
	room.RentAmount = 1500000.75
	settings := testSettings()
	readings := MeterReadings{ElectricityPrevious: 0, ElectricityCurrent: 10.5}

	bill, err := GenerateBill(room, settings, readings, OtherFee{Amount: 99.9}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1500000.0, bill.RentAmount)
	assert.Equal(t, 99.0, bill.OtherFeesAmount)
	assert.Equal(t, 31500.0, bill.ElectricityCost) // 10.5 kWh * 3000, not rounded
	assert.Equal(t, 1500000.0+31500+100000+20000+99, bill.CurrentMonthCharges)
}

func TestGenerateBillDateAndInvoiceCode(t *testing.T) {
	room := occupiedRoom()
	room.RoomNumber = "P5"

	bill, err := GenerateBill(room, testSettings(), MeterReadings{}, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, "2024-07-09", bill.BillDate)
	assert.Equal(t, "P5-09/07/24", bill.InvoiceCode)
	assert.Equal(t, 7, bill.BillingMonth)
	assert.Equal(t, 2024, bill.BillingYear)
	assert.Equal(t, room.ID, bill.RoomID)
	assert.Equal(t, room.TenantName, bill.TenantName)
}

func TestGenerateBillDeterministic(t *testing.T) {
	room := occupiedRoom()
	readings := MeterReadings{ElectricityPrevious: 1, ElectricityCurrent: 2}

	a, err := GenerateBill(room, testSettings(), readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)
	b, err := GenerateBill(room, testSettings(), readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateBillMissingPreconditions(t *testing.T) {
	_, err := GenerateBill(nil, testSettings(), MeterReadings{}, OtherFee{}, 7, 2024, testNow)
	assert.ErrorIs(t, err, ErrMissingRoom)

	_, err = GenerateBill(occupiedRoom(), nil, MeterReadings{}, OtherFee{}, 7, 2024, testNow)
	assert.ErrorIs(t, err, ErrMissingSettings)
}

func TestGenerateBillMissingPricesTreatedAsZero(t *testing.T) {
	room := occupiedRoom()
	readings := MeterReadings{ElectricityCurrent: 100, WaterCurrent: 10}

	bill, err := GenerateBill(room, &models.ServiceSettings{}, readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, bill.ElectricityCost)
	assert.Equal(t, 0.0, bill.WaterCost)
	assert.Equal(t, 2000000.0, bill.CurrentMonthCharges)
}
