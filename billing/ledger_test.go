package billing

import (
	"testing"
	"time"

	"rentledger-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unpaidBill(total float64) *models.Bill {
	return &models.Bill{
		ID:              1,
		RoomID:          7,
		TotalAmount:     total,
		PaidAmount:      0,
		RemainingAmount: total,
		PaymentStatus:   models.BillUnpaid,
	}
}

func TestApplyPaymentPartialThenFull(t *testing.T) {
	bill := unpaidBill(1000000)
	room := &models.Room{ID: 7, DebtAmount: 1000000}

	require.NoError(t, ApplyPayment(bill, room, 400000, testNow))
	assert.Equal(t, 400000.0, bill.PaidAmount)
	assert.Equal(t, 600000.0, bill.RemainingAmount)
	assert.Equal(t, models.BillPartiallyPaid, bill.PaymentStatus)
	assert.Equal(t, "2024-07-09", bill.PaymentDate)
	assert.Equal(t, 600000.0, room.DebtAmount)
	assert.Equal(t, "2024-07-09", room.LastPaymentDate)

	require.NoError(t, ApplyPayment(bill, room, 600000, testNow))
	assert.Equal(t, 1000000.0, bill.PaidAmount)
	assert.Equal(t, 0.0, bill.RemainingAmount)
	assert.Equal(t, models.BillPaid, bill.PaymentStatus)
	assert.Equal(t, 0.0, room.DebtAmount)
}

func TestApplyPaymentAccumulates(t *testing.T) {
	// a1 then a2 must land where a single a1+a2 payment would.
	split := unpaidBill(900000)
	lump := unpaidBill(900000)
	roomA := &models.Room{DebtAmount: 900000}
	roomB := &models.Room{DebtAmount: 900000}

	require.NoError(t, ApplyPayment(split, roomA, 300000, testNow))
	require.NoError(t, ApplyPayment(split, roomA, 200000, testNow))
	require.NoError(t, ApplyPayment(lump, roomB, 500000, testNow))

	assert.Equal(t, lump.PaidAmount, split.PaidAmount)
	assert.Equal(t, lump.RemainingAmount, split.RemainingAmount)
	assert.Equal(t, lump.PaymentStatus, split.PaymentStatus)
	assert.Equal(t, roomB.DebtAmount, roomA.DebtAmount)
}

func TestApplyPaymentRejectsNonPositiveAmount(t *testing.T) {
	bill := unpaidBill(500000)
	room := &models.Room{DebtAmount: 500000}

	assert.ErrorIs(t, ApplyPayment(bill, room, 0, testNow), ErrInvalidAmount)
	assert.ErrorIs(t, ApplyPayment(bill, room, -1000, testNow), ErrInvalidAmount)

	// Nothing moved.
	assert.Equal(t, 0.0, bill.PaidAmount)
	assert.Equal(t, models.BillUnpaid, bill.PaymentStatus)
	assert.Equal(t, 500000.0, room.DebtAmount)
	assert.Empty(t, room.LastPaymentDate)
}

// Overpaying one bill is allowed: the bill clamps at zero remaining while the
// surplus keeps reducing the room's aggregate debt.
func TestApplyPaymentOverpaymentReducesRoomDebt(t *testing.T) {
	bill := unpaidBill(300000)
	room := &models.Room{DebtAmount: 800000}

	require.NoError(t, ApplyPayment(bill, room, 500000, testNow))
	assert.Equal(t, 0.0, bill.RemainingAmount)
	assert.Equal(t, models.BillPaid, bill.PaymentStatus)
	assert.Equal(t, 300000.0, room.DebtAmount)
}

func TestApplyPaymentRoomDebtFloorsAtZero(t *testing.T) {
	bill := unpaidBill(1000000)
	room := &models.Room{DebtAmount: 200000}

	require.NoError(t, ApplyPayment(bill, room, 600000, testNow))
	assert.Equal(t, 0.0, room.DebtAmount)
	assert.Equal(t, 400000.0, bill.RemainingAmount)
}

func TestRecalculateOnEditStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		total      float64
		paid       float64
		wantStatus string
		wantRemain float64
	}{
		{"untouched", 500000, 0, models.BillUnpaid, 500000},
		{"partial", 500000, 100000, models.BillPartiallyPaid, 400000},
		{"exact", 500000, 500000, models.BillPaid, 0},
		{"overpaid", 500000, 600000, models.BillPaid, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bill := &models.Bill{TotalAmount: tc.total, PaidAmount: tc.paid}
			RecalculateOnEdit(bill, testNow)
			assert.Equal(t, tc.wantStatus, bill.PaymentStatus)
			assert.Equal(t, tc.wantRemain, bill.RemainingAmount)
		})
	}
}

func TestRecalculateOnEditIdempotent(t *testing.T) {
	bill := &models.Bill{TotalAmount: 800000, PaidAmount: 300000}
	RecalculateOnEdit(bill, testNow)
	first := *bill
	RecalculateOnEdit(bill, testNow)
	assert.Equal(t, first, *bill)
}

func TestRecalculateOnEditPaymentDateStampedOnce(t *testing.T) {
	bill := &models.Bill{TotalAmount: 800000, PaidAmount: 300000}
	RecalculateOnEdit(bill, testNow)
	assert.Equal(t, "2024-07-09", bill.PaymentDate)

	later := testNow.AddDate(0, 1, 0)
	bill.PaidAmount = 500000
	RecalculateOnEdit(bill, later)
	assert.Equal(t, "2024-07-09", bill.PaymentDate, "existing payment date must survive edits")
}

func TestRecalculateOnEditNoDateWhileUnpaid(t *testing.T) {
	bill := &models.Bill{TotalAmount: 800000, PaidAmount: 0}
	RecalculateOnEdit(bill, testNow)
	assert.Empty(t, bill.PaymentDate)
}

func TestSettleDeletionBacksOutRemainder(t *testing.T) {
	room := &models.Room{DebtAmount: 300000}
	bill := &models.Bill{RemainingAmount: 300000}

	assert.True(t, SettleDeletion(room, bill))
	assert.Equal(t, 0.0, room.DebtAmount)
}

func TestSettleDeletionPaidBillNoEffect(t *testing.T) {
	room := &models.Room{DebtAmount: 450000}
	bill := &models.Bill{RemainingAmount: 0}

	assert.False(t, SettleDeletion(room, bill))
	assert.Equal(t, 450000.0, room.DebtAmount)
}

func TestSettleDeletionFloorsAtZero(t *testing.T) {
	room := &models.Room{DebtAmount: 100000}
	bill := &models.Bill{RemainingAmount: 250000}

	assert.True(t, SettleDeletion(room, bill))
	assert.Equal(t, 0.0, room.DebtAmount)
}

// Generation overwrites the room's debt with the bill total instead of adding
// to it; the total already contains the carried-forward debt.
func TestApplyGenerationOverwritesDebt(t *testing.T) {
	room := &models.Room{ID: 7, DebtAmount: 200000}
	bill := &models.Bill{
		BillingMonth:            7,
		BillingYear:             2024,
		CurrentMonthCharges:     1800000,
		OutstandingPreviousDebt: 200000,
		TotalAmount:             2000000,
	}

	require.NoError(t, ApplyGeneration(room, bill))
	assert.Equal(t, 2000000.0, room.DebtAmount)
}

func TestApplyGenerationRollsMeters(t *testing.T) {
	room := &models.Room{
		PreviousElectricityMeter: 100,
		CurrentElectricityMeter:  150,
		PreviousWaterMeter:       10,
		CurrentWaterMeter:        15,
	}
	bill := &models.Bill{
		BillingMonth:             7,
		BillingYear:              2024,
		PreviousElectricityMeter: 100,
		CurrentElectricityMeter:  150,
		PreviousWaterMeter:       10,
		CurrentWaterMeter:        15,
	}

	require.NoError(t, ApplyGeneration(room, bill))

	assert.Equal(t, 150.0, room.PreviousElectricityMeter)
	assert.Equal(t, 0.0, room.CurrentElectricityMeter)
	assert.Equal(t, 15.0, room.PreviousWaterMeter)
	assert.Equal(t, 0.0, room.CurrentWaterMeter)
}

func TestApplyGenerationHistoryNewestFirstCapped(t *testing.T) {
	room := &models.Room{}
	require.NoError(t, room.SetHistory([]models.MeterHistoryEntry{
		{Month: "6/2024"}, {Month: "5/2024"}, {Month: "4/2024"},
	}))
	bill := &models.Bill{
		BillingMonth:             7,
		BillingYear:              2024,
		PreviousElectricityMeter: 100,
		CurrentElectricityMeter:  150,
		PreviousWaterMeter:       10,
		CurrentWaterMeter:        15,
	}

	require.NoError(t, ApplyGeneration(room, bill))

	history, err := room.History()
	require.NoError(t, err)
	require.Len(t, history, models.MeterHistoryLimit)
	assert.Equal(t, "7/2024", history[0].Month)
	assert.Equal(t, 150.0, history[0].ElectricityNew)
	assert.Equal(t, "6/2024", history[1].Month)
	assert.Equal(t, "5/2024", history[2].Month)
}

// Room debt mirrors the sum of unpaid remainders through a whole lifecycle:
// generate, pay partially, pay off, generate again, delete.
func TestDebtInvariantAcrossLifecycle(t *testing.T) {
	room := occupiedRoom()
	settings := testSettings()
	readings := MeterReadings{ElectricityPrevious: 100, ElectricityCurrent: 150, WaterPrevious: 10, WaterCurrent: 15}

	bill, err := GenerateBill(room, settings, readings, OtherFee{}, 7, 2024, testNow)
	require.NoError(t, err)
	require.NoError(t, ApplyGeneration(room, bill))
	assert.Equal(t, bill.RemainingAmount, room.DebtAmount)

	require.NoError(t, ApplyPayment(bill, room, 345000, testNow))
	assert.Equal(t, bill.RemainingAmount, room.DebtAmount)

	require.NoError(t, ApplyPayment(bill, room, 2000000, testNow))
	assert.Equal(t, bill.RemainingAmount, room.DebtAmount)
	assert.Equal(t, 0.0, room.DebtAmount)

	// Next period carries no debt forward.
	next, err := GenerateBill(room, settings, MeterReadings{ElectricityPrevious: 150, ElectricityCurrent: 170}, OtherFee{}, 8, 2024, testNow.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, next.OutstandingPreviousDebt)
	require.NoError(t, ApplyGeneration(room, next))
	assert.Equal(t, next.RemainingAmount, room.DebtAmount)

	// Deleting the unpaid bill restores the invariant to zero.
	require.True(t, SettleDeletion(room, next))
	assert.Equal(t, 0.0, room.DebtAmount)
}

func TestApplyPaymentUsesCallerClock(t *testing.T) {
	bill := unpaidBill(100000)
	room := &models.Room{DebtAmount: 100000}
	later := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyPayment(bill, room, 100000, later))
	assert.Equal(t, "2025-01-02", bill.PaymentDate)
	assert.Equal(t, "2025-01-02", room.LastPaymentDate)
}
