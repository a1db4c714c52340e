package billing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"rentledger-backend/models"
	"rentledger-backend/utils"
)

// ErrInvalidAmount rejects non-positive payment amounts.
var ErrInvalidAmount = errors.New("payment amount must be greater than zero")

// The three operations below are the only writers of Room.DebtAmount, and each
// applies a different formula on purpose: payment subtracts the paid amount,
// deletion subtracts the bill's remainder, generation overwrites with the new
// total (which already folds in prior debt). Keep them separate.

// ApplyPayment posts amount against bill and reduces the room's aggregate
// debt. Overpayment beyond the bill's remainder is allowed; it keeps eating
// into the room-level debt, which is why the room subtraction uses the raw
// amount rather than the clamped remainder. Mutates both records; the caller
// persists them together.
func ApplyPayment(bill *models.Bill, room *models.Room, amount float64, now time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	bill.PaidAmount += amount
	remaining := bill.TotalAmount - bill.PaidAmount
	if remaining <= 0 {
		bill.PaymentStatus = models.BillPaid
		remaining = 0
	} else {
		bill.PaymentStatus = models.BillPartiallyPaid
	}
	bill.RemainingAmount = remaining

	today := utils.ISODate(now)
	bill.PaymentDate = today

	room.DebtAmount = math.Max(0, room.DebtAmount-amount)
	room.LastPaymentDate = today
	return nil
}

// RecalculateOnEdit restores a bill's derived fields after a manual edit:
// remaining = max(0, total - paid) and the status that goes with it.
// PaymentDate is stamped only the first time the bill leaves Unpaid; an
// existing date survives further edits. Room debt is deliberately untouched
// on this path.
func RecalculateOnEdit(bill *models.Bill, now time.Time) {
	remaining := bill.TotalAmount - bill.PaidAmount

	status := models.BillPartiallyPaid
	if remaining <= 0 {
		status = models.BillPaid
	} else if bill.PaidAmount == 0 {
		status = models.BillUnpaid
	}

	bill.RemainingAmount = math.Max(0, remaining)
	bill.PaymentStatus = status

	if status != models.BillUnpaid && bill.PaymentDate == "" && bill.PaidAmount > 0 {
		bill.PaymentDate = utils.ISODate(now)
	}
}

// SettleDeletion backs the bill's unpaid remainder out of the room's debt
// before the bill record is removed. Returns true when the room was touched;
// a fully paid bill deletes with no room-side effect.
func SettleDeletion(room *models.Room, bill *models.Bill) bool {
	if bill.RemainingAmount <= 0 {
		return false
	}
	room.DebtAmount = math.Max(0, room.DebtAmount-bill.RemainingAmount)
	return true
}

// ApplyGeneration rolls the room forward after a generated bill is persisted:
// debt is overwritten with the bill's total (it already includes the old
// debt), this period's readings become the next period's "previous", and the
// period is pushed onto the rolling meter history.
func ApplyGeneration(room *models.Room, bill *models.Bill) error {
	history, err := room.History()
	if err != nil {
		return err
	}
	entry := models.MeterHistoryEntry{
		Month:          fmt.Sprintf("%d/%d", bill.BillingMonth, bill.BillingYear),
		ElectricityOld: bill.PreviousElectricityMeter,
		ElectricityNew: bill.CurrentElectricityMeter,
		WaterOld:       bill.PreviousWaterMeter,
		WaterNew:       bill.CurrentWaterMeter,
	}
	history = append([]models.MeterHistoryEntry{entry}, history...)
	if len(history) > models.MeterHistoryLimit {
		history = history[:models.MeterHistoryLimit]
	}
	if err := room.SetHistory(history); err != nil {
		return err
	}

	room.PreviousElectricityMeter = bill.CurrentElectricityMeter
	room.CurrentElectricityMeter = 0
	room.PreviousWaterMeter = bill.CurrentWaterMeter
	room.CurrentWaterMeter = 0

	room.DebtAmount = bill.TotalAmount
	room.DebtDescription = bill.OtherFeesDescription
	return nil
}
