package billing

import (
	"errors"
	"math"
	"time"

	"rentledger-backend/models"
	"rentledger-backend/utils"
)

var (
	// ErrMissingRoom / ErrMissingSettings signal that bill generation was
	// invoked without its preconditions; a zero bill is never produced.
	ErrMissingRoom     = errors.New("missing room")
	ErrMissingSettings = errors.New("missing service settings")
)

// MeterReadings are the user-supplied (possibly corrected) readings for the
// period being billed. Absent values arrive as 0.
type MeterReadings struct {
	ElectricityPrevious float64 `json:"electricity_previous"`
	ElectricityCurrent  float64 `json:"electricity_current"`
	WaterPrevious       float64 `json:"water_previous"`
	WaterCurrent        float64 `json:"water_current"`
}

// OtherFee is an optional one-off charge folded into the bill.
type OtherFee struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// GenerateBill computes a complete bill for the given room and price sheet.
// It is pure apart from the caller-supplied clock: same inputs and same now
// always produce the same bill. Persistence and the room-side rollover are the
// caller's job (see ApplyGeneration).
//
// Usage is NOT floored at zero; only the cost is. A negative delta (meter
// replaced or misread) is stored as computed while the cost term stays 0.
func GenerateBill(room *models.Room, settings *models.ServiceSettings, readings MeterReadings, fee OtherFee, month, year int, now time.Time) (*models.Bill, error) {
	if room == nil {
		return nil, ErrMissingRoom
	}
	if settings == nil {
		return nil, ErrMissingSettings
	}

	electricityUsage := readings.ElectricityCurrent - readings.ElectricityPrevious
	electricityCost := 0.0
	if electricityUsage > 0 {
		electricityCost = electricityUsage * settings.ElectricityPrice
	}

	waterUsage := readings.WaterCurrent - readings.WaterPrevious
	waterCost := 0.0
	if waterUsage > 0 {
		waterCost = waterUsage * settings.WaterPrice
	}

	// Whole-currency inputs are truncated to whole units; the metered costs
	// keep any fractional part.
	rent := math.Trunc(room.RentAmount)
	internet := math.Trunc(settings.InternetPrice)
	trash := math.Trunc(settings.TrashPrice)
	other := math.Trunc(fee.Amount)

	currentMonthCharges := rent + electricityCost + waterCost + internet + trash + other
	outstandingPreviousDebt := math.Trunc(room.DebtAmount)
	totalAmount := currentMonthCharges + outstandingPreviousDebt

	billDate := utils.ISODate(now)

	return &models.Bill{
		RoomID:       room.ID,
		RoomNumber:   room.RoomNumber,
		TenantName:   room.TenantName,
		BillingMonth: month,
		BillingYear:  year,
		RentAmount:   rent,

		PreviousElectricityMeter: readings.ElectricityPrevious,
		CurrentElectricityMeter:  readings.ElectricityCurrent,
		ElectricityUsage:         electricityUsage,
		ElectricityCost:          electricityCost,

		PreviousWaterMeter: readings.WaterPrevious,
		CurrentWaterMeter:  readings.WaterCurrent,
		WaterUsage:         waterUsage,
		WaterCost:          waterCost,

		InternetFee:          internet,
		TrashFee:             trash,
		OtherFeesDescription: fee.Description,
		OtherFeesAmount:      other,

		CurrentMonthCharges:     currentMonthCharges,
		OutstandingPreviousDebt: outstandingPreviousDebt,
		TotalAmount:             totalAmount,

		PaidAmount:      0,
		RemainingAmount: totalAmount,
		PaymentStatus:   models.BillUnpaid,

		BillDate:    billDate,
		InvoiceCode: room.RoomNumber + "-" + utils.InvoiceDate(billDate),
	}, nil
}
