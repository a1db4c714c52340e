package models

// Bill payment statuses. The exact strings are part of the stored data.
const (
	BillUnpaid        = "Unpaid"
	BillPartiallyPaid = "Partially Paid"
	BillPaid          = "Paid"
)

// Bill is a per-room, per-period invoice. Room number and tenant name are
// denormalized snapshots taken at generation time, so the bill stays readable
// after the room is edited or deleted.
type Bill struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	RoomID uint `json:"room_id" gorm:"index"`

	RoomNumber string `json:"room_number"`
	TenantName string `json:"tenant_name"`

	BillingMonth int `json:"billing_month" gorm:"index:idx_bills_period,priority:1"`
	BillingYear  int `json:"billing_year" gorm:"index:idx_bills_period,priority:2"`

	RentAmount float64 `json:"rent_amount" gorm:"type:numeric(12,2)"`

	PreviousElectricityMeter float64 `json:"previous_electricity_meter"`
	CurrentElectricityMeter  float64 `json:"current_electricity_meter"`
	ElectricityUsage         float64 `json:"electricity_usage"`
	ElectricityCost          float64 `json:"electricity_cost" gorm:"type:numeric(12,2)"`

	PreviousWaterMeter float64 `json:"previous_water_meter"`
	CurrentWaterMeter  float64 `json:"current_water_meter"`
	WaterUsage         float64 `json:"water_usage"`
	WaterCost          float64 `json:"water_cost" gorm:"type:numeric(12,2)"`

	InternetFee          float64 `json:"internet_fee" gorm:"type:numeric(12,2)"`
	TrashFee             float64 `json:"trash_fee" gorm:"type:numeric(12,2)"`
	OtherFeesDescription string  `json:"other_fees_description"`
	OtherFeesAmount      float64 `json:"other_fees_amount" gorm:"type:numeric(12,2)"`

	// CurrentMonthCharges covers only this period; TotalAmount folds in the
	// room's debt as it stood at generation time.
	CurrentMonthCharges     float64 `json:"current_month_charges" gorm:"type:numeric(12,2)"`
	OutstandingPreviousDebt float64 `json:"outstanding_previous_debt" gorm:"type:numeric(12,2)"`
	TotalAmount             float64 `json:"total_amount" gorm:"type:numeric(12,2)"`

	PaidAmount      float64 `json:"paid_amount" gorm:"type:numeric(12,2)"`
	RemainingAmount float64 `json:"remaining_amount" gorm:"type:numeric(12,2)"`
	PaymentStatus   string  `json:"payment_status" gorm:"type:VARCHAR(20)"`

	BillDate    string `json:"bill_date"`    // YYYY-MM-DD
	PaymentDate string `json:"payment_date"` // YYYY-MM-DD, empty until first payment
	InvoiceCode string `json:"invoice_code"`
}
