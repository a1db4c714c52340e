package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Room occupancy statuses.
const (
	RoomVacant      = "Vacant"
	RoomOccupied    = "Occupied"
	RoomMaintenance = "Maintenance"
)

// Room is a rentable unit plus the tenant currently in it, the meter state of
// the running billing period, and the room's aggregate outstanding debt.
type Room struct {
	ID uint `json:"id" gorm:"primaryKey"`

	RoomNumber string `json:"room_number" gorm:"not null;uniqueIndex"`
	Status     string `json:"status" gorm:"type:VARCHAR(20);default:'Vacant'"`
	Condition  string `json:"condition"`

	// Tenant fields; only meaningful while Status == Occupied.
	TenantName  string `json:"tenant_name"`
	IDCard      string `json:"id_card"`
	Address     string `json:"address"`
	Hometown    string `json:"hometown"`
	PhoneNumber string `json:"phone_number"`

	RentAmount float64 `json:"rent_amount" gorm:"type:numeric(12,2)"`
	Deposit    float64 `json:"deposit" gorm:"type:numeric(12,2)"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	DueDay     int     `json:"due_day"`    // day of month rent falls due (1-31)

	// Meter readings of the current (not yet billed) period.
	PreviousElectricityMeter float64 `json:"previous_electricity_meter"`
	CurrentElectricityMeter  float64 `json:"current_electricity_meter"`
	PreviousWaterMeter       float64 `json:"previous_water_meter"`
	CurrentWaterMeter        float64 `json:"current_water_meter"`

	// MeterHistory holds the most recent billed periods, newest first,
	// truncated to MeterHistoryLimit entries. Stored as a JSONB array.
	MeterHistory datatypes.JSON `json:"meter_history" gorm:"type:jsonb"`

	// Aggregate outstanding balance across this room's unpaid bills.
	DebtAmount      float64 `json:"debt_amount" gorm:"type:numeric(12,2)"`
	DebtDescription string  `json:"debt_description"`
	LastPaymentDate string  `json:"last_payment_date"` // YYYY-MM-DD

	RepairNotes string `json:"repair_notes"`
	Notes       string `json:"notes"`
}

// MeterHistoryLimit caps how many past periods a room keeps.
const MeterHistoryLimit = 3

// MeterHistoryEntry records the readings a past bill was settled against.
type MeterHistoryEntry struct {
	Month          string  `json:"month"` // "M/YYYY"
	ElectricityOld float64 `json:"electricity_old"`
	ElectricityNew float64 `json:"electricity_new"`
	WaterOld       float64 `json:"water_old"`
	WaterNew       float64 `json:"water_new"`
}

// History decodes the room's stored meter history. A missing or empty column
// decodes to a nil slice.
func (r *Room) History() ([]MeterHistoryEntry, error) {
	if len(r.MeterHistory) == 0 {
		return nil, nil
	}
	var entries []MeterHistoryEntry
	if err := json.Unmarshal(r.MeterHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetHistory re-encodes the history column from entries.
func (r *Room) SetHistory(entries []MeterHistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	r.MeterHistory = datatypes.JSON(raw)
	return nil
}
