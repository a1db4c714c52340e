package models

// Expense is a standalone outgoing cost (repairs, purchases). Not tied to any
// room or bill; it only feeds the financial overview.
type Expense struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Description string  `json:"description" gorm:"not null"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"`
	Date        string  `json:"date"` // YYYY-MM-DD
}
