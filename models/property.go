package models

// Property describes the rental property a user manages. One property per
// account; its name seeds the account's schema name.
type Property struct {
	Id           uint   `json:"id" gorm:"primaryKey"`
	PropertyName string `json:"property_name" gorm:"not null;unique"`
	Address      string `json:"address"`
	City         string `json:"city"`
	PhoneNumber  string `json:"phone_number"`
	SchemaName   string `json:"-" gorm:"unique;not null"`
	UserId       string `json:"-"`
	User         User   `json:"-" gorm:"foreignKey:UserId;references:Id"`
}
