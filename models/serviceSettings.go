package models

// Default service prices, applied when an account has no settings row yet.
const (
	DefaultElectricityPrice = 3000   // per kWh
	DefaultWaterPrice       = 15000  // per m3
	DefaultInternetPrice    = 100000 // flat per month
	DefaultTrashPrice       = 20000  // flat per month
)

// ServiceSettingsID pins the settings to a single row per account schema.
const ServiceSettingsID = 1

// ServiceSettings is the singleton price sheet used by bill generation.
type ServiceSettings struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	ElectricityPrice float64 `json:"electricity_price" gorm:"type:numeric(12,2)"`
	WaterPrice       float64 `json:"water_price" gorm:"type:numeric(12,2)"`
	InternetPrice    float64 `json:"internet_price" gorm:"type:numeric(12,2)"`
	TrashPrice       float64 `json:"trash_price" gorm:"type:numeric(12,2)"`
}

// DefaultServiceSettings returns the lazily-created settings row.
func DefaultServiceSettings() ServiceSettings {
	return ServiceSettings{
		ID:               ServiceSettingsID,
		ElectricityPrice: DefaultElectricityPrice,
		WaterPrice:       DefaultWaterPrice,
		InternetPrice:    DefaultInternetPrice,
		TrashPrice:       DefaultTrashPrice,
	}
}
