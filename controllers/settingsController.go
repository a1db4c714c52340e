package controllers

import (
	"rentledger-backend/database"
	"rentledger-backend/middlewares"
	"rentledger-backend/models"
	"rentledger-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpdateSettingsDTO is a merge update; omitted prices keep their value.
type UpdateSettingsDTO struct {
	ElectricityPrice *float64 `json:"electricity_price" validate:"omitempty,gte=0"`
	WaterPrice       *float64 `json:"water_price" validate:"omitempty,gte=0"`
	InternetPrice    *float64 `json:"internet_price" validate:"omitempty,gte=0"`
	TrashPrice       *float64 `json:"trash_price" validate:"omitempty,gte=0"`
}

// loadOrInitSettings fetches the account's singleton price sheet, creating it
// with the default prices on first use.
func loadOrInitSettings(db *gorm.DB) (*models.ServiceSettings, error) {
	var settings models.ServiceSettings
	err := db.First(&settings, "id = ?", models.ServiceSettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = models.DefaultServiceSettings()
	if err := db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func GetSettings(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	settings, err := loadOrInitSettings(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not load service settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}

func UpdateSettings(c *fiber.Ctx) error {
	var dto UpdateSettingsDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	settings, err := loadOrInitSettings(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not load service settings",
			"error":   err.Error(),
		})
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(settings)
	}

	if err := db.Model(settings).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not update service settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}
