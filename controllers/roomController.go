package controllers

import (
	"sort"

	"rentledger-backend/database"
	"rentledger-backend/middlewares"
	"rentledger-backend/models"
	"rentledger-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateRoomDTO carries everything a room starts with. Tenant fields stay
// empty for vacant rooms.
type CreateRoomDTO struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=Vacant Occupied Maintenance"`
	Condition  string `json:"condition"`

	TenantName  string `json:"tenant_name"`
	IDCard      string `json:"id_card"`
	Address     string `json:"address"`
	Hometown    string `json:"hometown"`
	PhoneNumber string `json:"phone_number"`

	RentAmount float64 `json:"rent_amount" validate:"gte=0"`
	Deposit    float64 `json:"deposit" validate:"gte=0"`
	StartDate  string  `json:"start_date"`
	DueDay     int     `json:"due_day" validate:"omitempty,min=1,max=31"`

	PreviousElectricityMeter float64 `json:"previous_electricity_meter" validate:"gte=0"`
	CurrentElectricityMeter  float64 `json:"current_electricity_meter" validate:"gte=0"`
	PreviousWaterMeter       float64 `json:"previous_water_meter" validate:"gte=0"`
	CurrentWaterMeter        float64 `json:"current_water_meter" validate:"gte=0"`

	DebtAmount      float64 `json:"debt_amount" validate:"gte=0"`
	DebtDescription string  `json:"debt_description"`

	RepairNotes string `json:"repair_notes"`
	Notes       string `json:"notes"`
}

// UpdateRoomDTO is the patch counterpart; only non-nil fields are written.
type UpdateRoomDTO struct {
	RoomNumber *string `json:"room_number"`
	Status     *string `json:"status" validate:"omitempty,oneof=Vacant Occupied Maintenance"`
	Condition  *string `json:"condition"`

	TenantName  *string `json:"tenant_name"`
	IDCard      *string `json:"id_card"`
	Address     *string `json:"address"`
	Hometown    *string `json:"hometown"`
	PhoneNumber *string `json:"phone_number"`

	RentAmount *float64 `json:"rent_amount" validate:"omitempty,gte=0"`
	Deposit    *float64 `json:"deposit" validate:"omitempty,gte=0"`
	StartDate  *string  `json:"start_date"`
	DueDay     *int     `json:"due_day" validate:"omitempty,min=1,max=31"`

	PreviousElectricityMeter *float64 `json:"previous_electricity_meter" validate:"omitempty,gte=0"`
	CurrentElectricityMeter  *float64 `json:"current_electricity_meter" validate:"omitempty,gte=0"`
	PreviousWaterMeter       *float64 `json:"previous_water_meter" validate:"omitempty,gte=0"`
	CurrentWaterMeter        *float64 `json:"current_water_meter" validate:"omitempty,gte=0"`

	DebtAmount      *float64 `json:"debt_amount" validate:"omitempty,gte=0"`
	DebtDescription *string  `json:"debt_description"`
	LastPaymentDate *string  `json:"last_payment_date"`

	RepairNotes *string `json:"repair_notes"`
	Notes       *string `json:"notes"`
}

func CreateRoom(c *fiber.Ctx) error {
	var dto CreateRoomDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	status := dto.Status
	if status == "" {
		status = models.RoomVacant
	}

	room := models.Room{
		RoomNumber:               dto.RoomNumber,
		Status:                   status,
		Condition:                dto.Condition,
		TenantName:               dto.TenantName,
		IDCard:                   dto.IDCard,
		Address:                  dto.Address,
		Hometown:                 dto.Hometown,
		PhoneNumber:              dto.PhoneNumber,
		RentAmount:               dto.RentAmount,
		Deposit:                  dto.Deposit,
		StartDate:                dto.StartDate,
		DueDay:                   dto.DueDay,
		PreviousElectricityMeter: dto.PreviousElectricityMeter,
		CurrentElectricityMeter:  dto.CurrentElectricityMeter,
		PreviousWaterMeter:       dto.PreviousWaterMeter,
		CurrentWaterMeter:        dto.CurrentWaterMeter,
		DebtAmount:               dto.DebtAmount,
		DebtDescription:          dto.DebtDescription,
		RepairNotes:              dto.RepairNotes,
		Notes:                    dto.Notes,
	}
	if err := room.SetHistory(nil); err != nil {
		return err
	}

	if err := db.Create(&room).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not create room",
			"error":   err.Error(),
		})
	}
	return c.JSON(room)
}

// GetRooms lists rooms display-sorted by the numeric part of the room number.
func GetRooms(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rooms []models.Room
	if err := db.Find(&rooms).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not load rooms",
			"error":   err.Error(),
		})
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		return utils.RoomNumberValue(rooms[i].RoomNumber) < utils.RoomNumberValue(rooms[j].RoomNumber)
	})

	return c.JSON(fiber.Map{
		"rooms":   rooms,
		"message": "success",
	})
}

func GetRoom(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var room models.Room
	if err := db.First(&room, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "room not found")
		}
		return err
	}
	return c.JSON(room)
}

func UpdateRoom(c *fiber.Ctx) error {
	var dto UpdateRoomDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var room models.Room
	if err := db.First(&room, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "room not found")
		}
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(room)
	}

	if err := db.Model(&room).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not update room",
			"error":   err.Error(),
		})
	}
	return c.JSON(room)
}

// DeleteRoom removes the room only; its bills stay behind with their
// denormalized room number and tenant name.
func DeleteRoom(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var room models.Room
	if err := db.First(&room, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "room not found")
		}
		return err
	}

	if err := db.Delete(&room).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not delete room",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
