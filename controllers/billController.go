package controllers

import (
	"time"

	"rentledger-backend/billing"
	"rentledger-backend/database"
	"rentledger-backend/middlewares"
	"rentledger-backend/models"
	"rentledger-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GenerateBillDTO is the input for both bill preview and bill creation: the
// room being billed, the period, the (possibly corrected) meter readings and
// an optional one-off fee.
type GenerateBillDTO struct {
	RoomID       uint `json:"room_id" validate:"required"`
	BillingMonth int  `json:"billing_month" validate:"omitempty,min=1,max=12"`
	BillingYear  int  `json:"billing_year" validate:"omitempty,min=2000"`

	ElectricityPrevious float64 `json:"electricity_previous" validate:"gte=0"`
	ElectricityCurrent  float64 `json:"electricity_current" validate:"gte=0"`
	WaterPrevious       float64 `json:"water_previous" validate:"gte=0"`
	WaterCurrent        float64 `json:"water_current" validate:"gte=0"`

	OtherFeesDescription string  `json:"other_fees_description"`
	OtherFeesAmount      float64 `json:"other_fees_amount" validate:"gte=0"`
}

// UpdateBillDTO is the manual-edit surface of a bill. Derived fields
// (remaining amount, status, payment date) are recomputed server-side and
// cannot be set directly.
type UpdateBillDTO struct {
	TenantName *string `json:"tenant_name"`

	RentAmount           *float64 `json:"rent_amount" validate:"omitempty,gte=0"`
	ElectricityCost      *float64 `json:"electricity_cost" validate:"omitempty,gte=0"`
	WaterCost            *float64 `json:"water_cost" validate:"omitempty,gte=0"`
	InternetFee          *float64 `json:"internet_fee" validate:"omitempty,gte=0"`
	TrashFee             *float64 `json:"trash_fee" validate:"omitempty,gte=0"`
	OtherFeesDescription *string  `json:"other_fees_description"`
	OtherFeesAmount      *float64 `json:"other_fees_amount" validate:"omitempty,gte=0"`

	TotalAmount *float64 `json:"total_amount" validate:"omitempty,gte=0"`
	PaidAmount  *float64 `json:"paid_amount" validate:"omitempty,gte=0"`
}

// PaymentDTO posts a payment against a bill.
type PaymentDTO struct {
	Amount float64 `json:"amount" validate:"required"`
}

func generateFromDTO(db *gorm.DB, dto *GenerateBillDTO) (*models.Bill, *models.Room, error) {
	var room models.Room
	if err := db.First(&room, "id = ?", dto.RoomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, billing.ErrMissingRoom
		}
		return nil, nil, err
	}

	settings, err := loadOrInitSettings(db)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	month, year := dto.BillingMonth, dto.BillingYear
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	readings := billing.MeterReadings{
		ElectricityPrevious: dto.ElectricityPrevious,
		ElectricityCurrent:  dto.ElectricityCurrent,
		WaterPrevious:       dto.WaterPrevious,
		WaterCurrent:        dto.WaterCurrent,
	}
	fee := billing.OtherFee{
		Description: dto.OtherFeesDescription,
		Amount:      dto.OtherFeesAmount,
	}

	bill, err := billing.GenerateBill(&room, settings, readings, fee, month, year, now)
	if err != nil {
		return nil, nil, err
	}
	return bill, &room, nil
}

// PreviewBill computes a bill without persisting anything, so the landlord
// can check the numbers before committing the meter rollover.
func PreviewBill(c *fiber.Ctx) error {
	var dto GenerateBillDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	bill, _, err := generateFromDTO(db, &dto)
	if err != nil {
		return err
	}
	return c.JSON(bill)
}

// CreateBill recomputes the bill server-side, persists it and rolls the room
// forward (meter rollover, debt overwrite, history push) in the same
// per-request transaction.
func CreateBill(c *fiber.Ctx) error {
	var dto GenerateBillDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	bill, room, err := generateFromDTO(db, &dto)
	if err != nil {
		return err
	}

	if err := db.Create(bill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not save bill",
			"error":   err.Error(),
		})
	}

	if err := billing.ApplyGeneration(room, bill); err != nil {
		return err
	}
	if err := db.Save(room).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not update room after billing",
			"error":   err.Error(),
		})
	}

	return c.JSON(bill)
}

// GetBills lists bills newest first.
func GetBills(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	q := db.Model(&models.Bill{}).Order("bill_date DESC, id DESC")
	if roomID := c.Query("room_id"); roomID != "" {
		q = q.Where("room_id = ?", roomID)
	}
	if month := utils.ParseIntDefault(c.Query("month"), 0); month > 0 {
		q = q.Where("billing_month = ?", month)
	}
	if year := utils.ParseIntDefault(c.Query("year"), 0); year > 0 {
		q = q.Where("billing_year = ?", year)
	}

	var bills []models.Bill
	if err := q.Find(&bills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not load bills",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"bills":   bills,
		"message": "success",
	})
}

func GetBill(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var bill models.Bill
	if err := db.First(&bill, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bill not found")
		}
		return err
	}
	return c.JSON(bill)
}

// UpdateBill applies a manual edit and recomputes the derived payment fields.
// Edits replace amounts rather than accumulating them, so resubmitting the
// same payload is harmless. The room's debt is NOT adjusted on this path.
func UpdateBill(c *fiber.Ctx) error {
	var dto UpdateBillDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var bill models.Bill
	if err := db.First(&bill, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bill not found")
		}
		return err
	}

	if dto.TenantName != nil {
		bill.TenantName = *dto.TenantName
	}
	if dto.RentAmount != nil {
		bill.RentAmount = *dto.RentAmount
	}
	if dto.ElectricityCost != nil {
		bill.ElectricityCost = *dto.ElectricityCost
	}
	if dto.WaterCost != nil {
		bill.WaterCost = *dto.WaterCost
	}
	if dto.InternetFee != nil {
		bill.InternetFee = *dto.InternetFee
	}
	if dto.TrashFee != nil {
		bill.TrashFee = *dto.TrashFee
	}
	if dto.OtherFeesDescription != nil {
		bill.OtherFeesDescription = *dto.OtherFeesDescription
	}
	if dto.OtherFeesAmount != nil {
		bill.OtherFeesAmount = *dto.OtherFeesAmount
	}
	if dto.TotalAmount != nil {
		bill.TotalAmount = *dto.TotalAmount
	}
	if dto.PaidAmount != nil {
		bill.PaidAmount = *dto.PaidAmount
	}

	billing.RecalculateOnEdit(&bill, time.Now())

	if err := db.Save(&bill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not update bill",
			"error":   err.Error(),
		})
	}
	return c.JSON(bill)
}

// PayBill posts a payment: the bill's paid/remaining/status move forward and
// the room's aggregate debt shrinks by the paid amount, both in the same
// transaction. If either record is missing the whole request fails with 404
// and nothing is written.
func PayBill(c *fiber.Ctx) error {
	var dto PaymentDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var bill models.Bill
	if err := db.First(&bill, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bill or room not found")
		}
		return err
	}

	var room models.Room
	if err := db.First(&room, "id = ?", bill.RoomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bill or room not found")
		}
		return err
	}

	if err := billing.ApplyPayment(&bill, &room, dto.Amount, time.Now()); err != nil {
		return err
	}

	if err := db.Save(&bill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not update bill",
			"error":   err.Error(),
		})
	}
	if err := db.Save(&room).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not update room",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"bill":    bill,
		"room":    room,
		"message": "success",
	})
}

// DeleteBill removes a bill. An unpaid remainder is backed out of the room's
// debt first; a room that was deleted in the meantime is skipped.
func DeleteBill(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var bill models.Bill
	if err := db.First(&bill, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bill not found")
		}
		return err
	}

	if bill.RemainingAmount > 0 {
		var room models.Room
		err := db.First(&room, "id = ?", bill.RoomID).Error
		switch err {
		case nil:
			if billing.SettleDeletion(&room, &bill) {
				if err := db.Save(&room).Error; err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"message": "could not adjust room debt",
						"error":   err.Error(),
					})
				}
			}
		case gorm.ErrRecordNotFound:
			// Room already gone; delete the bill anyway.
		default:
			return err
		}
	}

	if err := db.Delete(&bill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not delete bill",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
