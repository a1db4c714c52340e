package controllers

import (
	"rentledger-backend/database"
	"rentledger-backend/middlewares"
	"rentledger-backend/models"
	"rentledger-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateExpenseDTO struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Date        string  `json:"date" validate:"required"`
}

type UpdateExpenseDTO struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Date        *string  `json:"date"`
}

func CreateExpense(c *fiber.Ctx) error {
	var dto CreateExpenseDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	expense := models.Expense{
		Description: dto.Description,
		Amount:      dto.Amount,
		Date:        dto.Date,
	}
	if err := db.Create(&expense).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not create expense",
			"error":   err.Error(),
		})
	}
	return c.JSON(expense)
}

// GetExpenses lists expenses newest first.
func GetExpenses(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var expenses []models.Expense
	if err := db.Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not load expenses",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"expenses": expenses,
		"message":  "success",
	})
}

func UpdateExpense(c *fiber.Ctx) error {
	var dto UpdateExpenseDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var expense models.Expense
	if err := db.First(&expense, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "expense not found")
		}
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return c.JSON(expense)
	}

	if err := db.Model(&expense).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not update expense",
			"error":   err.Error(),
		})
	}
	return c.JSON(expense)
}

func DeleteExpense(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var expense models.Expense
	if err := db.First(&expense, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "expense not found")
		}
		return err
	}

	if err := db.Delete(&expense).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not delete expense",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
