package controllers

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"rentledger-backend/database"
	"rentledger-backend/middlewares"
	"rentledger-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Register creates a landlord account: user row, property row and a dedicated
// schema holding that account's rooms, bills, expenses and settings.
func Register(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid email format",
		})
	}

	var mailExist models.User
	database.DB.Where("email = ?", data["email"]).First(&mailExist)
	if mailExist.Email != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "email already exists",
		})
	}

	if data["password"] != data["password_confirm"] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "passwords do not match",
		})
	}

	propertyName := strings.TrimSpace(data["property_name"])
	if propertyName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "property name is required",
		})
	}

	schemaName, err := createSchema(propertyName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "registration failed due to internal error",
			"error":   err.Error(),
		})
	}

	tx := database.DB.Begin()

	user := models.User{
		Name:       data["name"],
		Email:      data["email"],
		SchemaName: schemaName,
	}
	user.SetPassword(data["password"])
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not create user",
			"error":   err.Error(),
		})
	}

	property := models.Property{
		PropertyName: propertyName,
		Address:      data["address"],
		City:         data["city"],
		PhoneNumber:  data["phone_number"],
		SchemaName:   schemaName,
		UserId:       user.Id,
	}
	if err := tx.Create(&property).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "could not create property",
			"error":   err.Error(),
		})
	}

	if err := database.MigrateAccountSchema(schemaName); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not migrate account schema",
		})
	}

	tx.Commit()

	database.DB.Preload("User").First(&property, property.Id)
	return c.JSON(property)
}

func createSchema(propertyName string) (string, error) {
	safeName := strings.ToLower(strings.TrimSpace(propertyName))
	safeName = strings.ReplaceAll(safeName, " ", "_")
	valid := regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	if !valid.MatchString(safeName) {
		return "", fmt.Errorf("invalid schema name after sanitization: %s", safeName)
	}

	if err := database.DB.Exec("CREATE SCHEMA IF NOT EXISTS " + safeName).Error; err != nil {
		return "", err
	}
	return safeName, nil
}

// Login checks credentials and hands out a JWT carrying the account schema.
// Wrong email format, unknown user and bad password each get their own
// message so the client can show a precise dialog.
func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid email format",
		})
	}

	var user models.User
	database.DB.Table("public.users").Where("email = ?", data["email"]).First(&user)

	if _, err := uuid.Parse(user.Id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "user not found",
		})
	}

	if err := user.ComparePassword(data["password"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "incorrect password",
		})
	}

	token, err := middlewares.GenerateJWT(user.Id, user.SchemaName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not issue token",
			"error":   err.Error(),
		})
	}

	// Account schemas migrate lazily on login so older accounts pick up new
	// columns without a maintenance step.
	if err := database.MigrateAccountSchema(user.SchemaName); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not migrate account schema",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Logout clears the legacy cookie session, if any. Bearer-token clients just
// drop the token.
func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
