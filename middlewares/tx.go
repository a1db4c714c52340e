package middlewares

import (
	"log"
	"strings"

	"rentledger-backend/database"

	"github.com/gofiber/fiber/v2"
)

// AccountTx opens one DB transaction per request, pinned to the account
// schema with SET LOCAL search_path. Bill+room updates in the payment, delete
// and generate flows ride the same transaction, so the two-document write is
// atomic. Runs after RequireAuth (needs the schema) and after Idempotency
// (idempotency records must not roll back with the handler).
func AccountTx() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		schema, _ := c.Locals("schema").(string)
		if strings.TrimSpace(schema) == "" {
			// Public endpoints carry no schema; nothing to pin.
			return c.Next()
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to begin transaction")
		}

		defer func() {
			if r := recover(); r != nil {
				_ = tx.Rollback()
				panic(r)
			}
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if e := tx.Commit().Error; e != nil {
				log.Printf("tx commit failed: %v", e)
				err = fiber.NewError(fiber.StatusInternalServerError, "transaction commit failed")
			}
		}()

		// SET LOCAL reverts when the transaction ends.
		if e := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; e != nil {
			_ = tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "failed to set account schema")
		}

		c.Locals("tx", tx)

		err = c.Next()
		return err
	}
}
