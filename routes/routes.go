package routes

import (
	"github.com/gofiber/fiber/v2"

	"rentledger-backend/controllers"
	"rentledger-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.RequireAuth())

	// Idempotency guard FIRST (its records must survive a handler rollback)
	protected.Use(middlewares.Idempotency())

	// Then the per-request account transaction
	protected.Use(middlewares.AccountTx())

	// Rooms
	protected.Post("/room", controllers.CreateRoom)
	protected.Get("/rooms", controllers.GetRooms)
	protected.Get("/room/:id", controllers.GetRoom)
	protected.Put("/room/:id", controllers.UpdateRoom)
	protected.Delete("/room/:id", controllers.DeleteRoom)

	// Service price settings (singleton, lazily created)
	protected.Get("/settings", controllers.GetSettings)
	protected.Put("/settings", controllers.UpdateSettings)

	// Bills (generation, payment lifecycle)
	protected.Post("/bills/preview", controllers.PreviewBill)
	protected.Post("/bill", controllers.CreateBill)
	protected.Get("/bills", controllers.GetBills)
	protected.Get("/bill/:id", controllers.GetBill)
	protected.Put("/bills/:id", controllers.UpdateBill)
	protected.Delete("/bills/:id", controllers.DeleteBill)
	protected.Post("/bills/:id/payments", controllers.PayBill)

	// Expenses
	protected.Post("/expense", controllers.CreateExpense)
	protected.Get("/expenses", controllers.GetExpenses)
	protected.Put("/expense/:id", controllers.UpdateExpense)
	protected.Delete("/expense/:id", controllers.DeleteExpense)

	// Financial overview
	protected.Get("/overview", controllers.GetFinancialOverview)
}
