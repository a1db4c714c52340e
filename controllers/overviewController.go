package controllers

import (
	"strings"

	"rentledger-backend/database"
	"rentledger-backend/models"
	"rentledger-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// FinancialOverview sums collected rent against logged expenses for an
// optional month/year filter. Income counts what was actually paid
// (paid_amount), not what was invoiced.
type FinancialOverview struct {
	Month         int     `json:"month,omitempty"`
	Year          int     `json:"year,omitempty"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetBalance    float64 `json:"net_balance"`

	TotalIncomeDisplay   string `json:"total_income_display"`
	TotalExpensesDisplay string `json:"total_expenses_display"`
	NetBalanceDisplay    string `json:"net_balance_display"`
}

func GetFinancialOverview(c *fiber.Ctx) error {
	db, err := database.AccountDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	month := utils.ParseIntDefault(c.Query("month"), 0)
	year := utils.ParseIntDefault(c.Query("year"), 0)

	incomeQ := db.Model(&models.Bill{})
	if month > 0 {
		incomeQ = incomeQ.Where("billing_month = ?", month)
	}
	if year > 0 {
		incomeQ = incomeQ.Where("billing_year = ?", year)
	}
	var totalIncome float64
	if err := incomeQ.Select("COALESCE(SUM(paid_amount), 0)").Scan(&totalIncome).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not compute income",
			"error":   err.Error(),
		})
	}

	// Expense dates are ISO strings; filter in Go rather than leaning on
	// dialect-specific date functions.
	var expenses []models.Expense
	if err := db.Find(&expenses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not load expenses",
			"error":   err.Error(),
		})
	}
	var totalExpenses float64
	for _, e := range expenses {
		if !matchesPeriod(e.Date, month, year) {
			continue
		}
		totalExpenses += e.Amount
	}

	net := totalIncome - totalExpenses
	return c.JSON(FinancialOverview{
		Month:                month,
		Year:                 year,
		TotalIncome:          totalIncome,
		TotalExpenses:        totalExpenses,
		NetBalance:           net,
		TotalIncomeDisplay:   utils.FormatVND(totalIncome),
		TotalExpensesDisplay: utils.FormatVND(totalExpenses),
		NetBalanceDisplay:    utils.FormatVND(net),
	})
}

// matchesPeriod checks an ISO date (YYYY-MM-DD) against optional month/year
// filters; a zero filter matches everything.
func matchesPeriod(isoDate string, month, year int) bool {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return month == 0 && year == 0
	}
	if year > 0 && utils.ParseIntDefault(parts[0], -1) != year {
		return false
	}
	if month > 0 && utils.ParseIntDefault(parts[1], -1) != month {
		return false
	}
	return true
}
