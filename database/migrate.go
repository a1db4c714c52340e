package database

import (
	"fmt"

	"rentledger-backend/models"

	"gorm.io/gorm"
)

// MigrateAccountSchema applies idempotent migrations inside a single account
// schema: AutoMigrate for tables/columns, NUMERIC(12,2) money columns,
// supporting indexes and basic CHECK constraints.
func MigrateAccountSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		if err := tx.AutoMigrate(
			&models.Room{},
			&models.Bill{},
			&models.Expense{},
			&models.ServiceSettings{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("account automigrate failed: %w", err)
		}

		// Money columns stay NUMERIC(12,2) even if a model tag drifts.
		alters := []string{
			`ALTER TABLE rooms    ALTER COLUMN rent_amount  TYPE numeric(12,2)`,
			`ALTER TABLE rooms    ALTER COLUMN deposit      TYPE numeric(12,2)`,
			`ALTER TABLE rooms    ALTER COLUMN debt_amount  TYPE numeric(12,2)`,
			`ALTER TABLE bills    ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE bills    ALTER COLUMN paid_amount  TYPE numeric(12,2)`,
			`ALTER TABLE bills    ALTER COLUMN remaining_amount TYPE numeric(12,2)`,
			`ALTER TABLE bills    ALTER COLUMN current_month_charges TYPE numeric(12,2)`,
			`ALTER TABLE bills    ALTER COLUMN outstanding_previous_debt TYPE numeric(12,2)`,
			`ALTER TABLE expenses ALTER COLUMN amount       TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_bills_room ON bills (room_id)`,
			`CREATE INDEX IF NOT EXISTS idx_bills_bill_date ON bills (bill_date)`,
			`CREATE INDEX IF NOT EXISTS idx_bills_period ON bills (billing_month, billing_year)`,
			`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (date)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// Paid amounts and debts never go below zero; the ledger clamps them
		// and the database backs that up.
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'bills'::regclass
					  AND conname  = 'chk_bills_paid_amount_nonneg'
				) THEN
					ALTER TABLE bills
					ADD CONSTRAINT chk_bills_paid_amount_nonneg
					CHECK (paid_amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'bills'::regclass
					  AND conname  = 'chk_bills_remaining_nonneg'
				) THEN
					ALTER TABLE bills
					ADD CONSTRAINT chk_bills_remaining_nonneg
					CHECK (remaining_amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'rooms'::regclass
					  AND conname  = 'chk_rooms_debt_amount_nonneg'
				) THEN
					ALTER TABLE rooms
					ADD CONSTRAINT chk_rooms_debt_amount_nonneg
					CHECK (debt_amount >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
