package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one student's ledger account row. Balance is the
// persisted running balance and Version is the optimistic-concurrency
// counter checked on every conditional write.
type Account struct {
	AccountID   string          `db:"account_id"`
	StudentID   string          `db:"student_id"`
	Balance     decimal.Decimal `db:"balance"`
	Version     int64           `db:"version"`
	LastEntryAt *time.Time      `db:"last_entry_at"` // Nullable
	AuditFields                 // Embed common audit fields
}
