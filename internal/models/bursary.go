package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bursary represents a percentage discount policy row for a student.
type Bursary struct {
	BursaryID   string          `db:"bursary_id"`
	StudentID   string          `db:"student_id"`
	Percentage  decimal.Decimal `db:"percentage"`
	Reason      string          `db:"reason"`
	StartDate   time.Time       `db:"start_date"`
	EndDate     *time.Time      `db:"end_date"` // Nullable; open-ended when null
	Active      bool            `db:"active"`
	AuditFields
}
