package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bursary is a per-student, time-bounded percentage discount applied to
// charges. A bursary never rewrites historical entries; it only shapes
// charges computed after it takes effect.
type Bursary struct {
	BursaryID  string          `json:"bursaryID"` // Primary Key (UUID)
	StudentID  string          `json:"studentID"`
	Percentage decimal.Decimal `json:"percentage"` // 0 < p <= 100
	Reason     string          `json:"reason"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    *time.Time      `json:"endDate,omitempty"` // nil = open-ended
	Active     bool            `json:"active"`
	AuditFields
}

// InEffect reports whether the bursary applies to a charge computed at asOf.
func (b Bursary) InEffect(asOf time.Time) bool {
	if !b.Active {
		return false
	}
	if asOf.Before(b.StartDate) {
		return false
	}
	if b.EndDate != nil && asOf.After(*b.EndDate) {
		return false
	}
	return true
}

// BestApplicablePercentage returns the discount to apply to a charge computed
// at asOf: the single highest percentage among policies in effect, or zero if
// none apply. Discounts are deliberately not stacked ("best-of" selection),
// so several simultaneous bursaries can never compound past the largest one.
// Pure function, safe to call concurrently.
func BestApplicablePercentage(policies []Bursary, asOf time.Time) decimal.Decimal {
	best := decimal.Zero
	for _, p := range policies {
		if p.InEffect(asOf) && p.Percentage.GreaterThan(best) {
			best = p.Percentage
		}
	}
	return best
}
