package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListEntriesParams holds pagination parameters for statement reads.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// StatementResponse is the student/parent statement view: the current
// balance plus a page of ledger entries in creation order.
type StatementResponse struct {
	StudentID   string          `json:"studentID"`
	AccountID   string          `json:"accountID"`
	Balance     decimal.Decimal `json:"balance"`
	LastEntryAt *time.Time      `json:"lastEntryAt,omitempty"`
	Entries     []EntryResponse `json:"entries"`
	NextToken   *string         `json:"nextToken,omitempty"`
}
