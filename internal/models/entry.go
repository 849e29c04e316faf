package models

import (
	"github.com/shopspring/decimal"
)

// EntryKind defines the nature of a ledger entry.
type EntryKind string

const (
	Charge     EntryKind = "CHARGE"
	Payment    EntryKind = "PAYMENT"
	Refund     EntryKind = "REFUND"
	Adjustment EntryKind = "ADJUSTMENT"
)

// LedgerEntry represents one immutable row in the ledger_entries table.
// Rows are never updated or deleted after insert.
type LedgerEntry struct {
	EntryID             string          `db:"entry_id"`
	AccountID           string          `db:"account_id"`
	Kind                EntryKind       `db:"kind"`
	Amount              decimal.Decimal `db:"amount"`
	BalanceBefore       decimal.Decimal `db:"balance_before"`
	BalanceAfter        decimal.Decimal `db:"balance_after"`
	Description         string          `db:"description"`
	Method              string          `db:"method"`
	ExternalReference   string          `db:"external_reference"`
	CounterpartyEntryID *string         `db:"counterparty_entry_id"` // Nullable; set only on reversal entries
	AuditFields
}
