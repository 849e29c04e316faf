package domain

import "fmt"

// EntryKind classifies a ledger entry by its effect on the balance.
type EntryKind string

const (
	EntryCharge     EntryKind = "CHARGE"     // increases the balance
	EntryPayment    EntryKind = "PAYMENT"    // decreases the balance
	EntryRefund     EntryKind = "REFUND"     // increases the balance (a payment handed back)
	EntryAdjustment EntryKind = "ADJUSTMENT" // direction carried by the recorded balance delta
)

// Sign returns the balance direction of the kind: +1, -1, or 0 for
// ADJUSTMENT, whose direction is read from the entry's balance delta.
func (k EntryKind) Sign() int {
	switch k {
	case EntryCharge, EntryRefund:
		return 1
	case EntryPayment:
		return -1
	default:
		return 0
	}
}

// ReversalKind returns the kind that negates an entry of kind k.
// A charge is undone by a payment, a payment by a refund, a refund by a
// payment, and an adjustment by an opposite adjustment.
func (k EntryKind) ReversalKind() EntryKind {
	switch k {
	case EntryCharge, EntryRefund:
		return EntryPayment
	case EntryPayment:
		return EntryRefund
	default:
		return EntryAdjustment
	}
}

// LedgerEntry is one immutable, balance-affecting record. Corrections are
// made by appending a counter-entry, never by editing or deleting a row.
type LedgerEntry struct {
	EntryID       string    `json:"entryID"`   // Primary Key (UUID)
	AccountID     string    `json:"accountID"` // FK -> accounts.account_id
	Kind          EntryKind `json:"kind"`
	Amount        Money     `json:"amount"` // always a non-negative magnitude
	BalanceBefore Money     `json:"balanceBefore"`
	BalanceAfter  Money     `json:"balanceAfter"`
	Description   string    `json:"description"`
	// Method records how a payment was received (CASH, BANK, MOBILE, ...).
	// Empty for non-payment kinds.
	Method            string `json:"method,omitempty"`
	ExternalReference string `json:"externalReference,omitempty"`
	// CounterpartyEntryID links a reversal entry to the entry it reverses.
	// Set only on reversal entries; at most one reversal may reference a
	// given entry.
	CounterpartyEntryID *string `json:"counterpartyEntryID,omitempty"`
	AuditFields
}

// SignedAmount returns the balance delta this entry applied. For ADJUSTMENT
// entries the direction comes from the recorded before/after balances.
func (e LedgerEntry) SignedAmount() Money {
	switch e.Kind.Sign() {
	case 1:
		return e.Amount
	case -1:
		return e.Amount.Neg()
	default:
		return MoneyFromStored(e.BalanceAfter.Decimal().Sub(e.BalanceBefore.Decimal()))
	}
}

// ReplayBalance folds entries in creation order from a zero balance and
// verifies each step against the recorded before/after amounts. The result
// must reproduce the account's stored balance exactly.
func ReplayBalance(entries []LedgerEntry) (Money, error) {
	balance := ZeroMoney()
	for _, e := range entries {
		if !e.BalanceBefore.Equal(balance) {
			return Money{}, fmt.Errorf("entry %s: recorded balanceBefore %s does not match replayed balance %s",
				e.EntryID, e.BalanceBefore, balance)
		}
		next, err := balance.Add(e.SignedAmount())
		if err != nil {
			return Money{}, fmt.Errorf("entry %s: %w", e.EntryID, err)
		}
		if !e.BalanceAfter.Equal(next) {
			return Money{}, fmt.Errorf("entry %s: recorded balanceAfter %s does not match replayed balance %s",
				e.EntryID, e.BalanceAfter, next)
		}
		balance = next
	}
	return balance, nil
}
