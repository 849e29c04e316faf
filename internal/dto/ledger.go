package dto

import (
	"time"

	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ChargeRequest is the payload for adding a single charge to a student's
// account. The amount is the gross fee; any in-effect bursary is applied by
// the service.
type ChargeRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	ExternalReference string          `json:"externalReference"`
}

// PaymentRequest is the payload for recording a payment. The actual movement
// of money is confirmed out-of-band before this is called; bursaries never
// apply to payments.
type PaymentRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	Method            string          `json:"method" binding:"required,paymentmethod"` // CASH, BANK, MOBILE, CHEQUE
	ExternalReference string          `json:"externalReference"`
}

// AdjustmentRequest is the escape hatch for corrections that are neither a
// charge nor a payment (write-offs and the like). The amount is signed:
// positive increases the balance, negative decreases it.
type AdjustmentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// EntryResponse defines the data returned for one ledger entry.
type EntryResponse struct {
	EntryID             string          `json:"entryID"`
	AccountID           string          `json:"accountID"`
	Kind                string          `json:"kind"`
	Amount              decimal.Decimal `json:"amount"`
	BalanceBefore       decimal.Decimal `json:"balanceBefore"`
	BalanceAfter        decimal.Decimal `json:"balanceAfter"`
	Description         string          `json:"description"`
	Method              string          `json:"method,omitempty"`
	ExternalReference   string          `json:"externalReference,omitempty"`
	CounterpartyEntryID *string         `json:"counterpartyEntryID,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:             e.EntryID,
		AccountID:           e.AccountID,
		Kind:                string(e.Kind),
		Amount:              e.Amount.Decimal(),
		BalanceBefore:       e.BalanceBefore.Decimal(),
		BalanceAfter:        e.BalanceAfter.Decimal(),
		Description:         e.Description,
		Method:              e.Method,
		ExternalReference:   e.ExternalReference,
		CounterpartyEntryID: e.CounterpartyEntryID,
		CreatedAt:           e.CreatedAt,
		CreatedBy:           e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of entries to response DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
