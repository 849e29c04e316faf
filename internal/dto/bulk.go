package dto

import (
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BulkChargeRequest is one administrative action applying the same charge to
// many students. Each student's outcome is independent.
type BulkChargeRequest struct {
	StudentIDs        []string        `json:"studentIDs" binding:"required,min=1"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	ExternalReference string          `json:"externalReference"`
}

// BulkOutcomeResponse reports one successfully charged student.
type BulkOutcomeResponse struct {
	StudentID     string          `json:"studentID"`
	AccountID     string          `json:"accountID"`
	EntryID       string          `json:"entryID"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
}

// BulkFailureResponse reports one failed student with the reason, so the
// caller can fix and resubmit just those items.
type BulkFailureResponse struct {
	StudentID string `json:"studentID"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

// BulkChargeResponse is the complete tally of a bulk charge: counts, amounts
// and per-item outcomes. A bulk call never hides partial failure.
type BulkChargeResponse struct {
	SucceededCount int                   `json:"succeededCount"`
	FailedCount    int                   `json:"failedCount"`
	TotalCharged   decimal.Decimal       `json:"totalCharged"`
	Succeeded      []BulkOutcomeResponse `json:"succeeded"`
	Failed         []BulkFailureResponse `json:"failed"`
}

// ToBulkChargeResponse converts a domain.BulkChargeResult to its response DTO.
func ToBulkChargeResponse(result *domain.BulkChargeResult) BulkChargeResponse {
	succeeded := make([]BulkOutcomeResponse, len(result.Succeeded))
	for i, o := range result.Succeeded {
		succeeded[i] = BulkOutcomeResponse{
			StudentID:     o.StudentID,
			AccountID:     o.AccountID,
			EntryID:       o.EntryID,
			Amount:        o.Amount.Decimal(),
			BalanceBefore: o.BalanceBefore.Decimal(),
			BalanceAfter:  o.BalanceAfter.Decimal(),
		}
	}
	failed := make([]BulkFailureResponse, len(result.Failed))
	for i, f := range result.Failed {
		failed[i] = BulkFailureResponse{
			StudentID: f.StudentID,
			Status:    string(f.Status),
			Reason:    f.Reason,
		}
	}
	return BulkChargeResponse{
		SucceededCount: len(succeeded),
		FailedCount:    len(failed),
		TotalCharged:   result.TotalCharged.Decimal(),
		Succeeded:      succeeded,
		Failed:         failed,
	}
}
