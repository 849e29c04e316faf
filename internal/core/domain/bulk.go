package domain

// BulkItemStatus tracks a single student's progress through a bulk charge.
type BulkItemStatus string

const (
	BulkItemPending        BulkItemStatus = "PENDING"
	BulkItemAccountEnsured BulkItemStatus = "ACCOUNT_ENSURED"
	BulkItemCharged        BulkItemStatus = "CHARGED"
	BulkItemFailed         BulkItemStatus = "FAILED"
)

// ChargeOutcome records one successful charge within a bulk job, with the
// balances around it for the caller's audit report.
type ChargeOutcome struct {
	StudentID     string `json:"studentID"`
	AccountID     string `json:"accountID"`
	EntryID       string `json:"entryID"`
	Amount        Money  `json:"amount"` // effective amount after any bursary
	BalanceBefore Money  `json:"balanceBefore"`
	BalanceAfter  Money  `json:"balanceAfter"`
}

// BulkFailure records one failed item. Failed items never abort or roll back
// their siblings; they are surfaced here for the caller to resubmit.
type BulkFailure struct {
	StudentID string         `json:"studentID"`
	Status    BulkItemStatus `json:"status"` // how far the item got before failing
	Reason    string         `json:"reason"`
}

// BulkChargeResult is the complete tally of one bulk charge call. It exists
// only for the duration of the administrative action; it is not persisted.
type BulkChargeResult struct {
	Succeeded    []ChargeOutcome `json:"succeeded"`
	Failed       []BulkFailure   `json:"failed"`
	TotalCharged Money           `json:"totalCharged"`
}
