package services

import (
	"context"

	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/dto"
)

// LedgerWriterSvc defines the mutation surface of the ledger. Every call is
// serialized per account via optimistic concurrency; an entry and its balance
// change commit together or not at all.
type LedgerWriterSvc interface {
	// ApplyCharge adds a charge to a student's account, applying the best
	// in-effect bursary. The account is created lazily if missing.
	ApplyCharge(ctx context.Context, studentID string, req dto.ChargeRequest, actorUserID string) (*domain.LedgerEntry, error)

	// ApplyPayment records a payment against a student's account. Bursaries
	// never apply to payments.
	ApplyPayment(ctx context.Context, studentID string, req dto.PaymentRequest, actorUserID string) (*domain.LedgerEntry, error)

	// ApplyAdjustment records a signed correction that is neither a charge
	// nor a payment.
	ApplyAdjustment(ctx context.Context, studentID string, req dto.AdjustmentRequest, actorUserID string) (*domain.LedgerEntry, error)

	// ChargeAccount charges a known account directly with caller-supplied
	// bursary policies. This is the engine-level contract the bulk processor
	// drives; the "best-of" policy selection happens inside.
	ChargeAccount(ctx context.Context, accountID string, amount domain.Money, description, externalReference, actorUserID string, policies []domain.Bursary) (*domain.LedgerEntry, error)

	// Reverse appends the counter-entry that negates a prior entry.
	Reverse(ctx context.Context, entryID string, actorUserID string) (*domain.LedgerEntry, error)
}

// StatementReaderSvc defines the read-only statement view.
type StatementReaderSvc interface {
	// GetStatement retrieves the current balance and a page of entries for a
	// student's account.
	GetStatement(ctx context.Context, studentID string, params dto.ListEntriesParams) (*dto.StatementResponse, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	StatementReaderSvc
}

// ReversalSvcFacade locates a prior entry and applies its inverse through the
// ledger engine, so reversals get the same atomicity guarantees as any other
// mutation.
type ReversalSvcFacade interface {
	ReverseEntry(ctx context.Context, entryID string, actorUserID string) (*domain.LedgerEntry, error)
}

// BulkSvcFacade drives the ledger engine over a batch of students, isolating
// per-item failure.
type BulkSvcFacade interface {
	// ChargeMany charges each listed student independently and returns the
	// full success/failure tally. One student's failure never rolls back
	// another's charge.
	ChargeMany(ctx context.Context, req dto.BulkChargeRequest, actorUserID string) (*domain.BulkChargeResult, error)
}
