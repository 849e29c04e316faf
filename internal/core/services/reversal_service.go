package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
	"github.com/campusfin/student_ledger_app/internal/middleware"
)

// ReversalService negates a prior entry by appending a counter-entry tagged
// with the original's ID. History is never edited: the original row stays
// exactly as written, and the reversal reflects the account's then-current
// balance rather than rewinding to the original's.
type ReversalService struct {
	engine     *LedgerService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewReversalService creates a new ReversalService applying its inverses
// through the given ledger engine.
func NewReversalService(engine *LedgerService, ledgerRepo portsrepo.LedgerRepositoryFacade) *ReversalService {
	return &ReversalService{
		engine:     engine,
		ledgerRepo: ledgerRepo,
	}
}

// Ensure ReversalService implements the portssvc.ReversalSvcFacade interface
var _ portssvc.ReversalSvcFacade = (*ReversalService)(nil)

// ReverseEntry locates the target entry, rejects a second reversal of the
// same entry, and applies the inverse through the ledger engine. A charge is
// undone by a payment-kind entry, a payment by a refund-kind entry, and
// refunds/adjustments invert their sign.
func (s *ReversalService) ReverseEntry(ctx context.Context, entryID string, actorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found for reversal", slog.String("entry_id", entryID))
			return nil, fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load entry %s for reversal: %w", entryID, err)
	}

	// Idempotency guard: at most one reversal may reference a given entry.
	existing, err := s.ledgerRepo.FindReversalOf(ctx, entryID)
	if err == nil && existing != nil {
		logger.Warn("Entry already reversed",
			slog.String("entry_id", entryID),
			slog.String("reversal_entry_id", existing.EntryID),
		)
		return nil, fmt.Errorf("%w: entry %s was reversed by entry %s", apperrors.ErrAlreadyReversed, entryID, existing.EntryID)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check reversal state of entry %s: %w", entryID, err)
	}

	counterparty := original.EntryID
	inverse := ledgerMutation{
		accountID:           original.AccountID,
		kind:                original.Kind.ReversalKind(),
		amount:              original.Amount,
		signedDelta:         original.SignedAmount().Neg(),
		description:         fmt.Sprintf("Reversal of: %s", original.Description),
		method:              original.Method,
		externalReference:   original.ExternalReference,
		counterpartyEntryID: &counterparty,
		actorUserID:         actorUserID,
	}

	reversal, err := s.engine.applyMutation(ctx, inverse)
	if err != nil {
		return nil, err
	}

	logger.Info("Entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
	)
	return reversal, nil
}
