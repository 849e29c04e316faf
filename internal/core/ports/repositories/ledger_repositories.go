package repositories

import (
	"context"

	"github.com/campusfin/student_ledger_app/internal/core/domain"
)

// LedgerEntryReader defines read operations over the append-only entry log.
// Entries are never mutated after creation, so reads need no concurrency
// control.
type LedgerEntryReader interface {
	// FindEntryByID retrieves a single entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindReversalOf retrieves the entry whose CounterpartyEntryID points at
	// entryID, or apperrors.ErrNotFound if the entry has not been reversed.
	FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccountID retrieves a page of entries for one account in
	// creation order (newest first) with an opaque token for the next page.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindAllEntriesByAccountID retrieves every entry for an account in
	// creation order (oldest first), for balance replay checks.
	FindAllEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
}

// LedgerEntryWriter appends entries atomically with the account mutation.
type LedgerEntryWriter interface {
	// AppendEntry writes the entry and moves the account balance to
	// entry.BalanceAfter in one database transaction, conditioned on the
	// account version still being expectedVersion. A version mismatch fails
	// with apperrors.ErrConcurrentModification and writes nothing: the entry
	// and the balance can never diverge.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry, expectedVersion int64) error
}

// LedgerRepositoryFacade combines ledger entry repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
