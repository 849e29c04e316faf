package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	"github.com/campusfin/student_ledger_app/internal/middleware"
	"github.com/campusfin/student_ledger_app/internal/models"
	"github.com/campusfin/student_ledger_app/internal/utils/mapping"
	"github.com/campusfin/student_ledger_app/internal/utils/pagination"
)

const entryColumns = `entry_id, account_id, kind, amount, balance_before, balance_after, description, method, external_reference, counterparty_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()
	var entries []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.AccountID,
			&m.Kind,
			&m.Amount,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.Description,
			&m.Method,
			&m.ExternalReference,
			&m.CounterpartyEntryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// AppendEntry commits one balance mutation atomically: the account row is
// updated conditioned on expectedVersion and the entry is inserted in the
// same transaction, so either both land or neither does. A version mismatch
// surfaces as ErrConcurrentModification; a second reversal referencing the
// same original trips the unique counterparty index and surfaces as
// ErrAlreadyReversed.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry, expectedVersion int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	m := mapping.ToModelLedgerEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to rollback transaction for AppendEntry", slog.String("error", rbErr.Error()))
		}
	}()

	updateQuery := `
		UPDATE accounts
		SET balance = $1, version = version + 1, last_entry_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4 AND version = $5;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.BalanceAfter,
		m.CreatedAt,
		m.CreatedBy,
		m.AccountID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s balance: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing account from a version conflict.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, m.AccountID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check account %s existence: %w", m.AccountID, err)
		}
		if !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", m.AccountID))
		}
		return fmt.Errorf("%w: account %s version %d is stale", apperrors.ErrConcurrentModification, m.AccountID, expectedVersion)
	}

	insertQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.EntryID,
		m.AccountID,
		m.Kind,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Description,
		m.Method,
		m.ExternalReference,
		m.CounterpartyEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if pgErr.ConstraintName == "uq_ledger_entries_counterparty" && m.CounterpartyEntryID != nil {
				return fmt.Errorf("%w: entry %s already has a reversal", apperrors.ErrAlreadyReversed, *m.CounterpartyEntryID)
			}
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry %s: %w", entryID, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
	}

	d := mapping.ToDomainLedgerEntry(entries[0])
	return &d, nil
}

// FindReversalOf retrieves the entry that reversed the given entry, if any.
// The unique counterparty index guarantees at most one row.
func (r *PgxLedgerRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE counterparty_entry_id = $1;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reversal of entry %s: %w", entryID, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no reversal of entry %s", entryID))
	}

	d := mapping.ToDomainLedgerEntry(entries[0])
	return &d, nil
}

// ListEntriesByAccountID retrieves a page of entries for an account, newest
// first, with a keyset cursor on (created_at, entry_id).
func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := []interface{}{accountID}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1`

	if nextToken != nil && *nextToken != "" {
		createdAt, entryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, createdAt, entryID)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		tok := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		newToken = &tok
	}

	return mapping.ToDomainLedgerEntrySlice(entries), newToken, nil
}

// FindAllEntriesByAccountID retrieves the complete entry history of an
// account in application order, oldest first. Used for balance replay.
func (r *PgxLedgerRepository) FindAllEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1 ORDER BY created_at ASC, entry_id ASC;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query all entries for account %s: %w", accountID, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}
