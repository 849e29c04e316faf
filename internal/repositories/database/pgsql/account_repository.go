package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	"github.com/campusfin/student_ledger_app/internal/models"
	"github.com/campusfin/student_ledger_app/internal/utils/mapping"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const accountColumns = `account_id, student_id, balance, version, last_entry_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.StudentID,
		&m.Balance,
		&m.Version,
		&m.LastEntryAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// EnsureAccountForStudent returns the student's account, creating it with a
// zero balance on first use. The insert races safely: concurrent callers for
// the same student all converge on the single row guarded by the unique
// student_id constraint. A student unknown to the enrollment table surfaces
// as ErrNotFound.
func (r *PgxAccountRepository) EnsureAccountForStudent(ctx context.Context, studentID string, creatorUserID string, now time.Time) (*domain.Account, error) {
	insertQuery := `
		INSERT INTO accounts (account_id, student_id, balance, version, last_entry_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, 0, 1, NULL, $3, $4, $3, $4)
		ON CONFLICT (student_id) DO NOTHING;
	`
	_, err := r.pool.Exec(ctx, insertQuery, uuid.NewString(), studentID, now, creatorUserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("student %s does not exist", studentID))
		}
		return nil, fmt.Errorf("failed to provision account for student %s: %w", studentID, err)
	}

	return r.FindAccountByStudentID(ctx, studentID)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(*m)
	return &domainAcc, nil
}

// FindAccountByStudentID retrieves the account owned by a student.
func (r *PgxAccountRepository) FindAccountByStudentID(ctx context.Context, studentID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE student_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account for student %s not found", studentID))
		}
		return nil, fmt.Errorf("failed to find account for student %s: %w", studentID, err)
	}

	domainAcc := mapping.ToDomainAccount(*m)
	return &domainAcc, nil
}
