package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	"github.com/campusfin/student_ledger_app/internal/models"
	"github.com/campusfin/student_ledger_app/internal/utils/mapping"
)

const bursaryColumns = `bursary_id, student_id, percentage, reason, start_date, end_date, active, created_at, created_by, last_updated_at, last_updated_by`

type PgxBursaryRepository struct {
	pool *pgxpool.Pool
}

// newPgxBursaryRepository creates a new repository for bursary data.
func newPgxBursaryRepository(pool *pgxpool.Pool) portsrepo.BursaryRepositoryFacade {
	return &PgxBursaryRepository{pool: pool}
}

// Ensure PgxBursaryRepository implements portsrepo.BursaryRepositoryFacade
var _ portsrepo.BursaryRepositoryFacade = (*PgxBursaryRepository)(nil)

func scanBursaries(rows pgx.Rows) ([]models.Bursary, error) {
	defer rows.Close()
	var bursaries []models.Bursary
	for rows.Next() {
		var m models.Bursary
		err := rows.Scan(
			&m.BursaryID,
			&m.StudentID,
			&m.Percentage,
			&m.Reason,
			&m.StartDate,
			&m.EndDate,
			&m.Active,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bursary row: %w", err)
		}
		bursaries = append(bursaries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bursary rows: %w", err)
	}
	return bursaries, nil
}

// SaveBursary inserts a new bursary.
func (r *PgxBursaryRepository) SaveBursary(ctx context.Context, bursary domain.Bursary) error {
	m := mapping.ToModelBursary(bursary)

	query := `
		INSERT INTO bursaries (` + bursaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BursaryID,
		m.StudentID,
		m.Percentage,
		m.Reason,
		m.StartDate,
		m.EndDate,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return fmt.Errorf("%w: bursary with ID %s already exists", apperrors.ErrDuplicate, m.BursaryID)
			case pgForeignKeyViolation:
				return apperrors.NewNotFoundError(fmt.Sprintf("student %s does not exist", m.StudentID))
			}
		}
		return fmt.Errorf("failed to save bursary %s: %w", m.BursaryID, err)
	}
	return nil
}

// UpdateBursary persists changes to an existing bursary.
func (r *PgxBursaryRepository) UpdateBursary(ctx context.Context, bursary domain.Bursary) error {
	m := mapping.ToModelBursary(bursary)

	query := `
		UPDATE bursaries
		SET percentage = $1, reason = $2, start_date = $3, end_date = $4, active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE bursary_id = $8;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.Percentage,
		m.Reason,
		m.StartDate,
		m.EndDate,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BursaryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bursary %s: %w", m.BursaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bursary %s not found", m.BursaryID))
	}
	return nil
}

// FindBursaryByID retrieves a bursary by its ID.
func (r *PgxBursaryRepository) FindBursaryByID(ctx context.Context, bursaryID string) (*domain.Bursary, error) {
	query := `SELECT ` + bursaryColumns + ` FROM bursaries WHERE bursary_id = $1;`

	rows, err := r.pool.Query(ctx, query, bursaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bursary %s: %w", bursaryID, err)
	}
	bursaries, err := scanBursaries(rows)
	if err != nil {
		return nil, err
	}
	if len(bursaries) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bursary %s not found", bursaryID))
	}

	d := mapping.ToDomainBursary(bursaries[0])
	return &d, nil
}

// ListBursariesByStudent retrieves all bursaries for a student, newest first.
func (r *PgxBursaryRepository) ListBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error) {
	query := `SELECT ` + bursaryColumns + ` FROM bursaries WHERE student_id = $1 ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bursaries for student %s: %w", studentID, err)
	}
	bursaries, err := scanBursaries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainBursarySlice(bursaries), nil
}

// ListActiveBursariesByStudent retrieves the active bursaries for a student.
// Date-window filtering happens in the service against the charge time.
func (r *PgxBursaryRepository) ListActiveBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error) {
	query := `SELECT ` + bursaryColumns + ` FROM bursaries WHERE student_id = $1 AND active = TRUE ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active bursaries for student %s: %w", studentID, err)
	}
	bursaries, err := scanBursaries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainBursarySlice(bursaries), nil
}
