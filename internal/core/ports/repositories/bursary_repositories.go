package repositories

import (
	"context"

	"github.com/campusfin/student_ledger_app/internal/core/domain"
)

// BursaryReader defines read operations for bursary data.
type BursaryReader interface {
	// FindBursaryByID retrieves a bursary by its ID.
	FindBursaryByID(ctx context.Context, bursaryID string) (*domain.Bursary, error)

	// ListBursariesByStudent retrieves all bursaries ever granted to a
	// student, active or not.
	ListBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error)

	// ListActiveBursariesByStudent retrieves the student's active bursaries.
	// Date-window filtering happens in the domain at charge time.
	ListActiveBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error)
}

// BursaryWriter defines write operations for bursary data.
type BursaryWriter interface {
	// SaveBursary inserts a new bursary.
	SaveBursary(ctx context.Context, bursary domain.Bursary) error

	// UpdateBursary updates an existing bursary record.
	UpdateBursary(ctx context.Context, bursary domain.Bursary) error
}

// BursaryRepositoryFacade combines bursary repository interfaces.
type BursaryRepositoryFacade interface {
	BursaryReader
	BursaryWriter
}
