package services

import (
	"context"
	"time"

	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/dto"
)

// BursaryReaderSvc defines read operations for bursary data.
type BursaryReaderSvc interface {
	// GetBursaryByID retrieves a single bursary.
	GetBursaryByID(ctx context.Context, bursaryID string) (*domain.Bursary, error)

	// ListBursariesByStudent retrieves all bursaries for a student.
	ListBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error)

	// ListBursariesInEffect retrieves the bursaries applicable to a charge
	// computed at asOf.
	ListBursariesInEffect(ctx context.Context, studentID string, asOf time.Time) ([]domain.Bursary, error)
}

// BursaryWriterSvc defines management operations for bursaries. These are
// plain CRUD: they never touch accounts or ledger entries, and a change only
// affects charges computed after it.
type BursaryWriterSvc interface {
	CreateBursary(ctx context.Context, studentID string, req dto.CreateBursaryRequest, creatorUserID string) (*domain.Bursary, error)
	UpdateBursary(ctx context.Context, bursaryID string, req dto.UpdateBursaryRequest, actorUserID string) (*domain.Bursary, error)
	DeactivateBursary(ctx context.Context, bursaryID string, actorUserID string) error
}

// BursarySvcFacade combines all bursary service interfaces.
type BursarySvcFacade interface {
	BursaryReaderSvc
	BursaryWriterSvc
}
