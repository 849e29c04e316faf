package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/campusfin/student_ledger_app/internal/middleware"
)

var oneHundred = decimal.NewFromInt(100)

// BursaryService manages discount policies. These are plain CRUD operations:
// they never touch accounts or ledger entries, and a created or deactivated
// bursary only affects charges computed after the change. There is no
// retroactive re-billing.
type BursaryService struct {
	bursaryRepo portsrepo.BursaryRepositoryFacade
}

// NewBursaryService creates a new BursaryService.
func NewBursaryService(bursaryRepo portsrepo.BursaryRepositoryFacade) *BursaryService {
	return &BursaryService{bursaryRepo: bursaryRepo}
}

// Ensure BursaryService implements the portssvc.BursarySvcFacade interface
var _ portssvc.BursarySvcFacade = (*BursaryService)(nil)

// validateBursary checks the percentage range and date window.
func validateBursary(percentage decimal.Decimal, startDate time.Time, endDate *time.Time) error {
	if !percentage.IsPositive() || percentage.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: bursary percentage must be in (0, 100], got %s", apperrors.ErrValidation, percentage)
	}
	if endDate != nil && endDate.Before(startDate) {
		return fmt.Errorf("%w: bursary end date %s is before start date %s",
			apperrors.ErrValidation, endDate.Format(time.DateOnly), startDate.Format(time.DateOnly))
	}
	return nil
}

// CreateBursary grants a new bursary to a student.
// Implements portssvc.BursaryWriterSvc.
func (s *BursaryService) CreateBursary(ctx context.Context, studentID string, req dto.CreateBursaryRequest, creatorUserID string) (*domain.Bursary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateBursary(req.Percentage, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bursary := domain.Bursary{
		BursaryID:  uuid.NewString(),
		StudentID:  studentID,
		Percentage: req.Percentage,
		Reason:     req.Reason,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Active:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bursaryRepo.SaveBursary(ctx, bursary); err != nil {
		logger.Error("Failed to save bursary", slog.String("student_id", studentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bursary: %w", err)
	}

	logger.Info("Bursary created",
		slog.String("bursary_id", bursary.BursaryID),
		slog.String("student_id", studentID),
		slog.String("percentage", req.Percentage.String()),
	)
	return &bursary, nil
}

// UpdateBursary updates an existing bursary. Only future charges see the
// change.
// Implements portssvc.BursaryWriterSvc.
func (s *BursaryService) UpdateBursary(ctx context.Context, bursaryID string, req dto.UpdateBursaryRequest, actorUserID string) (*domain.Bursary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bursary, err := s.bursaryRepo.FindBursaryByID(ctx, bursaryID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Percentage != nil {
		bursary.Percentage = *req.Percentage
		updated = true
	}
	if req.Reason != nil {
		bursary.Reason = *req.Reason
		updated = true
	}
	if req.StartDate != nil {
		bursary.StartDate = *req.StartDate
		updated = true
	}
	if req.EndDate != nil {
		bursary.EndDate = req.EndDate
		updated = true
	}
	if !updated {
		return bursary, nil
	}

	if err := validateBursary(bursary.Percentage, bursary.StartDate, bursary.EndDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bursary.LastUpdatedAt = now
	bursary.LastUpdatedBy = actorUserID

	if err := s.bursaryRepo.UpdateBursary(ctx, *bursary); err != nil {
		logger.Error("Failed to update bursary", slog.String("bursary_id", bursaryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update bursary: %w", err)
	}

	logger.Info("Bursary updated", slog.String("bursary_id", bursaryID))
	return bursary, nil
}

// DeactivateBursary marks a bursary inactive. Historical entries computed
// under it are untouched.
// Implements portssvc.BursaryWriterSvc.
func (s *BursaryService) DeactivateBursary(ctx context.Context, bursaryID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	bursary, err := s.bursaryRepo.FindBursaryByID(ctx, bursaryID)
	if err != nil {
		return err
	}
	if !bursary.Active {
		return fmt.Errorf("%w: bursary %s is already inactive", apperrors.ErrValidation, bursaryID)
	}

	now := time.Now().UTC()
	bursary.Active = false
	bursary.LastUpdatedAt = now
	bursary.LastUpdatedBy = actorUserID

	if err := s.bursaryRepo.UpdateBursary(ctx, *bursary); err != nil {
		logger.Error("Failed to deactivate bursary", slog.String("bursary_id", bursaryID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate bursary: %w", err)
	}

	logger.Info("Bursary deactivated", slog.String("bursary_id", bursaryID))
	return nil
}

// GetBursaryByID retrieves a single bursary.
// Implements portssvc.BursaryReaderSvc.
func (s *BursaryService) GetBursaryByID(ctx context.Context, bursaryID string) (*domain.Bursary, error) {
	return s.bursaryRepo.FindBursaryByID(ctx, bursaryID)
}

// ListBursariesByStudent retrieves all bursaries for a student.
// Implements portssvc.BursaryReaderSvc.
func (s *BursaryService) ListBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error) {
	bursaries, err := s.bursaryRepo.ListBursariesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bursaries for student %s: %w", studentID, err)
	}
	if bursaries == nil {
		bursaries = []domain.Bursary{}
	}
	return bursaries, nil
}

// ListBursariesInEffect retrieves the bursaries applicable to a charge
// computed at asOf.
// Implements portssvc.BursaryReaderSvc.
func (s *BursaryService) ListBursariesInEffect(ctx context.Context, studentID string, asOf time.Time) ([]domain.Bursary, error) {
	active, err := s.bursaryRepo.ListActiveBursariesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active bursaries for student %s: %w", studentID, err)
	}
	inEffect := make([]domain.Bursary, 0, len(active))
	for _, b := range active {
		if b.InEffect(asOf) {
			inEffect = append(inEffect, b)
		}
	}
	return inEffect, nil
}
