package repositories

import (
	"context"
	"time"

	"github.com/campusfin/student_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByStudentID retrieves the account for a student, or
	// apperrors.ErrNotFound if the student has never had one provisioned.
	FindAccountByStudentID(ctx context.Context, studentID string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// EnsureAccountForStudent returns the student's account, creating it
	// with a zero balance if it does not exist yet. Fails with
	// apperrors.ErrNotFound when the student itself is unknown.
	EnsureAccountForStudent(ctx context.Context, studentID string, creatorUserID string, now time.Time) (*domain.Account, error)
}

// AccountRepositoryFacade combines account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
