package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/campusfin/student_ledger_app/internal/middleware"
)

// BulkService drives the ledger engine over a batch of students. Items are
// deliberately independent: one student's failure never aborts or rolls back
// a sibling's charge, and the caller always gets the complete tally. A school
// should never have 499 of 500 charges silently discarded because one student
// record was malformed.
type BulkService struct {
	engine      portssvc.LedgerWriterSvc
	accountRepo portsrepo.AccountRepositoryFacade
	bursaryRepo portsrepo.BursaryRepositoryFacade

	maxBatchSize int
	parallelism  int
	itemTimeout  time.Duration
}

// NewBulkService creates a new BulkService. maxBatchSize caps one call's
// worst-case latency; parallelism bounds how many accounts are charged at
// once; itemTimeout applies per item, never to the batch as a whole.
func NewBulkService(engine portssvc.LedgerWriterSvc, accountRepo portsrepo.AccountRepositoryFacade, bursaryRepo portsrepo.BursaryRepositoryFacade, maxBatchSize, parallelism int, itemTimeout time.Duration) *BulkService {
	if maxBatchSize <= 0 {
		maxBatchSize = 500
	}
	if parallelism <= 0 {
		parallelism = 8
	}
	return &BulkService{
		engine:       engine,
		accountRepo:  accountRepo,
		bursaryRepo:  bursaryRepo,
		maxBatchSize: maxBatchSize,
		parallelism:  parallelism,
		itemTimeout:  itemTimeout,
	}
}

// Ensure BulkService implements the portssvc.BulkSvcFacade interface
var _ portssvc.BulkSvcFacade = (*BulkService)(nil)

// itemResult is the outcome slot for one student in a bulk job.
type itemResult struct {
	outcome *domain.ChargeOutcome
	failure *domain.BulkFailure
}

// ChargeMany charges every listed student independently and in parallel,
// bounded by the configured parallelism. Cancellation is honored between
// items only: an item that has started runs to a definite success or failure.
// Implements portssvc.BulkSvcFacade.
func (s *BulkService) ChargeMany(ctx context.Context, req dto.BulkChargeRequest, actorUserID string) (*domain.BulkChargeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.StudentIDs) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d students exceeds the limit of %d",
			apperrors.ErrValidation, len(req.StudentIDs), s.maxBatchSize)
	}

	amount, err := domain.NewMoney(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: bulk charge amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	// A student listed twice must not be charged twice in one job.
	studentIDs := uniqueStrings(req.StudentIDs)

	results := make([]itemResult, len(studentIDs))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(s.parallelism)

	for i, studentID := range studentIDs {
		// Cancellation boundary: checked before starting the next student,
		// never mid-item.
		if ctxErr := ctx.Err(); ctxErr != nil {
			results[i] = itemResult{failure: &domain.BulkFailure{
				StudentID: studentID,
				Status:    domain.BulkItemPending,
				Reason:    fmt.Sprintf("batch cancelled before item started: %v", ctxErr),
			}}
			continue
		}

		i, studentID := i, studentID
		g.Go(func() error {
			res := s.chargeOne(ctx, studentID, amount, req.Description, req.ExternalReference, actorUserID)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; every failure lands in its own slot.
	_ = g.Wait()

	result := &domain.BulkChargeResult{TotalCharged: domain.ZeroMoney()}
	for _, res := range results {
		switch {
		case res.outcome != nil:
			result.Succeeded = append(result.Succeeded, *res.outcome)
			total, addErr := result.TotalCharged.Add(res.outcome.Amount)
			if addErr != nil {
				// The per-item amounts committed fine, so the tally alone
				// overflowing is practically unreachable; report it rather
				// than hiding charged items.
				return nil, fmt.Errorf("summing bulk total: %w", addErr)
			}
			result.TotalCharged = total
		case res.failure != nil:
			result.Failed = append(result.Failed, *res.failure)
		}
	}

	logger.Info("Bulk charge completed",
		slog.Int("requested", len(studentIDs)),
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)),
		slog.String("total_charged", result.TotalCharged.Display()),
	)
	return result, nil
}

// chargeOne runs one item through PENDING -> ACCOUNT_ENSURED -> CHARGED or
// FAILED. The failure record carries the stage the item reached.
func (s *BulkService) chargeOne(parent context.Context, studentID string, amount domain.Money, description, externalReference, actorUserID string) itemResult {
	ctx := parent
	if s.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.itemTimeout)
		defer cancel()
	}

	account, err := s.accountRepo.EnsureAccountForStudent(ctx, studentID, actorUserID, time.Now().UTC())
	if err != nil {
		return itemResult{failure: &domain.BulkFailure{
			StudentID: studentID,
			Status:    domain.BulkItemPending,
			Reason:    err.Error(),
		}}
	}

	policies, err := s.bursaryRepo.ListActiveBursariesByStudent(ctx, studentID)
	if err != nil {
		return itemResult{failure: &domain.BulkFailure{
			StudentID: studentID,
			Status:    domain.BulkItemAccountEnsured,
			Reason:    fmt.Sprintf("failed to look up bursaries: %v", err),
		}}
	}

	entry, err := s.engine.ChargeAccount(ctx, account.AccountID, amount, description, externalReference, actorUserID, policies)
	if err != nil {
		return itemResult{failure: &domain.BulkFailure{
			StudentID: studentID,
			Status:    domain.BulkItemAccountEnsured,
			Reason:    err.Error(),
		}}
	}

	return itemResult{outcome: &domain.ChargeOutcome{
		StudentID:     studentID,
		AccountID:     account.AccountID,
		EntryID:       entry.EntryID,
		Amount:        entry.Amount,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
	}}
}

// uniqueStrings returns a slice containing only the unique strings from the
// input, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
