package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/campusfin/student_ledger_app/internal/middleware"
)

// maxApplyAttempts bounds the optimistic-concurrency retry loop. A conflict
// is retried with a fresh read; once the budget is spent the operation fails
// with ErrConcurrentModification and the caller may retry the whole call.
const maxApplyAttempts = 4

const defaultStatementLimit = 20

// LedgerService is the transactional core of the student financial ledger.
// It validates, computes, mutates the account and appends the entry, with
// every mutating call on a given account serialized via version-checked
// conditional writes. Charges on different accounts never block each other.
type LedgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	bursaryRepo portsrepo.BursaryRepositoryFacade
	reversal    portssvc.ReversalSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, bursaryRepo portsrepo.BursaryRepositoryFacade) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		bursaryRepo: bursaryRepo,
	}
}

// Ensure LedgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// AttachReversalService wires the reversal service in after construction;
// the two services reference each other by design (reversals are applied
// through the engine, and the engine exposes reverse as its mutation surface).
func (s *LedgerService) AttachReversalService(reversal portssvc.ReversalSvcFacade) {
	s.reversal = reversal
}

// ledgerMutation is one fully-computed balance change ready to commit.
type ledgerMutation struct {
	accountID           string
	kind                domain.EntryKind
	amount              domain.Money // non-negative magnitude recorded on the entry
	signedDelta         domain.Money // actual balance movement
	description         string
	method              string
	externalReference   string
	counterpartyEntryID *string
	actorUserID         string
}

// applyMutation runs the read-compute-write cycle: load the account and its
// version, derive the new balance, and commit entry plus balance change in
// one atomic unit conditioned on the version being unchanged. On conflict it
// retries with a fresh read up to maxApplyAttempts times.
func (s *LedgerService) applyMutation(ctx context.Context, m ledgerMutation) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		account, err := s.accountRepo.FindAccountByID(ctx, m.accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to load account %s: %w", m.accountID, err)
		}

		newBalance, err := account.Balance.Add(m.signedDelta)
		if err != nil {
			// Overflow is caller-fixable, never retried.
			return nil, fmt.Errorf("computing new balance for account %s: %w", m.accountID, err)
		}

		now := time.Now().UTC()
		entry := domain.LedgerEntry{
			EntryID:             uuid.NewString(),
			AccountID:           m.accountID,
			Kind:                m.kind,
			Amount:              m.amount,
			BalanceBefore:       account.Balance,
			BalanceAfter:        newBalance,
			Description:         m.description,
			Method:              m.method,
			ExternalReference:   m.externalReference,
			CounterpartyEntryID: m.counterpartyEntryID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     m.actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: m.actorUserID,
			},
		}

		err = s.ledgerRepo.AppendEntry(ctx, entry, account.Version)
		if err == nil {
			logger.Info("Ledger entry applied",
				slog.String("entry_id", entry.EntryID),
				slog.String("account_id", m.accountID),
				slog.String("kind", string(m.kind)),
				slog.String("amount", m.amount.Display()),
				slog.String("balance_after", newBalance.Display()),
			)
			return &entry, nil
		}
		if errors.Is(err, apperrors.ErrConcurrentModification) {
			logger.Debug("Version conflict applying ledger entry, retrying",
				slog.String("account_id", m.accountID),
				slog.Int("attempt", attempt),
			)
			continue
		}
		return nil, err
	}

	logger.Warn("Ledger mutation retries exhausted", slog.String("account_id", m.accountID))
	return nil, fmt.Errorf("%w: account %s still contended after %d attempts",
		apperrors.ErrConcurrentModification, m.accountID, maxApplyAttempts)
}

// ChargeAccount charges a known account with caller-supplied bursary
// policies. The effective amount is the gross amount minus the single
// highest applicable percentage ("best-of" selection; discounts are not
// stacked). A 100% bursary yields a zero-amount entry, kept for audit.
// Implements portssvc.LedgerWriterSvc.
func (s *LedgerService) ChargeAccount(ctx context.Context, accountID string, amount domain.Money, description, externalReference, actorUserID string, policies []domain.Bursary) (*domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: charge amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}

	percentage := domain.BestApplicablePercentage(policies, time.Now().UTC())
	discount, err := amount.PercentageOf(percentage)
	if err != nil {
		return nil, fmt.Errorf("computing discount for account %s: %w", accountID, err)
	}
	effective, err := amount.Sub(discount)
	if err != nil {
		return nil, fmt.Errorf("computing effective charge for account %s: %w", accountID, err)
	}

	return s.applyMutation(ctx, ledgerMutation{
		accountID:         accountID,
		kind:              domain.EntryCharge,
		amount:            effective,
		signedDelta:       effective,
		description:       description,
		externalReference: externalReference,
		actorUserID:       actorUserID,
	})
}

// ApplyCharge adds a charge to a student's account, provisioning the account
// on first use and applying the student's in-effect bursaries.
// Implements portssvc.LedgerWriterSvc.
func (s *LedgerService) ApplyCharge(ctx context.Context, studentID string, req dto.ChargeRequest, actorUserID string) (*domain.LedgerEntry, error) {
	amount, err := domain.NewMoney(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: charge amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	account, err := s.accountRepo.EnsureAccountForStudent(ctx, studentID, actorUserID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account for student %s: %w", studentID, err)
	}

	policies, err := s.bursaryRepo.ListActiveBursariesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bursaries for student %s: %w", studentID, err)
	}

	return s.ChargeAccount(ctx, account.AccountID, amount, req.Description, req.ExternalReference, actorUserID, policies)
}

// ApplyPayment records a payment against a student's account. The full
// amount always applies; bursaries never discount payments.
// Implements portssvc.LedgerWriterSvc.
func (s *LedgerService) ApplyPayment(ctx context.Context, studentID string, req dto.PaymentRequest, actorUserID string) (*domain.LedgerEntry, error) {
	amount, err := domain.NewMoney(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	account, err := s.accountRepo.EnsureAccountForStudent(ctx, studentID, actorUserID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account for student %s: %w", studentID, err)
	}

	return s.applyMutation(ctx, ledgerMutation{
		accountID:         account.AccountID,
		kind:              domain.EntryPayment,
		amount:            amount,
		signedDelta:       amount.Neg(),
		description:       req.Description,
		method:            req.Method,
		externalReference: req.ExternalReference,
		actorUserID:       actorUserID,
	})
}

// ApplyAdjustment records a signed correction. Positive amounts increase the
// balance, negative amounts decrease it; zero is rejected.
// Implements portssvc.LedgerWriterSvc.
func (s *LedgerService) ApplyAdjustment(ctx context.Context, studentID string, req dto.AdjustmentRequest, actorUserID string) (*domain.LedgerEntry, error) {
	delta, err := domain.NewMoney(req.Amount)
	if err != nil {
		return nil, err
	}
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: adjustment amount must be non-zero", apperrors.ErrInvalidAmount)
	}

	account, err := s.accountRepo.EnsureAccountForStudent(ctx, studentID, actorUserID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account for student %s: %w", studentID, err)
	}

	return s.applyMutation(ctx, ledgerMutation{
		accountID:   account.AccountID,
		kind:        domain.EntryAdjustment,
		amount:      delta.Abs(),
		signedDelta: delta,
		description: req.Description,
		actorUserID: actorUserID,
	})
}

// Reverse appends the counter-entry negating a prior entry. Delegated to the
// ReversalService, which funnels the inverse back through applyMutation so
// reversals get the same atomicity and serialization as any other mutation.
// Implements portssvc.LedgerWriterSvc.
func (s *LedgerService) Reverse(ctx context.Context, entryID string, actorUserID string) (*domain.LedgerEntry, error) {
	if s.reversal == nil {
		return nil, errors.New("reversal service not attached")
	}
	return s.reversal.ReverseEntry(ctx, entryID, actorUserID)
}

// GetStatement retrieves the current balance and a page of entries for a
// student's account. Entry history is append-only, so this read needs no
// locking and may run alongside mutations.
// Implements portssvc.StatementReaderSvc.
func (s *LedgerService) GetStatement(ctx context.Context, studentID string, params dto.ListEntriesParams) (*dto.StatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByStudentID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for statement", slog.String("student_id", studentID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find account for student %s: %w", studentID, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultStatementLimit
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccountID(ctx, account.AccountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries for statement", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	return &dto.StatementResponse{
		StudentID:   account.StudentID,
		AccountID:   account.AccountID,
		Balance:     account.Balance.Decimal(),
		LastEntryAt: account.LastEntryAt,
		Entries:     dto.ToEntryResponses(entries),
		NextToken:   nextToken,
	}, nil
}
