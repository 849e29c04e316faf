package services_test

import (
	"context"
	"testing"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReversalServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockBursaryRepo *MockBursaryRepository
	engine          *services.LedgerService
	service         *services.ReversalService
}

func (suite *ReversalServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockBursaryRepo = new(MockBursaryRepository)
	suite.engine = services.NewLedgerService(suite.mockAccountRepo, suite.mockLedgerRepo, suite.mockBursaryRepo)
	suite.service = services.NewReversalService(suite.engine, suite.mockLedgerRepo)
	suite.engine.AttachReversalService(suite.service)
}

func (suite *ReversalServiceTestSuite) money(s string) domain.Money {
	m, err := domain.NewMoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func (suite *ReversalServiceTestSuite) TestReverseEntry_NotFound() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReverseEntry(ctx, "missing", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReversalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	original := &domain.LedgerEntry{
		EntryID:   "e1",
		AccountID: "acc-1",
		Kind:      domain.EntryCharge,
		Amount:    suite.money("100.00"),
	}
	existingID := "e2"
	existing := &domain.LedgerEntry{
		EntryID:             existingID,
		AccountID:           "acc-1",
		Kind:                domain.EntryPayment,
		Amount:              suite.money("100.00"),
		CounterpartyEntryID: &original.EntryID,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, "e1").Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindReversalOf", ctx, "e1").Return(existing, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, "e1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	suite.Contains(err.Error(), existingID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestReverseEntry_ChargeBecomesPayment() {
	ctx := context.Background()
	original := &domain.LedgerEntry{
		EntryID:       "e1",
		AccountID:     "acc-1",
		Kind:          domain.EntryCharge,
		Amount:        suite.money("150.00"),
		BalanceBefore: suite.money("0.00"),
		BalanceAfter:  suite.money("150.00"),
		Description:   "Term 1 tuition",
	}
	// Other activity happened since; the reversal works on the current balance.
	account := &domain.Account{
		AccountID: "acc-1",
		StudentID: "stu-001",
		Balance:   suite.money("210.00"),
		Version:   4,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, "e1").Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindReversalOf", ctx, "e1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(4)).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, "e1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPayment, reversal.Kind)
	suite.Equal("150.00", reversal.Amount.Display())
	suite.Equal("210.00", reversal.BalanceBefore.Display())
	suite.Equal("60.00", reversal.BalanceAfter.Display())
	suite.Require().NotNil(reversal.CounterpartyEntryID)
	suite.Equal("e1", *reversal.CounterpartyEntryID)
	suite.Contains(reversal.Description, "Term 1 tuition")
	suite.NotEqual(original.EntryID, reversal.EntryID)
}

func (suite *ReversalServiceTestSuite) TestReverseEntry_PaymentBecomesRefund() {
	ctx := context.Background()
	original := &domain.LedgerEntry{
		EntryID:       "p1",
		AccountID:     "acc-1",
		Kind:          domain.EntryPayment,
		Amount:        suite.money("150.00"),
		BalanceBefore: suite.money("150.00"),
		BalanceAfter:  suite.money("0.00"),
		Description:   "Term 1 settlement",
		Method:        "CASH",
	}
	account := &domain.Account{
		AccountID: "acc-1",
		StudentID: "stu-001",
		Balance:   suite.money("0.00"),
		Version:   3,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, "p1").Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindReversalOf", ctx, "p1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(3)).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, "p1", "bursar-1")

	// Undoing a payment restores the debt in full.
	suite.Require().NoError(err)
	suite.Equal(domain.EntryRefund, reversal.Kind)
	suite.Equal("150.00", reversal.Amount.Display())
	suite.Equal("150.00", reversal.BalanceAfter.Display())
	suite.Equal("CASH", reversal.Method)
}

func (suite *ReversalServiceTestSuite) TestReverseEntry_AdjustmentInverts() {
	ctx := context.Background()
	original := &domain.LedgerEntry{
		EntryID:       "a1",
		AccountID:     "acc-1",
		Kind:          domain.EntryAdjustment,
		Amount:        suite.money("30.00"),
		BalanceBefore: suite.money("80.00"),
		BalanceAfter:  suite.money("50.00"),
		Description:   "Write-off",
	}
	account := &domain.Account{
		AccountID: "acc-1",
		StudentID: "stu-001",
		Balance:   suite.money("50.00"),
		Version:   6,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, "a1").Return(original, nil).Once()
	suite.mockLedgerRepo.On("FindReversalOf", ctx, "a1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(6)).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, "a1", "admin-1")

	// The original wrote off 30.00; its reversal puts the 30.00 back.
	suite.Require().NoError(err)
	suite.Equal(domain.EntryAdjustment, reversal.Kind)
	suite.Equal("80.00", reversal.BalanceAfter.Display())
}

func (suite *ReversalServiceTestSuite) TestReverseViaEngine_Delegates() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.engine.Reverse(ctx, "missing", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReversalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReversalServiceTestSuite))
}
