package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/core/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByStudentID(ctx context.Context, studentID string) (*domain.Account, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) EnsureAccountForStudent(ctx context.Context, studentID string, creatorUserID string, now time.Time) (*domain.Account, error) {
	args := m.Called(ctx, studentID, creatorUserID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) FindAllEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry, expectedVersion int64) error {
	args := m.Called(ctx, entry, expectedVersion)
	return args.Error(0)
}

// MockBursaryRepository is a mock type for the BursaryRepositoryFacade interface
type MockBursaryRepository struct {
	mock.Mock
}

func (m *MockBursaryRepository) FindBursaryByID(ctx context.Context, bursaryID string) (*domain.Bursary, error) {
	args := m.Called(ctx, bursaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bursary), args.Error(1)
}

func (m *MockBursaryRepository) ListBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bursary), args.Error(1)
}

func (m *MockBursaryRepository) ListActiveBursariesByStudent(ctx context.Context, studentID string) ([]domain.Bursary, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bursary), args.Error(1)
}

func (m *MockBursaryRepository) SaveBursary(ctx context.Context, bursary domain.Bursary) error {
	args := m.Called(ctx, bursary)
	return args.Error(0)
}

func (m *MockBursaryRepository) UpdateBursary(ctx context.Context, bursary domain.Bursary) error {
	args := m.Called(ctx, bursary)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockBursaryRepo *MockBursaryRepository
	service         *services.LedgerService
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockBursaryRepo = new(MockBursaryRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockLedgerRepo, suite.mockBursaryRepo)
}

func mustMoneyStr(suite *LedgerServiceTestSuite, s string) domain.Money {
	m, err := domain.NewMoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func (suite *LedgerServiceTestSuite) newAccount(balance string, version int64) *domain.Account {
	return &domain.Account{
		AccountID: uuid.NewString(),
		StudentID: "stu-001",
		Balance:   mustMoneyStr(suite, balance),
		Version:   version,
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestApplyCharge_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.ChargeRequest{
		Amount:      decimal.NewFromInt(-5),
		Description: "Tuition",
	}

	_, err := suite.service.ApplyCharge(ctx, "stu-001", req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "EnsureAccountForStudent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestApplyCharge_AppliesBestBursary() {
	ctx := context.Background()
	account := suite.newAccount("0.00", 1)
	req := dto.ChargeRequest{
		Amount:      decimal.RequireFromString("200.00"),
		Description: "Term 1 tuition",
	}
	policies := []domain.Bursary{
		{Active: true, StartDate: time.Now().AddDate(0, -1, 0), Percentage: decimal.NewFromInt(10)},
		{Active: true, StartDate: time.Now().AddDate(0, -1, 0), Percentage: decimal.NewFromInt(25)},
	}

	suite.mockAccountRepo.On("EnsureAccountForStudent", ctx, "stu-001", "admin-1", mock.AnythingOfType("time.Time")).Return(account, nil).Once()
	suite.mockBursaryRepo.On("ListActiveBursariesByStudent", ctx, "stu-001").Return(policies, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(1)).Return(nil).Once()

	entry, err := suite.service.ApplyCharge(ctx, "stu-001", req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.EntryCharge, entry.Kind)
	// 25% is the best policy; discounts are never stacked.
	suite.Equal("150.00", entry.Amount.Display())
	suite.Equal("0.00", entry.BalanceBefore.Display())
	suite.Equal("150.00", entry.BalanceAfter.Display())
	suite.Equal("admin-1", entry.CreatedBy)
	suite.NotEmpty(entry.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyCharge_FullBursaryYieldsZeroEntry() {
	ctx := context.Background()
	account := suite.newAccount("40.00", 2)
	req := dto.ChargeRequest{
		Amount:      decimal.RequireFromString("80.00"),
		Description: "Lab fee",
	}
	policies := []domain.Bursary{
		{Active: true, StartDate: time.Now().AddDate(0, -1, 0), Percentage: decimal.NewFromInt(100)},
	}

	suite.mockAccountRepo.On("EnsureAccountForStudent", ctx, "stu-001", "admin-1", mock.AnythingOfType("time.Time")).Return(account, nil).Once()
	suite.mockBursaryRepo.On("ListActiveBursariesByStudent", ctx, "stu-001").Return(policies, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(2)).Return(nil).Once()

	entry, err := suite.service.ApplyCharge(ctx, "stu-001", req, "admin-1")

	// The zero-amount entry is still recorded for audit.
	suite.Require().NoError(err)
	suite.True(entry.Amount.IsZero())
	suite.Equal("40.00", entry.BalanceAfter.Display())
}

func (suite *LedgerServiceTestSuite) TestApplyCharge_RetriesOnVersionConflict() {
	ctx := context.Background()
	stale := suite.newAccount("0.00", 1)
	fresh := &domain.Account{
		AccountID: stale.AccountID,
		StudentID: stale.StudentID,
		Balance:   mustMoneyStr(suite, "30.00"),
		Version:   2,
	}
	req := dto.ChargeRequest{
		Amount:      decimal.RequireFromString("20.00"),
		Description: "Library fine",
	}

	suite.mockAccountRepo.On("EnsureAccountForStudent", ctx, "stu-001", "admin-1", mock.AnythingOfType("time.Time")).Return(stale, nil).Once()
	suite.mockBursaryRepo.On("ListActiveBursariesByStudent", ctx, "stu-001").Return([]domain.Bursary{}, nil).Once()

	// First attempt loses the race; the retry reads the fresh state and wins.
	suite.mockAccountRepo.On("FindAccountByID", ctx, stale.AccountID).Return(stale, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(1)).Return(apperrors.ErrConcurrentModification).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, stale.AccountID).Return(fresh, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(2)).Return(nil).Once()

	entry, err := suite.service.ApplyCharge(ctx, "stu-001", req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("30.00", entry.BalanceBefore.Display())
	suite.Equal("50.00", entry.BalanceAfter.Display())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyCharge_RetriesExhausted() {
	ctx := context.Background()
	account := suite.newAccount("0.00", 1)
	req := dto.ChargeRequest{
		Amount:      decimal.RequireFromString("20.00"),
		Description: "Sports levy",
	}

	suite.mockAccountRepo.On("EnsureAccountForStudent", ctx, "stu-001", "admin-1", mock.AnythingOfType("time.Time")).Return(account, nil).Once()
	suite.mockBursaryRepo.On("ListActiveBursariesByStudent", ctx, "stu-001").Return([]domain.Bursary{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil)
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(1)).Return(apperrors.ErrConcurrentModification)

	_, err := suite.service.ApplyCharge(ctx, "stu-001", req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
	// The retry budget is bounded; the repo is not hammered forever.
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "AppendEntry", 4)
}

func (suite *LedgerServiceTestSuite) TestApplyPayment_DecreasesBalance() {
	ctx := context.Background()
	account := suite.newAccount("150.00", 3)
	req := dto.PaymentRequest{
		Amount:      decimal.RequireFromString("150.00"),
		Description: "Term 1 settlement",
		Method:      "CASH",
	}

	suite.mockAccountRepo.On("EnsureAccountForStudent", ctx, "stu-001", "bursar-1", mock.AnythingOfType("time.Time")).Return(account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(3)).Return(nil).Once()

	entry, err := suite.service.ApplyPayment(ctx, "stu-001", req, "bursar-1")

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPayment, entry.Kind)
	suite.Equal("150.00", entry.Amount.Display())
	suite.Equal("0.00", entry.BalanceAfter.Display())
	suite.Equal("CASH", entry.Method)
	// Bursaries must never discount payments.
	suite.mockBursaryRepo.AssertNotCalled(suite.T(), "ListActiveBursariesByStudent", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestApplyAdjustment_RejectsZero() {
	ctx := context.Background()
	req := dto.AdjustmentRequest{
		Amount:      decimal.Zero,
		Description: "noop",
	}

	_, err := suite.service.ApplyAdjustment(ctx, "stu-001", req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestApplyAdjustment_NegativeDelta() {
	ctx := context.Background()
	account := suite.newAccount("80.00", 5)
	req := dto.AdjustmentRequest{
		Amount:      decimal.RequireFromString("-30.00"),
		Description: "Write-off",
	}

	suite.mockAccountRepo.On("EnsureAccountForStudent", ctx, "stu-001", "admin-1", mock.AnythingOfType("time.Time")).Return(account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.LedgerEntry"), int64(5)).Return(nil).Once()

	entry, err := suite.service.ApplyAdjustment(ctx, "stu-001", req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.EntryAdjustment, entry.Kind)
	// The entry records the magnitude; direction lives in the balances.
	suite.Equal("30.00", entry.Amount.Display())
	suite.Equal("50.00", entry.BalanceAfter.Display())
}

func (suite *LedgerServiceTestSuite) TestGetStatement_UnknownStudent() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByStudentID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetStatement(ctx, "ghost", dto.ListEntriesParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestGetStatement_ReturnsPage() {
	ctx := context.Background()
	account := suite.newAccount("150.00", 2)
	entries := []domain.LedgerEntry{
		{EntryID: "e1", AccountID: account.AccountID, Kind: domain.EntryCharge, Amount: mustMoneyStr(suite, "150.00")},
	}
	token := "next-page"

	suite.mockAccountRepo.On("FindAccountByStudentID", ctx, "stu-001").Return(account, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccountID", ctx, account.AccountID, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	statement, err := suite.service.GetStatement(ctx, "stu-001", dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Equal("stu-001", statement.StudentID)
	suite.True(statement.Balance.Equal(decimal.RequireFromString("150.00")))
	suite.Len(statement.Entries, 1)
	suite.Require().NotNil(statement.NextToken)
	suite.Equal(token, *statement.NextToken)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
