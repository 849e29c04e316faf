package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/campusfin/student_ledger_app/internal/apperrors"
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/core/services"
	"github.com/campusfin/student_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BursaryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBursaryRepository
	service  *services.BursaryService
}

func (suite *BursaryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBursaryRepository)
	suite.service = services.NewBursaryService(suite.mockRepo)
}

func (suite *BursaryServiceTestSuite) TestCreateBursary_Success() {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateBursaryRequest{
		Percentage: decimal.NewFromInt(40),
		Reason:     "Staff child discount",
		StartDate:  start,
	}

	suite.mockRepo.On("SaveBursary", ctx, mock.AnythingOfType("domain.Bursary")).Return(nil).Once()

	bursary, err := suite.service.CreateBursary(ctx, "stu-001", req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(bursary)
	suite.NotEmpty(bursary.BursaryID)
	suite.Equal("stu-001", bursary.StudentID)
	suite.True(bursary.Active)
	suite.Nil(bursary.EndDate)
	suite.Equal("admin-1", bursary.CreatedBy)
	suite.WithinDuration(time.Now(), bursary.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BursaryServiceTestSuite) TestCreateBursary_RejectsBadPercentage() {
	ctx := context.Background()
	start := time.Now()

	for _, pct := range []int64{0, -10, 101} {
		req := dto.CreateBursaryRequest{
			Percentage: decimal.NewFromInt(pct),
			Reason:     "bad",
			StartDate:  start,
		}
		_, err := suite.service.CreateBursary(ctx, "stu-001", req, "admin-1")
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBursary", mock.Anything, mock.Anything)
}

func (suite *BursaryServiceTestSuite) TestCreateBursary_RejectsInvertedWindow() {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	req := dto.CreateBursaryRequest{
		Percentage: decimal.NewFromInt(25),
		Reason:     "bad window",
		StartDate:  start,
		EndDate:    &end,
	}

	_, err := suite.service.CreateBursary(ctx, "stu-001", req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BursaryServiceTestSuite) TestUpdateBursary_ValidatesMergedState() {
	ctx := context.Background()
	existing := &domain.Bursary{
		BursaryID:  "b1",
		StudentID:  "stu-001",
		Percentage: decimal.NewFromInt(25),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}
	bad := decimal.NewFromInt(150)
	req := dto.UpdateBursaryRequest{Percentage: &bad}

	suite.mockRepo.On("FindBursaryByID", ctx, "b1").Return(existing, nil).Once()

	_, err := suite.service.UpdateBursary(ctx, "b1", req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBursary", mock.Anything, mock.Anything)
}

func (suite *BursaryServiceTestSuite) TestUpdateBursary_NoFieldsIsNoop() {
	ctx := context.Background()
	existing := &domain.Bursary{
		BursaryID:  "b1",
		StudentID:  "stu-001",
		Percentage: decimal.NewFromInt(25),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}

	suite.mockRepo.On("FindBursaryByID", ctx, "b1").Return(existing, nil).Once()

	bursary, err := suite.service.UpdateBursary(ctx, "b1", dto.UpdateBursaryRequest{}, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(existing, bursary)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBursary", mock.Anything, mock.Anything)
}

func (suite *BursaryServiceTestSuite) TestDeactivateBursary_Success() {
	ctx := context.Background()
	existing := &domain.Bursary{
		BursaryID:  "b1",
		StudentID:  "stu-001",
		Percentage: decimal.NewFromInt(25),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}

	suite.mockRepo.On("FindBursaryByID", ctx, "b1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBursary", ctx, mock.MatchedBy(func(b domain.Bursary) bool {
		return b.BursaryID == "b1" && !b.Active && b.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	err := suite.service.DeactivateBursary(ctx, "b1", "admin-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BursaryServiceTestSuite) TestDeactivateBursary_AlreadyInactive() {
	ctx := context.Background()
	existing := &domain.Bursary{
		BursaryID: "b1",
		StudentID: "stu-001",
		Active:    false,
	}

	suite.mockRepo.On("FindBursaryByID", ctx, "b1").Return(existing, nil).Once()

	err := suite.service.DeactivateBursary(ctx, "b1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBursary", mock.Anything, mock.Anything)
}

func (suite *BursaryServiceTestSuite) TestListBursariesInEffect_FiltersWindow() {
	ctx := context.Background()
	now := time.Now().UTC()
	expired := now.AddDate(0, -1, 0)
	active := []domain.Bursary{
		{BursaryID: "current", Active: true, StartDate: now.AddDate(0, -2, 0), Percentage: decimal.NewFromInt(20)},
		{BursaryID: "ended", Active: true, StartDate: now.AddDate(0, -6, 0), EndDate: &expired, Percentage: decimal.NewFromInt(50)},
	}

	suite.mockRepo.On("ListActiveBursariesByStudent", ctx, "stu-001").Return(active, nil).Once()

	inEffect, err := suite.service.ListBursariesInEffect(ctx, "stu-001", now)

	suite.Require().NoError(err)
	suite.Require().Len(inEffect, 1)
	suite.Equal("current", inEffect[0].BursaryID)
}

func TestBursaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BursaryServiceTestSuite))
}
