package dto

import (
	"time"

	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBursaryRequest is the payload for granting a bursary to a student.
type CreateBursaryRequest struct {
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
	Reason     string          `json:"reason" binding:"required"`
	StartDate  time.Time       `json:"startDate" binding:"required"`
	EndDate    *time.Time      `json:"endDate"` // nil = open-ended
}

// UpdateBursaryRequest updates an existing bursary. Nil fields are left
// unchanged. Changes only affect charges computed after the update.
type UpdateBursaryRequest struct {
	Percentage *decimal.Decimal `json:"percentage"`
	Reason     *string          `json:"reason"`
	StartDate  *time.Time       `json:"startDate"`
	EndDate    *time.Time       `json:"endDate"`
}

// BursaryResponse defines the data returned for a bursary.
type BursaryResponse struct {
	BursaryID  string          `json:"bursaryID"`
	StudentID  string          `json:"studentID"`
	Percentage decimal.Decimal `json:"percentage"`
	Reason     string          `json:"reason"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"createdAt"`
	CreatedBy  string          `json:"createdBy"`
}

// ToBursaryResponse converts a domain.Bursary to its response DTO.
func ToBursaryResponse(b *domain.Bursary) BursaryResponse {
	return BursaryResponse{
		BursaryID:  b.BursaryID,
		StudentID:  b.StudentID,
		Percentage: b.Percentage,
		Reason:     b.Reason,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Active:     b.Active,
		CreatedAt:  b.CreatedAt,
		CreatedBy:  b.CreatedBy,
	}
}

// ToBursaryResponses converts a slice of bursaries to response DTOs.
func ToBursaryResponses(bursaries []domain.Bursary) []BursaryResponse {
	responses := make([]BursaryResponse, len(bursaries))
	for i := range bursaries {
		responses[i] = ToBursaryResponse(&bursaries[i])
	}
	return responses
}
