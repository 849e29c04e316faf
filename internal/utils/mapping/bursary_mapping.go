package mapping

import (
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/models"
)

// ToModelBursary converts a domain Bursary to a model Bursary
func ToModelBursary(d domain.Bursary) models.Bursary {
	return models.Bursary{
		BursaryID:   d.BursaryID,
		StudentID:   d.StudentID,
		Percentage:  d.Percentage,
		Reason:      d.Reason,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Active:      d.Active,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBursary converts a model Bursary to a domain Bursary
func ToDomainBursary(m models.Bursary) domain.Bursary {
	return domain.Bursary{
		BursaryID:   m.BursaryID,
		StudentID:   m.StudentID,
		Percentage:  m.Percentage,
		Reason:      m.Reason,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBursarySlice converts a slice of model Bursaries to a slice of domain Bursaries
func ToDomainBursarySlice(ms []models.Bursary) []domain.Bursary {
	ds := make([]domain.Bursary, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBursary(m)
	}
	return ds
}
