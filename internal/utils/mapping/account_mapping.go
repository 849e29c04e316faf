package mapping

import (
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		StudentID:   d.StudentID,
		Balance:     d.Balance.Decimal(),
		Version:     d.Version,
		LastEntryAt: d.LastEntryAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		StudentID:   m.StudentID,
		Balance:     domain.MoneyFromStored(m.Balance),
		Version:     m.Version,
		LastEntryAt: m.LastEntryAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
