package mapping

import (
	"github.com/campusfin/student_ledger_app/internal/core/domain"
	"github.com/campusfin/student_ledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:             d.EntryID,
		AccountID:           d.AccountID,
		Kind:                models.EntryKind(d.Kind),
		Amount:              d.Amount.Decimal(),
		BalanceBefore:       d.BalanceBefore.Decimal(),
		BalanceAfter:        d.BalanceAfter.Decimal(),
		Description:         d.Description,
		Method:              d.Method,
		ExternalReference:   d.ExternalReference,
		CounterpartyEntryID: d.CounterpartyEntryID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:             m.EntryID,
		AccountID:           m.AccountID,
		Kind:                domain.EntryKind(m.Kind),
		Amount:              domain.MoneyFromStored(m.Amount),
		BalanceBefore:       domain.MoneyFromStored(m.BalanceBefore),
		BalanceAfter:        domain.MoneyFromStored(m.BalanceAfter),
		Description:         m.Description,
		Method:              m.Method,
		ExternalReference:   m.ExternalReference,
		CounterpartyEntryID: m.CounterpartyEntryID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to a slice of domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
