package domain

import "time"

// Account is a student's running-balance record, the unit of serialized
// mutation in the ledger. Positive balance means the student owes the school,
// negative means the student is in credit. Accounts are created lazily the
// first time a student is charged or pays, and are never deleted.
type Account struct {
	AccountID string `json:"accountID"` // Primary Key (UUID)
	StudentID string `json:"studentID"` // FK -> students.student_id, one account per student
	Balance   Money  `json:"balance"`
	// Version increases by one on every mutation. Writes are conditioned on
	// the version observed at read time, which is what detects lost updates.
	Version     int64      `json:"version"`
	LastEntryAt *time.Time `json:"lastEntryAt,omitempty"`
	AuditFields
}
