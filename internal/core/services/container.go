package services

import (
	"time"

	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusfin/student_ledger_app/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Ledger   portssvc.LedgerSvcFacade
	Reversal portssvc.ReversalSvcFacade
	Bulk     portssvc.BulkSvcFacade
	Bursary  portssvc.BursarySvcFacade
}

// BulkOptions carries the operational limits for the bulk processor.
type BulkOptions struct {
	MaxBatchSize int
	Parallelism  int
	ItemTimeout  time.Duration
}

// NewContainer creates a new service container with properly initialized
// dependencies. The ledger engine and the reversal service reference each
// other, so they are wired in two steps.
func NewContainer(repos *portsrepo.RepositoryProvider, bulkOpts BulkOptions) *Container {
	ledger := NewLedgerService(repos.AccountRepo, repos.LedgerRepo, repos.BursaryRepo)
	reversal := NewReversalService(ledger, repos.LedgerRepo)
	ledger.AttachReversalService(reversal)

	return &Container{
		Ledger:   ledger,
		Reversal: reversal,
		Bulk:     NewBulkService(ledger, repos.AccountRepo, repos.BursaryRepo, bulkOpts.MaxBatchSize, bulkOpts.Parallelism, bulkOpts.ItemTimeout),
		Bursary:  NewBursaryService(repos.BursaryRepo),
	}
}
