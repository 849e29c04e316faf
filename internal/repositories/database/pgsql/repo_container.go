package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/campusfin/student_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql-backed repository over one shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(pool),
		LedgerRepo:  newPgxLedgerRepository(pool),
		BursaryRepo: newPgxBursaryRepository(pool),
	}
}
