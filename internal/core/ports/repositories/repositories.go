package repositories

// RepositoryProvider bundles the repositories a service container needs.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	LedgerRepo  LedgerRepositoryFacade
	BursaryRepo BursaryRepositoryFacade
}
