package unitofwork

import "context"

// RepositoryFactory mints a request-scoped UnitOfWork; services hold the
// factory, never a long-lived unit.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
