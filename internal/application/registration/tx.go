package registration

import (
	"context"

	"github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/registration"
)

// TxRepos bundles the repositories bound to one database transaction.
// The party resolver inside it shares the same transaction.
type TxRepos struct {
	Camps         camp.CampRepository
	Registrations registration.Repository
	Party         *PartyResolver
}

// TxManager runs a function inside a database transaction, handing it
// transaction-bound repositories. Implemented over GORM in
// infrastructure/persistence.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
