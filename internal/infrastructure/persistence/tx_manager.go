package persistence

import (
	"context"

	appregistration "github.com/camphq/backend/internal/application/registration"
	"gorm.io/gorm"
)

// GormTxManager implements the checkout TxManager over a GORM database.
// Each InTx call opens one database transaction and hands the callback
// repositories bound to it, so every statement inside the callback shares
// the same transaction and row locks.
type GormTxManager struct {
	db *Database
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *Database) *GormTxManager {
	return &GormTxManager{db: db}
}

// InTx runs fn inside a database transaction with transaction-bound repositories
func (m *GormTxManager) InTx(ctx context.Context, fn func(ctx context.Context, repos appregistration.TxRepos) error) error {
	return m.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := appregistration.TxRepos{
			Camps:         NewGormCampRepository(tx),
			Registrations: NewGormRegistrationRepository(tx),
			Party: appregistration.NewPartyResolver(
				NewGormProfileRepository(tx),
				NewGormAthleteRepository(tx),
				NewGormAuthorizedPickupRepository(tx),
			),
		}
		return fn(ctx, repos)
	})
}
