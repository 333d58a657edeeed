package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/camphq/backend/internal/domain/registration"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockRegistrationRepository creates a GormRegistrationRepository with a mocked SQL connection
func newMockRegistrationRepository(t *testing.T) (*GormRegistrationRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormRegistrationRepository(gormDB), mock, mockDB
}

func registrationRows(regID, tenantID, campID uuid.UUID, status, sessionID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "camp_id", "profile_id", "athlete_id", "camper_index",
		"status", "base_price", "total", "stripe_checkout_session_id", "confirmation_number",
	}).AddRow(
		regID, tenantID, campID, uuid.New(), uuid.New(), 0,
		status, decimal.RequireFromString("200"), decimal.RequireFromString("200"), sessionID, "",
	)
}

func TestGormRegistrationRepository_FindByID(t *testing.T) {
	t.Run("finds existing registration", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		regID := uuid.New()
		tenantID := uuid.New()
		campID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "registrations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(regID, 1).
			WillReturnRows(registrationRows(regID, tenantID, campID, "pending", ""))
		mock.ExpectQuery(`SELECT \* FROM "registration_addons" WHERE "registration_addons"\."registration_id" = \$1`).
			WithArgs(regID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "registration_id"}))

		reg, err := repo.FindByID(context.Background(), regID)

		assert.NoError(t, err)
		assert.NotNil(t, reg)
		assert.Equal(t, regID, reg.ID)
		assert.Equal(t, registration.StatusPending, reg.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing registration", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		regID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "registrations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(regID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		reg, err := repo.FindByID(context.Background(), regID)

		assert.Error(t, err)
		assert.Nil(t, reg)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRegistrationRepository_CountActiveByCamp(t *testing.T) {
	t.Run("counts pending and confirmed only", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		campID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "registrations" WHERE camp_id = \$1 AND status IN \(\$2,\$3\)`).
			WithArgs(campID, registration.StatusPending, registration.StatusConfirmed).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

		count, err := repo.CountActiveByCamp(context.Background(), campID)

		assert.NoError(t, err)
		assert.Equal(t, int64(17), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRegistrationRepository_FindByStripeSession(t *testing.T) {
	t.Run("returns batch ordered by camper index", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		regID := uuid.New()
		tenantID := uuid.New()
		campID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "registrations" WHERE stripe_checkout_session_id = \$1 ORDER BY camper_index ASC`).
			WithArgs("cs_test_abc").
			WillReturnRows(registrationRows(regID, tenantID, campID, "pending", "cs_test_abc"))
		mock.ExpectQuery(`SELECT \* FROM "registration_addons" WHERE "registration_addons"\."registration_id" = \$1`).
			WithArgs(regID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "registration_id"}))

		regs, err := repo.FindByStripeSession(context.Background(), "cs_test_abc")

		assert.NoError(t, err)
		require.Len(t, regs, 1)
		assert.Equal(t, "cs_test_abc", regs[0].StripeCheckoutSessionID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty session id hits no query", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		regs, err := repo.FindByStripeSession(context.Background(), "")

		assert.NoError(t, err)
		assert.Empty(t, regs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRegistrationRepository_BulkCancel(t *testing.T) {
	t.Run("cancels every id in the batch", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		ids := []uuid.UUID{uuid.New(), uuid.New()}

		mock.ExpectExec(`UPDATE "registrations" SET`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.BulkCancel(context.Background(), ids, "payment session creation failed")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		err := repo.BulkCancel(context.Background(), nil, "unused")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRegistrationRepository_AttachStripeSession(t *testing.T) {
	t.Run("stamps session id on the batch", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		ids := []uuid.UUID{uuid.New(), uuid.New()}

		mock.ExpectExec(`UPDATE "registrations" SET "stripe_checkout_session_id"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.AttachStripeSession(context.Background(), ids, "cs_test_xyz")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		err := repo.AttachStripeSession(context.Background(), nil, "cs_test_xyz")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRegistrationRepository_FindMissingConfirmationNumber(t *testing.T) {
	t.Run("scans pending and confirmed rows missing a number", func(t *testing.T) {
		repo, mock, mockDB := newMockRegistrationRepository(t)
		defer mockDB.Close()

		regID := uuid.New()
		tenantID := uuid.New()
		campID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "registrations" WHERE status IN \(\$1,\$2\) AND \(confirmation_number IS NULL OR confirmation_number = ''\) ORDER BY created_at ASC`).
			WithArgs(registration.StatusPending, registration.StatusConfirmed).
			WillReturnRows(registrationRows(regID, tenantID, campID, "confirmed", "cs_test_abc"))

		regs, err := repo.FindMissingConfirmationNumber(context.Background())

		assert.NoError(t, err)
		require.Len(t, regs, 1)
		assert.Equal(t, registration.StatusConfirmed, regs[0].Status)
		assert.Empty(t, regs[0].ConfirmationNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
