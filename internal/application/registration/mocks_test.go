package registration

import (
	"context"
	"sync"
	"time"

	campdomain "github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/identity"
	"github.com/camphq/backend/internal/domain/party"
	regdomain "github.com/camphq/backend/internal/domain/registration"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCampRepository is a mock implementation of camp.CampRepository
type MockCampRepository struct {
	mock.Mock
}

func (m *MockCampRepository) FindByID(ctx context.Context, id uuid.UUID) (*campdomain.Camp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campdomain.Camp), args.Error(1)
}

func (m *MockCampRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*campdomain.Camp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campdomain.Camp), args.Error(1)
}

func (m *MockCampRepository) FindBySlug(ctx context.Context, slug string) (*campdomain.Camp, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campdomain.Camp), args.Error(1)
}

func (m *MockCampRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]campdomain.Camp, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]campdomain.Camp), args.Error(1)
}

func (m *MockCampRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]campdomain.Camp, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]campdomain.Camp), args.Error(1)
}

func (m *MockCampRepository) Save(ctx context.Context, c *campdomain.Camp) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCampRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockAddonRepository is a mock implementation of camp.AddonRepository
type MockAddonRepository struct {
	mock.Mock
}

func (m *MockAddonRepository) FindByID(ctx context.Context, id uuid.UUID) (*campdomain.Addon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campdomain.Addon), args.Error(1)
}

func (m *MockAddonRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*campdomain.Addon, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campdomain.Addon), args.Error(1)
}

func (m *MockAddonRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]campdomain.Addon, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]campdomain.Addon), args.Error(1)
}

func (m *MockAddonRepository) Save(ctx context.Context, addon *campdomain.Addon) error {
	args := m.Called(ctx, addon)
	return args.Error(0)
}

func (m *MockAddonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPromoCodeRepository is a mock implementation of camp.PromoCodeRepository
type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*campdomain.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campdomain.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) FindByCodeForTenant(ctx context.Context, code string, tenantID uuid.UUID) (*campdomain.PromoCode, error) {
	args := m.Called(ctx, code, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campdomain.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]campdomain.PromoCode, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]campdomain.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) Save(ctx context.Context, promo *campdomain.PromoCode) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRegistrationRepository is a mock implementation of registration.Repository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*regdomain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*regdomain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*regdomain.Registration, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*regdomain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]regdomain.Registration, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]regdomain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]regdomain.Registration, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]regdomain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByCamp(ctx context.Context, campID uuid.UUID, filter shared.Filter) ([]regdomain.Registration, error) {
	args := m.Called(ctx, campID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]regdomain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]regdomain.Registration, error) {
	args := m.Called(ctx, profileID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]regdomain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindByStripeSession(ctx context.Context, sessionID string) ([]regdomain.Registration, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]regdomain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) CountActiveByCamp(ctx context.Context, campID uuid.UUID) (int64, error) {
	args := m.Called(ctx, campID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationRepository) Save(ctx context.Context, reg *regdomain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) AttachStripeSession(ctx context.Context, ids []uuid.UUID, sessionID string) error {
	args := m.Called(ctx, ids, sessionID)
	return args.Error(0)
}

func (m *MockRegistrationRepository) BulkCancel(ctx context.Context, ids []uuid.UUID, reason string) error {
	args := m.Called(ctx, ids, reason)
	return args.Error(0)
}

func (m *MockRegistrationRepository) FindMissingConfirmationNumber(ctx context.Context) ([]regdomain.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]regdomain.Registration), args.Error(1)
}

// MockTenantRepository is a mock implementation of identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindDefault(ctx context.Context) (*identity.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindEarliest(ctx context.Context) (*identity.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockProfileRepository is a mock implementation of party.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*party.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]party.Profile, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]party.Profile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *party.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockAthleteRepository is a mock implementation of party.AthleteRepository
type MockAthleteRepository struct {
	mock.Mock
}

func (m *MockAthleteRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Athlete, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Athlete), args.Error(1)
}

func (m *MockAthleteRepository) FindByIDForProfile(ctx context.Context, id, profileID uuid.UUID) (*party.Athlete, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Athlete), args.Error(1)
}

func (m *MockAthleteRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]party.Athlete, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]party.Athlete), args.Error(1)
}

func (m *MockAthleteRepository) FindByProfileAndName(ctx context.Context, profileID uuid.UUID, firstName, lastName string) (*party.Athlete, error) {
	args := m.Called(ctx, profileID, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Athlete), args.Error(1)
}

func (m *MockAthleteRepository) Save(ctx context.Context, athlete *party.Athlete) error {
	args := m.Called(ctx, athlete)
	return args.Error(0)
}

// MockPickupRepository is a mock implementation of party.AuthorizedPickupRepository
type MockPickupRepository struct {
	mock.Mock
}

func (m *MockPickupRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.AuthorizedPickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.AuthorizedPickup), args.Error(1)
}

func (m *MockPickupRepository) FindActiveByAthlete(ctx context.Context, athleteID uuid.UUID) ([]party.AuthorizedPickup, error) {
	args := m.Called(ctx, athleteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]party.AuthorizedPickup), args.Error(1)
}

func (m *MockPickupRepository) FindByAthleteAndName(ctx context.Context, athleteID uuid.UUID, name string) (*party.AuthorizedPickup, error) {
	args := m.Called(ctx, athleteID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.AuthorizedPickup), args.Error(1)
}

func (m *MockPickupRepository) Save(ctx context.Context, pickup *party.AuthorizedPickup) error {
	args := m.Called(ctx, pickup)
	return args.Error(0)
}

// MockPaymentGateway is a mock implementation of PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

// stubTxManager runs the transaction function directly against the supplied
// repositories, with no real transaction underneath
type stubTxManager struct {
	repos TxRepos
}

func (t *stubTxManager) InTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	return fn(ctx, t.repos)
}

// memoryIdempotencyStore is an in-memory IdempotencyStore for tests
type memoryIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{seen: make(map[string]bool)}
}

func (s *memoryIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], nil
}

func (s *memoryIdempotencyStore) Close() error {
	return nil
}
