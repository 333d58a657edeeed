package camp

import (
	"context"
	"time"

	"github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CampService handles camp catalog operations: camps, addons, promo codes
type CampService struct {
	campRepo  camp.CampRepository
	addonRepo camp.AddonRepository
	promoRepo camp.PromoCodeRepository
	now       func() time.Time
}

// NewCampService creates a new CampService
func NewCampService(campRepo camp.CampRepository, addonRepo camp.AddonRepository, promoRepo camp.PromoCodeRepository) *CampService {
	return &CampService{
		campRepo:  campRepo,
		addonRepo: addonRepo,
		promoRepo: promoRepo,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests
func (s *CampService) WithClock(now func() time.Time) *CampService {
	s.now = now
	return s
}

// =============================================================================
// Camps
// =============================================================================

// Create creates a new camp
func (s *CampService) Create(ctx context.Context, req CreateCampRequest) (*CampResponse, error) {
	exists, err := s.campRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Camp with this slug already exists")
	}

	c, err := camp.NewCamp(req.Slug, req.Name, req.StartDate, req.EndDate, req.Capacity, req.BasePrice)
	if err != nil {
		return nil, err
	}

	c.Description = req.Description
	c.Location = req.Location

	if req.EarlyBirdPrice != nil && req.EarlyBirdDeadline != nil {
		if err := c.SetEarlyBird(*req.EarlyBirdPrice, *req.EarlyBirdDeadline); err != nil {
			return nil, err
		}
	}
	if req.TenantID != nil {
		if err := c.AssignTenant(*req.TenantID); err != nil {
			return nil, err
		}
	}

	if err := s.campRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCampResponse(c, s.now())
	return &response, nil
}

// GetByID retrieves a camp by ID
func (s *CampService) GetByID(ctx context.Context, id uuid.UUID) (*CampResponse, error) {
	c, err := s.campRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCampResponse(c, s.now())
	return &response, nil
}

// GetBySlug retrieves a camp by slug, the public discovery path
func (s *CampService) GetBySlug(ctx context.Context, slug string) (*CampResponse, error) {
	c, err := s.campRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	response := ToCampResponse(c, s.now())
	return &response, nil
}

// ListPublished lists camps open for registration
func (s *CampService) ListPublished(ctx context.Context, filter CampListFilter) ([]CampResponse, error) {
	domainFilter := s.toDomainFilter(filter)

	camps, err := s.campRepo.FindPublished(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]CampResponse, len(camps))
	for i := range camps {
		responses[i] = ToCampResponse(&camps[i], now)
	}
	return responses, nil
}

// ListForTenant lists all camps belonging to a tenant
func (s *CampService) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter CampListFilter) ([]CampResponse, error) {
	domainFilter := s.toDomainFilter(filter)

	camps, err := s.campRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]CampResponse, len(camps))
	for i := range camps {
		responses[i] = ToCampResponse(&camps[i], now)
	}
	return responses, nil
}

// Update updates a camp
func (s *CampService) Update(ctx context.Context, id uuid.UUID, req UpdateCampRequest) (*CampResponse, error) {
	c, err := s.campRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Update(req.Name, req.Description, req.Location, req.StartDate, req.EndDate, req.Capacity, req.BasePrice); err != nil {
		return nil, err
	}

	if req.EarlyBirdPrice != nil && req.EarlyBirdDeadline != nil {
		if err := c.SetEarlyBird(*req.EarlyBirdPrice, *req.EarlyBirdDeadline); err != nil {
			return nil, err
		}
	} else {
		c.ClearEarlyBird()
	}

	if err := s.campRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCampResponse(c, s.now())
	return &response, nil
}

// Publish opens a camp for registration
func (s *CampService) Publish(ctx context.Context, id uuid.UUID) (*CampResponse, error) {
	c, err := s.campRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Publish(); err != nil {
		return nil, err
	}
	if err := s.campRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCampResponse(c, s.now())
	return &response, nil
}

// Archive retires a camp
func (s *CampService) Archive(ctx context.Context, id uuid.UUID) (*CampResponse, error) {
	c, err := s.campRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Archive(); err != nil {
		return nil, err
	}
	if err := s.campRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCampResponse(c, s.now())
	return &response, nil
}

// =============================================================================
// Addons
// =============================================================================

// CreateAddon creates a new addon for a tenant
func (s *CampService) CreateAddon(ctx context.Context, tenantID uuid.UUID, req CreateAddonRequest) (*AddonResponse, error) {
	addon, err := camp.NewAddon(tenantID, req.Name, req.UnitPrice, req.IsTaxable)
	if err != nil {
		return nil, err
	}
	addon.Description = req.Description

	for _, v := range req.Variants {
		if _, err := addon.AddVariant(v.Name, v.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.addonRepo.Save(ctx, addon); err != nil {
		return nil, err
	}

	response := ToAddonResponse(addon)
	return &response, nil
}

// ListAddons lists the active addons for a tenant
func (s *CampService) ListAddons(ctx context.Context, tenantID uuid.UUID) ([]AddonResponse, error) {
	addons, err := s.addonRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]AddonResponse, len(addons))
	for i := range addons {
		responses[i] = ToAddonResponse(&addons[i])
	}
	return responses, nil
}

// UpdateAddon updates an addon
func (s *CampService) UpdateAddon(ctx context.Context, tenantID, addonID uuid.UUID, req UpdateAddonRequest) (*AddonResponse, error) {
	addon, err := s.addonRepo.FindByIDForTenant(ctx, addonID, tenantID)
	if err != nil {
		return nil, err
	}

	if err := addon.Update(req.Name, req.Description, req.UnitPrice, req.IsTaxable); err != nil {
		return nil, err
	}
	if err := s.addonRepo.Save(ctx, addon); err != nil {
		return nil, err
	}

	response := ToAddonResponse(addon)
	return &response, nil
}

// DeactivateAddon retires an addon from new registrations
func (s *CampService) DeactivateAddon(ctx context.Context, tenantID, addonID uuid.UUID) error {
	addon, err := s.addonRepo.FindByIDForTenant(ctx, addonID, tenantID)
	if err != nil {
		return err
	}

	addon.Deactivate()
	return s.addonRepo.Save(ctx, addon)
}

// =============================================================================
// Promo codes
// =============================================================================

// CreatePromoCode creates a new promo code for a tenant
func (s *CampService) CreatePromoCode(ctx context.Context, tenantID uuid.UUID, req CreatePromoCodeRequest) (*PromoCodeResponse, error) {
	existing, err := s.promoRepo.FindByCodeForTenant(ctx, camp.NormalizePromoCode(req.Code), tenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Promo code already exists for this tenant")
	}

	promo, err := camp.NewPromoCode(tenantID, req.Code, camp.PromoType(req.Type), req.Value, camp.PromoAppliesTo(req.AppliesTo))
	if err != nil {
		return nil, err
	}
	if req.StartsAt != nil || req.EndsAt != nil {
		if err := promo.SetWindow(req.StartsAt, req.EndsAt); err != nil {
			return nil, err
		}
	}

	if err := s.promoRepo.Save(ctx, promo); err != nil {
		return nil, err
	}

	response := ToPromoCodeResponse(promo)
	return &response, nil
}

// ListPromoCodes lists the promo codes for a tenant
func (s *CampService) ListPromoCodes(ctx context.Context, tenantID uuid.UUID, filter CampListFilter) ([]PromoCodeResponse, error) {
	promos, err := s.promoRepo.FindAllForTenant(ctx, tenantID, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]PromoCodeResponse, len(promos))
	for i := range promos {
		responses[i] = ToPromoCodeResponse(&promos[i])
	}
	return responses, nil
}

// ValidatePromoCode checks a code against the tenant scope and active window.
// Returns the code when redeemable, a domain error otherwise.
func (s *CampService) ValidatePromoCode(ctx context.Context, tenantID uuid.UUID, code string) (*PromoCodeResponse, error) {
	promo, err := s.promoRepo.FindByCodeForTenant(ctx, camp.NormalizePromoCode(code), tenantID)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, shared.NewDomainError("PROMO_NOT_FOUND", "Promo code not found")
	}
	if !promo.IsValidAt(s.now()) {
		return nil, shared.NewDomainError("PROMO_NOT_ACTIVE", "Promo code is not currently active")
	}

	response := ToPromoCodeResponse(promo)
	return &response, nil
}

// DeactivatePromoCode permanently disables a promo code
func (s *CampService) DeactivatePromoCode(ctx context.Context, tenantID, promoID uuid.UUID) error {
	promo, err := s.promoRepo.FindByID(ctx, promoID)
	if err != nil {
		return err
	}
	if promo.TenantID != tenantID {
		return shared.ErrForbidden
	}

	promo.Deactivate()
	return s.promoRepo.Save(ctx, promo)
}

func (s *CampService) toDomainFilter(filter CampListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
