package identity

import (
	"context"
	"errors"

	campdomain "github.com/camphq/backend/internal/domain/camp"
	"github.com/camphq/backend/internal/domain/identity"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fallback identity used when checkout finds no tenant anywhere
const (
	fallbackTenantCode = "DEFAULT"
	fallbackTenantName = "Default Organization"
	fallbackTenantSlug = "default"
)

// TenantService handles tenant management and checkout tenant resolution
type TenantService struct {
	tenantRepo identity.TenantRepository
	campRepo   campdomain.CampRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo identity.TenantRepository, campRepo campdomain.CampRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		campRepo:   campRepo,
	}
}

// Create creates a new tenant
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	exists, err := s.tenantRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this code already exists")
	}

	exists, err = s.tenantRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this slug already exists")
	}

	tenant, err := identity.NewTenant(req.Code, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.ContactPhone != "" || req.ContactEmail != "" {
		if err := tenant.SetContact(req.ContactName, req.ContactPhone, req.ContactEmail); err != nil {
			return nil, err
		}
	}
	if req.TaxRatePercent != nil {
		if err := tenant.SetTaxRate(*req.TaxRatePercent); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		tenant.SetNotes(req.Notes)
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetBySlug retrieves a tenant by slug
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// List retrieves tenants with filtering and pagination
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) ([]TenantResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search

	var tenants []identity.Tenant
	var err error
	if filter.Status != "" {
		tenants, err = s.tenantRepo.FindByStatus(ctx, identity.TenantStatus(filter.Status), domainFilter)
	} else {
		tenants, err = s.tenantRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = ToTenantResponse(&tenants[i])
	}
	return responses, total, nil
}

// Update updates a tenant's basic details
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := tenant.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.ContactPhone != nil || req.ContactEmail != nil {
		contactName := tenant.ContactName
		contactPhone := tenant.ContactPhone
		contactEmail := tenant.ContactEmail
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.ContactPhone != nil {
			contactPhone = *req.ContactPhone
		}
		if req.ContactEmail != nil {
			contactEmail = *req.ContactEmail
		}
		if err := tenant.SetContact(contactName, contactPhone, contactEmail); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		tenant.SetNotes(*req.Notes)
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// SetTaxRate changes a tenant's sales tax rate
func (s *TenantService) SetTaxRate(ctx context.Context, id uuid.UUID, req SetTaxRateRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tenant.SetTaxRate(req.TaxRatePercent); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// SetStatus activates, deactivates, or suspends a tenant
func (s *TenantService) SetStatus(ctx context.Context, id uuid.UUID, status identity.TenantStatus) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case identity.TenantStatusActive:
		err = tenant.Activate()
	case identity.TenantStatusInactive:
		err = tenant.Deactivate()
	case identity.TenantStatusSuspended:
		err = tenant.Suspend()
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Unknown tenant status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// MarkDefault makes the tenant the default for checkout resolution,
// unmarking any previous default.
func (s *TenantService) MarkDefault(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous, err := s.tenantRepo.FindDefault(ctx)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if previous != nil && previous.ID != tenant.ID {
		previous.UnmarkDefault()
		if err := s.tenantRepo.Save(ctx, previous); err != nil {
			return nil, err
		}
	}

	tenant.MarkDefault()
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// ResolveForCheckout finds the tenant a checkout should bill under and
// persists it back onto the camp so later checkouts skip the chain.
//
// The chain: explicit tenant id, the camp's tenant, the well-known default
// slugs, the marked default, the earliest-created tenant, and as a last
// resort a freshly created default tenant.
func (s *TenantService) ResolveForCheckout(ctx context.Context, c *campdomain.Camp, explicitTenantID *uuid.UUID) (*identity.Tenant, error) {
	log := logger.FromContext(ctx)

	tenant, err := s.resolveTenant(ctx, c, explicitTenantID)
	if err != nil {
		return nil, err
	}

	if !c.HasTenant() || c.TenantID != tenant.ID {
		if err := c.AssignTenant(tenant.ID); err != nil {
			return nil, err
		}
		if err := s.campRepo.Save(ctx, c); err != nil {
			return nil, err
		}
		log.Info("assigned tenant to camp",
			zap.String("camp_id", c.ID.String()),
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("tenant_slug", tenant.Slug))
	}

	return tenant, nil
}

func (s *TenantService) resolveTenant(ctx context.Context, c *campdomain.Camp, explicitTenantID *uuid.UUID) (*identity.Tenant, error) {
	if explicitTenantID != nil && *explicitTenantID != uuid.Nil {
		tenant, err := s.tenantRepo.FindByID(ctx, *explicitTenantID)
		if err != nil {
			return nil, err
		}
		return tenant, nil
	}

	if c.HasTenant() {
		tenant, err := s.tenantRepo.FindByID(ctx, c.TenantID)
		if err == nil {
			return tenant, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	for _, slug := range identity.DefaultTenantSlugs {
		tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
		if err == nil {
			return tenant, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	tenant, err := s.tenantRepo.FindDefault(ctx)
	if err == nil && tenant != nil {
		return tenant, nil
	}
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	tenant, err = s.tenantRepo.FindEarliest(ctx)
	if err == nil && tenant != nil {
		return tenant, nil
	}
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	return s.createFallbackTenant(ctx)
}

func (s *TenantService) createFallbackTenant(ctx context.Context) (*identity.Tenant, error) {
	tenant, err := identity.NewTenant(fallbackTenantCode, fallbackTenantName, fallbackTenantSlug)
	if err != nil {
		return nil, err
	}
	tenant.MarkDefault()

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Warn("created fallback default tenant",
		zap.String("tenant_id", tenant.ID.String()))

	return tenant, nil
}

// isNotFound reports whether the error is a NOT_FOUND domain error
func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == "NOT_FOUND"
	}
	return false
}
