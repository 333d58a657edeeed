package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appidentity "github.com/camphq/backend/internal/application/identity"
	campdomain "github.com/camphq/backend/internal/domain/camp"
	regdomain "github.com/camphq/backend/internal/domain/registration"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/domain/shared/valueobject"
	"github.com/camphq/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutConfig tunes the checkout orchestration
type CheckoutConfig struct {
	// SessionTimeout bounds the outbound call to the payment provider
	SessionTimeout time.Duration
	// SuccessPath and CancelPath are appended to origin + camp path when
	// building the hosted checkout redirect URLs
	SuccessPath string
	CancelPath  string
}

// DefaultCheckoutConfig returns sensible checkout defaults
func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		SessionTimeout: 15 * time.Second,
		SuccessPath:    "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelPath:     "/checkout/cancelled",
	}
}

// CheckoutService orchestrates the registration checkout: validation, tenant
// resolution, the capacity-checked transactional write, and the payment
// session, with compensation when the payment provider fails.
type CheckoutService struct {
	campRepo  campdomain.CampRepository
	addonRepo campdomain.AddonRepository
	promoRepo campdomain.PromoCodeRepository
	regRepo   regdomain.Repository
	tenants   *appidentity.TenantService
	tx        TxManager
	gateway   PaymentGateway
	idem      shared.IdempotencyStore
	idemCfg   shared.IdempotencyConfig
	cfg       CheckoutConfig
	now       func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	campRepo campdomain.CampRepository,
	addonRepo campdomain.AddonRepository,
	promoRepo campdomain.PromoCodeRepository,
	regRepo regdomain.Repository,
	tenants *appidentity.TenantService,
	tx TxManager,
	gateway PaymentGateway,
	idem shared.IdempotencyStore,
	idemCfg shared.IdempotencyConfig,
	cfg CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		campRepo:  campRepo,
		addonRepo: addonRepo,
		promoRepo: promoRepo,
		regRepo:   regRepo,
		tenants:   tenants,
		tx:        tx,
		gateway:   gateway,
		idem:      idem,
		idemCfg:   idemCfg,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// resolvedAddon is an addon selection with catalog data snapshotted
type resolvedAddon struct {
	addonID   uuid.UUID
	variantID *uuid.UUID
	name      string
	quantity  int
	line      regdomain.AddonLine
}

// batchEntry tracks one camper's registration through the checkout
type batchEntry struct {
	registrationID uuid.UUID
	athleteName    string
	totalCents     int64
}

// Checkout runs the full checkout flow and returns the hosted payment URL
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	log := logger.FromContext(ctx)

	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	if req.IdempotencyKey != "" && s.idemCfg.Enabled && s.idem != nil {
		fresh, err := s.idem.MarkProcessed(ctx, "checkout:idempotency:"+req.IdempotencyKey, s.idemCfg.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "This checkout was already submitted")
		}
	}

	c, err := s.campRepo.FindByID(ctx, req.CampID)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.ResolveForCheckout(ctx, c, req.TenantID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	var promo *campdomain.PromoCode
	if req.PromoCode != "" {
		promo, err = s.promoRepo.FindByCodeForTenant(ctx, campdomain.NormalizePromoCode(req.PromoCode), tenant.ID)
		if err != nil {
			return nil, err
		}
		if promo == nil {
			return nil, shared.NewDomainError("PROMO_NOT_FOUND", "Promo code not found")
		}
		if !promo.IsValidAt(now) {
			return nil, shared.NewDomainError("PROMO_NOT_ACTIVE", "Promo code is not currently active")
		}
	}

	camperAddons := make([][]resolvedAddon, len(req.Campers))
	for i, camper := range req.Campers {
		camperAddons[i], err = s.resolveAddons(ctx, tenant.ID, camper.Addons)
		if err != nil {
			return nil, err
		}
	}

	var batch []batchEntry
	err = s.tx.InTx(ctx, func(txCtx context.Context, repos TxRepos) error {
		// Lock the camp row so concurrent checkouts serialize and the
		// capacity count below cannot race.
		lockedCamp, err := repos.Camps.FindByIDForUpdate(txCtx, c.ID)
		if err != nil {
			return err
		}

		active, err := repos.Registrations.CountActiveByCamp(txCtx, lockedCamp.ID)
		if err != nil {
			return err
		}
		if active+int64(len(req.Campers)) > int64(lockedCamp.Capacity) {
			return shared.ErrCampFull
		}

		profile, err := repos.Party.ResolveParent(txCtx, req.Parent)
		if err != nil {
			return err
		}

		for i, camper := range req.Campers {
			athlete, err := repos.Party.ResolveAthlete(txCtx, profile.ID, camper)
			if err != nil {
				return err
			}

			lines := make([]regdomain.AddonLine, len(camperAddons[i]))
			for j, ra := range camperAddons[i] {
				lines[j] = ra.line
			}

			quote := regdomain.Price(regdomain.PricingInput{
				Camp:           lockedCamp,
				CamperIndex:    i,
				Addons:         lines,
				Promo:          promo,
				TaxRatePercent: tenant.TaxRatePercent,
				Now:            now,
			})

			reg, err := regdomain.NewRegistration(tenant.ID, lockedCamp.ID, profile.ID, athlete.ID, i, quote)
			if err != nil {
				return err
			}
			if promo != nil && i == 0 {
				reg.SetPromoCode(promo.Code)
			}
			for _, ra := range camperAddons[i] {
				if err := reg.AttachAddonLine(ra.addonID, ra.variantID, ra.name,
					ra.quantity, ra.line.UnitPrice.Amount(), ra.line.LineTotal().RoundToCents().Amount(),
					ra.line.IsTaxable); err != nil {
					return err
				}
			}

			if err := repos.Registrations.Save(txCtx, reg); err != nil {
				return err
			}

			repos.Party.EnsurePickups(txCtx, athlete.ID, camper.Pickups)

			batch = append(batch, batchEntry{
				registrationID: reg.ID,
				athleteName:    athlete.FullName(),
				totalCents:     quote.Total.Cents(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(batch))
	for i, entry := range batch {
		ids[i] = entry.registrationID
	}

	session, err := s.createSession(ctx, c, tenant.ID, req, batch, ids)
	if err != nil {
		log.Error("payment session creation failed, cancelling batch",
			zap.String("camp_id", c.ID.String()),
			zap.Int("registrations", len(ids)),
			zap.Error(err))

		reason := "payment session creation failed: " + err.Error()
		if cancelErr := s.regRepo.BulkCancel(ctx, ids, reason); cancelErr != nil {
			log.Error("compensating cancellation failed",
				zap.Strings("registration_ids", idStrings(ids)),
				zap.Error(cancelErr))
		}

		return nil, shared.NewDomainError("PAYMENT_FAILED", "Payment provider request failed: "+err.Error())
	}

	if err := s.regRepo.AttachStripeSession(ctx, ids, session.ID); err != nil {
		return nil, err
	}

	log.Info("checkout completed",
		zap.String("camp_id", c.ID.String()),
		zap.String("session_id", session.ID),
		zap.Int("registrations", len(ids)))

	return &CheckoutResponse{
		RegistrationIDs: ids,
		CheckoutURL:     session.URL,
		SessionID:       session.ID,
	}, nil
}

// resolveAddons turns raw addon selections into priced lines. Selections
// whose addon id is not a valid UUID are skipped: the storefront ships
// placeholder addons that have no catalog entry. A well-formed UUID that
// matches nothing in the catalog is a validation error, not a skip, so a
// stale or tampered cart cannot silently drop a paid line.
func (s *CheckoutService) resolveAddons(ctx context.Context, tenantID uuid.UUID, selections []AddonSelectionInput) ([]resolvedAddon, error) {
	log := logger.FromContext(ctx)

	resolved := make([]resolvedAddon, 0, len(selections))
	for _, sel := range selections {
		addonID, err := uuid.Parse(sel.AddonID)
		if err != nil {
			log.Debug("skipping addon selection with non-uuid id",
				zap.String("addon_id", sel.AddonID))
			continue
		}

		addon, err := s.addonRepo.FindByIDForTenant(ctx, addonID, tenantID)
		if err != nil {
			if isNotFound(err) {
				log.Warn("checkout referenced unknown addon",
					zap.String("addon_id", sel.AddonID))
				return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown addon: "+sel.AddonID)
			}
			return nil, err
		}

		var variantID *uuid.UUID
		name := addon.Name
		if sel.VariantID != nil {
			if vid, err := uuid.Parse(*sel.VariantID); err == nil {
				variantID = &vid
				if v := addon.VariantByID(vid); v != nil {
					name = fmt.Sprintf("%s (%s)", addon.Name, v.Name)
				}
			}
		}

		quantity := sel.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		resolved = append(resolved, resolvedAddon{
			addonID:   addon.ID,
			variantID: variantID,
			name:      name,
			quantity:  quantity,
			line: regdomain.AddonLine{
				Name:      name,
				Quantity:  quantity,
				UnitPrice: valueobject.NewMoneyUSD(addon.PriceForVariant(variantID)).RoundToCents(),
				IsTaxable: addon.IsTaxable,
			},
		})
	}

	return resolved, nil
}

// createSession calls the payment provider with a bounded context
func (s *CheckoutService) createSession(ctx context.Context, c *campdomain.Camp, tenantID uuid.UUID, req CheckoutRequest, batch []batchEntry, ids []uuid.UUID) (*CheckoutSession, error) {
	lineItems := make([]CheckoutLineItem, len(batch))
	for i, entry := range batch {
		lineItems[i] = CheckoutLineItem{
			Name:        fmt.Sprintf("%s: %s", c.Name, entry.athleteName),
			Description: "Camp registration",
			AmountCents: entry.totalCents,
			Quantity:    1,
		}
	}

	origin := strings.TrimRight(req.Origin, "/")
	base := fmt.Sprintf("%s/camps/%s", origin, c.Slug)

	sessionCtx, cancel := context.WithTimeout(ctx, s.cfg.SessionTimeout)
	defer cancel()

	return s.gateway.CreateCheckoutSession(sessionCtx, CreateSessionInput{
		CustomerEmail:   req.Parent.Email,
		LineItems:       lineItems,
		SuccessURL:      base + s.cfg.SuccessPath,
		CancelURL:       base + s.cfg.CancelPath,
		RegistrationIDs: ids,
		CampSlug:        c.Slug,
		TenantID:        tenantID,
	})
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// isNotFound reports whether the error is a NOT_FOUND domain error
func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == "NOT_FOUND"
	}
	return false
}
