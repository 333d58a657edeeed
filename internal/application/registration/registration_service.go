package registration

import (
	"context"

	regdomain "github.com/camphq/backend/internal/domain/registration"
	"github.com/camphq/backend/internal/domain/shared"
	"github.com/camphq/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegistrationService handles registration queries and lifecycle changes
// after checkout
type RegistrationService struct {
	regRepo regdomain.Repository
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(regRepo regdomain.Repository) *RegistrationService {
	return &RegistrationService{regRepo: regRepo}
}

// GetByID retrieves a registration scoped to a tenant
func (s *RegistrationService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*RegistrationResponse, error) {
	reg, err := s.regRepo.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToRegistrationResponse(reg)
	return &response, nil
}

// List retrieves registrations filtered by camp, parent, or status
func (s *RegistrationService) List(ctx context.Context, tenantID uuid.UUID, filter RegistrationListFilter) ([]RegistrationResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var regs []regdomain.Registration
	var err error
	switch {
	case filter.CampID != nil:
		regs, err = s.regRepo.FindByCamp(ctx, *filter.CampID, domainFilter)
	case filter.ProfileID != nil:
		regs, err = s.regRepo.FindByProfile(ctx, *filter.ProfileID, domainFilter)
	default:
		regs, err = s.regRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]RegistrationResponse, len(regs))
	for i := range regs {
		responses[i] = ToRegistrationResponse(&regs[i])
	}
	return responses, nil
}

// ConfirmBySession confirms every registration in a checkout batch once the
// payment provider reports the session complete. The whole batch shares one
// confirmation number; registrations that already carry a number keep it, so
// webhook retries are safe.
func (s *RegistrationService) ConfirmBySession(ctx context.Context, sessionID string) (int, error) {
	log := logger.FromContext(ctx)

	regs, err := s.regRepo.FindByStripeSession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if len(regs) == 0 {
		log.Warn("no registrations found for completed session",
			zap.String("session_id", sessionID))
		return 0, nil
	}

	number := ""
	for i := range regs {
		if regs[i].ConfirmationNumber != "" {
			number = regs[i].ConfirmationNumber
			break
		}
	}
	if number == "" {
		number, err = regdomain.GenerateConfirmationNumber()
		if err != nil {
			return 0, err
		}
	}

	confirmed := 0
	for i := range regs {
		reg := &regs[i]
		if err := reg.Confirm(); err != nil {
			log.Warn("registration could not be confirmed",
				zap.String("registration_id", reg.ID.String()),
				zap.String("status", string(reg.Status)),
				zap.Error(err))
			continue
		}
		if err := reg.SetConfirmationNumber(number); err != nil {
			return confirmed, err
		}
		if err := s.regRepo.Save(ctx, reg); err != nil {
			return confirmed, err
		}
		confirmed++
	}

	log.Info("confirmed registration batch",
		zap.String("session_id", sessionID),
		zap.String("confirmation_number", number),
		zap.Int("confirmed", confirmed))

	return confirmed, nil
}

// Cancel cancels one registration with a reason
func (s *RegistrationService) Cancel(ctx context.Context, tenantID, id uuid.UUID, reason string) (*RegistrationResponse, error) {
	reg, err := s.regRepo.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if err := reg.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.regRepo.Save(ctx, reg); err != nil {
		return nil, err
	}

	response := ToRegistrationResponse(reg)
	return &response, nil
}
