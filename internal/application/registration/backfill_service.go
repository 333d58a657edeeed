package registration

import (
	"context"

	regdomain "github.com/camphq/backend/internal/domain/registration"
	"github.com/camphq/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// BackfillReport summarizes a confirmation-number backfill run
type BackfillReport struct {
	Scanned int
	Updated int
	Batches int
	DryRun  bool
}

// BackfillService assigns confirmation numbers to registrations that never
// received one. Registrations from the same checkout session share a number;
// orphans without a session each get their own. Pending orphans are covered
// too, since without a session there is no webhook to ever confirm them.
// Running the backfill twice is safe: numbers are assigned at most once.
type BackfillService struct {
	regRepo regdomain.Repository
}

// NewBackfillService creates a new BackfillService
func NewBackfillService(regRepo regdomain.Repository) *BackfillService {
	return &BackfillService{regRepo: regRepo}
}

// Run scans for registrations without confirmation numbers and assigns
// them. With dryRun set it only reports what would change.
func (s *BackfillService) Run(ctx context.Context, dryRun bool) (*BackfillReport, error) {
	log := logger.FromContext(ctx)

	regs, err := s.regRepo.FindMissingConfirmationNumber(ctx)
	if err != nil {
		return nil, err
	}

	report := &BackfillReport{Scanned: len(regs), DryRun: dryRun}
	if len(regs) == 0 {
		return report, nil
	}

	// Group by checkout session; orphans without a session id each form
	// their own group.
	groups := make(map[string][]*regdomain.Registration)
	var orphans []*regdomain.Registration
	for i := range regs {
		reg := &regs[i]
		if reg.StripeCheckoutSessionID == "" {
			orphans = append(orphans, reg)
			continue
		}
		groups[reg.StripeCheckoutSessionID] = append(groups[reg.StripeCheckoutSessionID], reg)
	}

	for sessionID, group := range groups {
		number, err := s.numberForSession(ctx, sessionID)
		if err != nil {
			return report, err
		}

		report.Batches++
		for _, reg := range group {
			if err := s.assign(ctx, reg, number, dryRun, log); err != nil {
				return report, err
			}
			report.Updated++
		}
	}

	for _, reg := range orphans {
		number, err := regdomain.GenerateConfirmationNumber()
		if err != nil {
			return report, err
		}

		report.Batches++
		if err := s.assign(ctx, reg, number, dryRun, log); err != nil {
			return report, err
		}
		report.Updated++
	}

	log.Info("confirmation number backfill finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("updated", report.Updated),
		zap.Int("batches", report.Batches),
		zap.Bool("dry_run", dryRun))

	return report, nil
}

// numberForSession reuses the number already stamped on any sibling in the
// session, generating a fresh one only when the whole batch lacks numbers.
func (s *BackfillService) numberForSession(ctx context.Context, sessionID string) (string, error) {
	siblings, err := s.regRepo.FindByStripeSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	for i := range siblings {
		if siblings[i].ConfirmationNumber != "" {
			return siblings[i].ConfirmationNumber, nil
		}
	}
	return regdomain.GenerateConfirmationNumber()
}

func (s *BackfillService) assign(ctx context.Context, reg *regdomain.Registration, number string, dryRun bool, log *zap.Logger) error {
	if dryRun {
		log.Info("would assign confirmation number",
			zap.String("registration_id", reg.ID.String()),
			zap.String("confirmation_number", number),
			zap.String("session_id", reg.StripeCheckoutSessionID))
		return nil
	}

	if err := reg.SetConfirmationNumber(number); err != nil {
		return err
	}
	return s.regRepo.Save(ctx, reg)
}
