package payment

import (
	"context"
	"fmt"
	"strings"

	appregistration "github.com/camphq/backend/internal/application/registration"
	"github.com/camphq/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// StripeGateway implements the checkout PaymentGateway over Stripe hosted
// Checkout Sessions. One session covers a whole registration batch; the
// registration ids travel in the session metadata so the webhook can find
// them again.
type StripeGateway struct {
	cfg    config.StripeConfig
	logger *zap.Logger
}

// NewStripeGateway creates a new Stripe gateway and initializes the client
func NewStripeGateway(cfg config.StripeConfig, logger *zap.Logger) (*StripeGateway, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	stripe.Key = cfg.SecretKey

	return &StripeGateway{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// CreateCheckoutSession creates a hosted payment session for a registration batch
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, input appregistration.CreateSessionInput) (*appregistration.CheckoutSession, error) {
	params, err := buildSessionParams(input)
	if err != nil {
		return nil, err
	}
	params.Context = ctx

	g.logger.Debug("Creating Stripe checkout session",
		zap.String("camp_slug", input.CampSlug),
		zap.Int("line_items", len(input.LineItems)),
		zap.Int("registrations", len(input.RegistrationIDs)))

	sess, err := session.New(params)
	if err != nil {
		g.logger.Error("Failed to create Stripe checkout session",
			zap.String("camp_slug", input.CampSlug),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	g.logger.Info("Created Stripe checkout session",
		zap.String("session_id", sess.ID),
		zap.String("camp_slug", input.CampSlug))

	return &appregistration.CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

// buildSessionParams translates a session input into Stripe checkout params
func buildSessionParams(input appregistration.CreateSessionInput) (*stripe.CheckoutSessionParams, error) {
	if len(input.LineItems) == 0 {
		return nil, fmt.Errorf("stripe: checkout session requires at least one line item")
	}
	if input.SuccessURL == "" || input.CancelURL == "" {
		return nil, fmt.Errorf("stripe: checkout session requires success and cancel URLs")
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.LineItems))
	for _, item := range input.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String("usd"),
				UnitAmount:  stripe.Int64(item.AmountCents),
				ProductData: productData,
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
		LineItems:  lineItems,
	}
	if input.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(input.CustomerEmail)
	}

	params.Metadata = map[string]string{
		"registration_ids": joinRegistrationIDs(input.RegistrationIDs),
		"camp_slug":        input.CampSlug,
		"tenant_id":        input.TenantID.String(),
	}

	return params, nil
}

func joinRegistrationIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

// ParseRegistrationIDs parses the comma-separated registration id list a
// checkout session carries in its metadata. Malformed entries are skipped.
func ParseRegistrationIDs(metadata string) []uuid.UUID {
	if metadata == "" {
		return nil
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(metadata, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// VerifyWebhook checks the Stripe signature on a webhook payload and returns
// the parsed event. Rejects payloads whose signature does not match.
func (g *StripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signatureHeader, g.cfg.WebhookSecret)
}
