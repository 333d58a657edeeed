package registration

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutLineItem is one priced line in a hosted checkout session
type CheckoutLineItem struct {
	Name        string
	Description string
	// AmountCents is the line total in cents
	AmountCents int64
	Quantity    int64
}

// CreateSessionInput carries everything the payment provider needs to build
// a hosted checkout session for a registration batch
type CreateSessionInput struct {
	CustomerEmail   string
	LineItems       []CheckoutLineItem
	SuccessURL      string
	CancelURL       string
	RegistrationIDs []uuid.UUID
	CampSlug        string
	TenantID        uuid.UUID
}

// CheckoutSession is the provider's session handle
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway creates hosted checkout sessions. Implemented by the Stripe
// adapter in infrastructure/payment.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error)
}
