package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/camphq/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
)

// Maximum webhook payload size (64KB - Stripe webhooks are typically small)
const maxWebhookPayloadSize = 65536

// WebhookVerifier verifies a raw webhook payload against its signature
// header. Implemented by the Stripe gateway.
type WebhookVerifier interface {
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

// SessionConfirmer confirms the registrations paid for by a checkout
// session. Implemented by the registration application service.
type SessionConfirmer interface {
	ConfirmBySession(ctx context.Context, sessionID string) (int, error)
}

// StripeWebhookHandler handles Stripe webhook endpoints
// These endpoints are called by Stripe and do not require authentication
type StripeWebhookHandler struct {
	BaseHandler
	verifier      WebhookVerifier
	registrations SessionConfirmer
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(verifier WebhookVerifier, registrations SessionConfirmer) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		verifier:      verifier,
		registrations: registrations,
	}
}

// StripeWebhookResponse represents the response for Stripe webhook
//
//	@Description	Stripe webhook response
type StripeWebhookResponse struct {
	Received  bool   `json:"received" example:"true"`
	EventID   string `json:"event_id,omitempty" example:"evt_1234567890"`
	EventType string `json:"event_type,omitempty" example:"checkout.session.completed"`
	Message   string `json:"message,omitempty" example:"Webhook processed successfully"`
}

// HandleStripeWebhook godoc
//
//	@ID				handleStripeWebhook
//	@Summary		Handle Stripe webhook
//	@Description	Receive checkout session events from Stripe and confirm paid registrations
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string					true	"Stripe webhook signature"
//	@Success		200					{object}	StripeWebhookResponse	"Webhook processed successfully"
//	@Failure		400					{object}	StripeWebhookResponse	"Invalid request"
//	@Failure		401					{object}	StripeWebhookResponse	"Invalid signature"
//	@Failure		413					{object}	StripeWebhookResponse	"Payload too large"
//	@Router			/webhooks/stripe [post]
func (h *StripeWebhookHandler) HandleStripeWebhook(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())

	// Read the raw request body with size limit to prevent DoS attacks
	// Stripe requires the raw body for signature verification
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, StripeWebhookResponse{
			Received: false,
			Message:  "Failed to read request body",
		})
		return
	}

	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, StripeWebhookResponse{
			Received: false,
			Message:  "Payload too large",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusUnauthorized, StripeWebhookResponse{
			Received: false,
			Message:  "Missing Stripe-Signature header",
		})
		return
	}

	event, err := h.verifier.VerifyWebhook(payload, signature)
	if err != nil {
		log.Warn("stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, StripeWebhookResponse{
			Received: false,
			Message:  "Webhook signature verification failed",
		})
		return
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		// Unhandled event types are acknowledged so Stripe stops retrying
		c.JSON(http.StatusOK, StripeWebhookResponse{
			Received:  true,
			EventID:   event.ID,
			EventType: string(event.Type),
			Message:   "Event type ignored",
		})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Error("failed to decode checkout session from webhook",
			zap.String("event_id", event.ID),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, StripeWebhookResponse{
			Received: false,
			EventID:  event.ID,
			Message:  "Malformed event payload",
		})
		return
	}

	confirmed, err := h.registrations.ConfirmBySession(c.Request.Context(), session.ID)
	if err != nil {
		// Return 200 to prevent Stripe retries for errors that won't be
		// fixed by retrying. The failure is logged for the on-call.
		log.Error("failed to confirm registrations for completed session",
			zap.String("event_id", event.ID),
			zap.String("session_id", session.ID),
			zap.Error(err))
		c.JSON(http.StatusOK, StripeWebhookResponse{
			Received:  true,
			EventID:   event.ID,
			EventType: string(event.Type),
			Message:   "Webhook received but processing encountered an issue",
		})
		return
	}

	log.Info("stripe checkout session processed",
		zap.String("event_id", event.ID),
		zap.String("session_id", session.ID),
		zap.Int("confirmed", confirmed))

	c.JSON(http.StatusOK, StripeWebhookResponse{
		Received:  true,
		EventID:   event.ID,
		EventType: string(event.Type),
		Message:   "Webhook processed successfully",
	})
}
