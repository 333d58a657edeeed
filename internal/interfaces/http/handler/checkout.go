package handler

import (
	"context"
	"strings"

	appregistration "github.com/camphq/backend/internal/application/registration"
	"github.com/camphq/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyKeyHeader carries the client-generated key that dedupes
// checkout retries
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutRunner runs the checkout orchestration. Implemented by the
// registration application service.
type CheckoutRunner interface {
	Checkout(ctx context.Context, req appregistration.CheckoutRequest) (*appregistration.CheckoutResponse, error)
}

// CheckoutHandler handles the public registration checkout endpoint
type CheckoutHandler struct {
	BaseHandler
	checkout CheckoutRunner
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout CheckoutRunner) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout godoc
// @ID           checkout
// @Summary      Start a registration checkout
// @Description  Registers one or more campers for a camp and returns a hosted payment URL
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Client-generated key to dedupe retries"
// @Param        request  body  appregistration.CheckoutRequest  true  "Checkout payload"
// @Success      200  {object}  APIResponse[appregistration.CheckoutResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Camp full or duplicate request"
// @Failure      502  {object}  ErrorResponse  "Payment provider failure"
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req appregistration.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	req.Origin = resolveOrigin(c)
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	// A signed-in parent gets the checkout linked to their auth account.
	// The subject claim is trusted over anything in the body.
	if accountIDStr := middleware.GetJWTAccountID(c); accountIDStr != "" {
		if accountID, err := uuid.Parse(accountIDStr); err == nil {
			req.Parent.AuthUserID = &accountID
		}
	}

	response, err := h.checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// resolveOrigin determines the storefront origin for payment redirect URLs.
// The Origin header is authoritative; the request host is the fallback for
// same-origin deployments.
func resolveOrigin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return strings.TrimRight(origin, "/")
	}

	scheme := "https"
	if c.Request.TLS == nil {
		if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		} else {
			scheme = "http"
		}
	}
	return scheme + "://" + c.Request.Host
}
